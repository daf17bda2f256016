package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// successResponse is the envelope of every 2xx JSON body.
type successResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the envelope of every 4xx/5xx JSON body.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Status  int    `json:"status" example:"404"`
	Message string `json:"message" example:"notification not found"`
}

func respond(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, successResponse{Success: true, Message: message, Data: data})
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
