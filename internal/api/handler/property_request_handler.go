package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

type PropertyRequestHandler struct {
	service ports.PropertyRequestService
}

func NewPropertyRequestHandler(service ports.PropertyRequestService) *PropertyRequestHandler {
	return &PropertyRequestHandler{service: service}
}

type submitPropertyRequestRequest struct {
	Name             string `json:"name"          validate:"required"`
	Email            string `json:"email"         validate:"required,email"`
	Phone            string `json:"phone"         validate:"required"`
	CountryCode      string `json:"countryCode"`
	PropertyID       string `json:"propertyId"    validate:"required"`
	PropertyTitle    string `json:"propertyTitle" validate:"required"`
	PrivacyConsent   bool   `json:"privacyConsent"`
	MarketingConsent bool   `json:"marketingConsent"`
}

// Submit stores an enquiry about a listing.
//
// @Summary      Submit property request
// @Tags         property-requests
// @Accept       json
// @Produce      json
// @Param        body  body      submitPropertyRequestRequest  true  "Enquiry"
// @Success      201   {object}  successResponse{data=domain.PropertyRequest}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/property-requests/submit [post]
func (h *PropertyRequestHandler) Submit(c echo.Context) error {
	var req submitPropertyRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, err := h.service.Submit(c.Request().Context(), ports.SubmitPropertyRequestInput{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		CountryCode:      req.CountryCode,
		PropertyID:       req.PropertyID,
		PropertyTitle:    req.PropertyTitle,
		PrivacyConsent:   req.PrivacyConsent,
		MarketingConsent: req.MarketingConsent,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Your request has been submitted successfully", r)
}

// List returns property requests, optionally filtered by status.
//
// @Summary      List property requests
// @Tags         property-requests
// @Produce      json
// @Security     CookieAuth
// @Param        status  query     string  false  "new, contacted or closed"
// @Param        sort    query     string  false  "Sort field, '-' prefix for descending (default -createdAt)"
// @Success      200     {object}  successResponse{data=[]domain.PropertyRequest}
// @Failure      400     {object}  ErrorResponse
// @Router       /api/property-requests [get]
func (h *PropertyRequestHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context(), c.QueryParam("status"), c.QueryParam("sort"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", items)
}

// Get returns one property request.
//
// @Summary      Get property request
// @Tags         property-requests
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  successResponse{data=domain.PropertyRequest}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/property-requests/{id} [get]
func (h *PropertyRequestHandler) Get(c echo.Context) error {
	r, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", r)
}

// UpdateStatus moves a request through new, contacted and closed.
//
// @Summary      Update property request status
// @Tags         property-requests
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string         true  "Request id"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  successResponse{data=domain.PropertyRequest}
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/property-requests/{id}/status [patch]
func (h *PropertyRequestHandler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	r, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Status updated", r)
}

// Delete removes a property request.
//
// @Summary      Delete property request
// @Tags         property-requests
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/property-requests/{id} [delete]
func (h *PropertyRequestHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Property request deleted", nil)
}
