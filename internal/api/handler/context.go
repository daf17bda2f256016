package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mateluxy/backoffice-api/internal/api/middleware"
)

// currentIdentity returns the identity id injected by the Auth middleware.
// An empty id means the route was mounted without Auth; reject with 401
// rather than act on behalf of nobody.
func currentIdentity(c echo.Context) (string, error) {
	id := middleware.IdentityID(c)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, middleware.MsgNoCredential)
	}
	return id, nil
}
