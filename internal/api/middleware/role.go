package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mateluxy/backoffice-api/internal/api/metrics"
	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

// RoleLookup returns the stored role of an admin.
type RoleLookup interface {
	Role(ctx context.Context, adminID string) (string, error)
}

// RequireAdminRole admits the request only when the authenticated identity is
// an admin whose stored role is one of allowedRoles. It must run after Auth.
func RequireAdminRole(lookup RoleLookup, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := IdentityID(c)
			if id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, MsgNoCredential)
			}

			role, err := lookup.Role(c.Request().Context(), id)
			switch {
			case errors.Is(err, domain.ErrAdminNotFound):
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
				return domain.ErrForbidden
			case err != nil:
				return err
			}

			if _, ok := allowed[role]; !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
