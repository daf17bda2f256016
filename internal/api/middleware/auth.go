package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mateluxy/backoffice-api/internal/api/metrics"
	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

const identityKey = "identity_id"

// Cookie names per identity class.
const (
	AdminCookie = "access_token"
	AgentCookie = "agent_token"
)

// Client-facing messages for the three ways authentication can fail.
const (
	MsgNoCredential = "authentication required, no credential supplied"
	MsgExpired      = "token expired, please sign in again"
	MsgInvalid      = "invalid token"
)

// TokenVerifier resolves a session token to an identity id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth gates a route on a valid session token, read from cookieName first and
// the Authorization bearer header second. On success only the identity id is
// placed on the context; no storage is read.
func Auth(verifier TokenVerifier, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c, cookieName)
			if token == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, MsgNoCredential).SetInternal(domain.ErrTokenMissing)
			}

			id, err := verifier.Verify(token)
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrTokenExpired):
				metrics.AuthRejectionsTotal.WithLabelValues("expired").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, MsgExpired).SetInternal(err)
			case errors.Is(err, domain.ErrTokenInvalid):
				metrics.AuthRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, MsgInvalid).SetInternal(err)
			default:
				// Unexpected verification failures go to the error handler as 500s.
				return err
			}

			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// ExtractToken returns the session token from cookieName, falling back to a
// bearer Authorization header. It returns "" when neither is present.
func ExtractToken(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// IdentityID returns the identity id set by Auth, or "" outside an
// authenticated route.
func IdentityID(c echo.Context) string {
	id, _ := c.Get(identityKey).(string)
	return id
}

// SetIdentityID places id on the context as Auth would.
func SetIdentityID(c echo.Context, id string) {
	c.Set(identityKey, id)
}
