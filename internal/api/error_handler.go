package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mateluxy/backoffice-api/internal/api/handler"
	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

const internalErrorMessage = "internal server error"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs every failure with the request id; 5xx at error level, 4xx at warn.
//   - Redacts unexpected errors unless exposeInternal is set (development).
//   - Renders the envelope {"success": false, "status": <code>, "message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger, exposeInternal bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, exposeInternal)
		logError(log, c, err, code)

		body := handler.ErrorResponse{Success: false, Status: code, Message: msg}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, exposeInternal bool) (int, string) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError && !exposeInternal {
			return he.Code, internalErrorMessage
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Message
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrTokenMissing),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, rootMessage(err)
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrAdminNotFound),
		errors.Is(err, domain.ErrAgentNotFound),
		errors.Is(err, domain.ErrNotificationNotFound),
		errors.Is(err, domain.ErrContactNotFound),
		errors.Is(err, domain.ErrPropertyNotFound),
		errors.Is(err, domain.ErrPropertyRequestNotFound):
		return http.StatusNotFound, rootMessage(err)
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrResetTokenInvalid),
		errors.Is(err, domain.ErrLastAdmin):
		return http.StatusBadRequest, rootMessage(err)
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrIdentityExists):
		return http.StatusConflict, rootMessage(err)
	}

	if exposeInternal {
		return http.StatusInternalServerError, err.Error()
	}
	return http.StatusInternalServerError, internalErrorMessage
}

// rootMessage returns the message of the innermost wrapped error, dropping the
// "op: " prefixes added on the way up.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func logError(log zerolog.Logger, c echo.Context, err error, code int) {
	ev := log.Warn()
	if code >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).
		Int("status", code).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("request failed")
}
