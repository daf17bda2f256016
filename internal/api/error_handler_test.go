package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

func TestResolveError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", domain.NewValidationError("email is required"), http.StatusBadRequest, "email is required"},
		{"wrapped validation", fmt.Errorf("create admin: %w", domain.NewValidationError("bad role")), http.StatusBadRequest, "bad role"},
		{"expired", domain.ErrTokenExpired, http.StatusUnauthorized, "token expired"},
		{"credentials", fmt.Errorf("sign in: %w", domain.ErrInvalidCredentials), http.StatusUnauthorized, "invalid credentials"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"not found", fmt.Errorf("mark notification read: %w", domain.ErrNotificationNotFound), http.StatusNotFound, "notification not found"},
		{"reset token", domain.ErrResetTokenInvalid, http.StatusBadRequest, "invalid or expired reset token"},
		{"last admin", domain.ErrLastAdmin, http.StatusBadRequest, "cannot delete the last remaining admin"},
		{"email taken", fmt.Errorf("create admin: %w", domain.ErrEmailTaken), http.StatusConflict, "email already in use"},
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "invalid token"), http.StatusUnauthorized, "invalid token"},
		{"echo 5xx", echo.NewHTTPError(http.StatusBadGateway, "upstream said no"), http.StatusBadGateway, internalErrorMessage},
		{"unexpected", errors.New("mongo: socket closed"), http.StatusInternalServerError, internalErrorMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := resolveError(tc.err, false)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.msg, msg)
		})
	}
}

func TestResolveError_ExposeInternal(t *testing.T) {
	code, msg := resolveError(errors.New("mongo: socket closed"), true)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "mongo: socket closed", msg)
}

func TestHTTPErrorHandler_EnvelopeAndLogging(t *testing.T) {
	var logs bytes.Buffer
	h := NewHTTPErrorHandler(zerolog.New(&logs), false)
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/admins/1", nil), rec)
	h(domain.ErrLastAdmin, c)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"status":400,"message":"cannot delete the last remaining admin"}`, rec.Body.String())
	assert.Contains(t, logs.String(), `"level":"warn"`)

	logs.Reset()
	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	h(errors.New("boom"), c)
	assert.Contains(t, logs.String(), `"level":"error"`)
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	h := NewHTTPErrorHandler(zerolog.Nop(), false)
	e := echo.New()

	rec := httptest.NewRecorder()
	h(domain.ErrPropertyNotFound, e.NewContext(httptest.NewRequest(http.MethodHead, "/api/properties/x", nil), rec))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}
