package middleware

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
	"github.com/mateluxy/backoffice-api/internal/core/service"
)

// stubVerifier maps token values to identity ids or errors.
type stubVerifier map[string]any

func (v stubVerifier) Verify(token string) (string, error) {
	switch r := v[token].(type) {
	case string:
		return r, nil
	case error:
		return "", r
	}
	return "", domain.ErrTokenInvalid
}

var testVerifier = stubVerifier{
	"good":   "admin-1",
	"agent":  "agent-7",
	"old":    domain.ErrTokenExpired,
	"broken": errors.New("keystore unavailable"),
}

func runAuth(t *testing.T, req *http.Request) (called bool, identity string, err error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(testVerifier, AdminCookie)(func(c echo.Context) error {
		called = true
		identity = IdentityID(c)
		return c.NoContent(http.StatusOK)
	})
	err = handler(c)
	return called, identity, err
}

func assertHTTPError(t *testing.T, err error, code int, msg string) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d", code, he.Code)
	}
	if he.Message != msg {
		t.Fatalf("expected message %q, got %q", msg, he.Message)
	}
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")

	called, identity, err := runAuth(t, req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if identity != "admin-1" {
		t.Fatalf("identity not set, got %q", identity)
	}
}

func TestAuthMiddleware_CookieTakesPrecedence(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookie, Value: "good"})
	req.Header.Set("Authorization", "Bearer agent")

	_, identity, err := runAuth(t, req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if identity != "admin-1" {
		t.Fatalf("expected cookie identity admin-1, got %q", identity)
	}
}

func TestAuthMiddleware_OtherCookieIgnored(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AgentCookie, Value: "agent"})

	called, _, err := runAuth(t, req)
	if called {
		t.Fatalf("next should not be called")
	}
	assertHTTPError(t, err, http.StatusUnauthorized, MsgNoCredential)
}

func TestAuthMiddleware_MissingCredential(t *testing.T) {
	for name, header := range map[string]string{
		"no header":    "",
		"basic scheme": "Basic Zm9vOmJhcg==",
		"empty bearer": "Bearer ",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			called, _, err := runAuth(t, req)
			if called {
				t.Fatalf("next should not be called")
			}
			assertHTTPError(t, err, http.StatusUnauthorized, MsgNoCredential)
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer old")

	called, _, err := runAuth(t, req)
	if called {
		t.Fatalf("next should not be called")
	}
	assertHTTPError(t, err, http.StatusUnauthorized, MsgExpired)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer forged")

	called, _, err := runAuth(t, req)
	if called {
		t.Fatalf("next should not be called")
	}
	assertHTTPError(t, err, http.StatusUnauthorized, MsgInvalid)
}

func TestAuthMiddleware_UnexpectedErrorIsNotSwallowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer broken")

	called, _, err := runAuth(t, req)
	if called {
		t.Fatalf("next should not be called")
	}
	if err == nil {
		t.Fatalf("expected error")
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		t.Fatalf("unexpected failures must reach the error handler as plain errors, got HTTP %d", he.Code)
	}
}

func TestAuthMiddleware_UnusableAlgorithmIsInvalid(t *testing.T) {
	enc := base64.RawURLEncoding
	claims := enc.EncodeToString([]byte(`{"sub":"admin-1","exp":9999999999}`))
	tokens := map[string]string{
		"unknown alg": enc.EncodeToString([]byte(`{"alg":"FOO","typ":"JWT"}`)) + "." + claims + ".c2ln",
		"no alg":      enc.EncodeToString([]byte(`{"typ":"JWT"}`)) + "." + claims + ".c2ln",
	}
	verifier := service.NewTokenService("test-secret", time.Hour)

	for name, token := range tokens {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			c := e.NewContext(req, httptest.NewRecorder())

			called := false
			err := Auth(verifier, AdminCookie)(func(c echo.Context) error {
				called = true
				return nil
			})(c)
			if called {
				t.Fatalf("next should not be called")
			}
			assertHTTPError(t, err, http.StatusUnauthorized, MsgInvalid)
		})
	}
}
