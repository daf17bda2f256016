package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateluxy/backoffice-api/internal/api/handler"
	"github.com/mateluxy/backoffice-api/internal/api/middleware"
	"github.com/mateluxy/backoffice-api/internal/core/domain"
	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

// Stub services embed the port interface; calling a method the test did not
// implement panics, which flags an unexpected route.

type fixedVerifier map[string]string

func (v fixedVerifier) Verify(token string) (string, error) {
	if id, ok := v[token]; ok {
		return id, nil
	}
	if token == "stale" {
		return "", domain.ErrTokenExpired
	}
	return "", domain.ErrTokenInvalid
}

type stubAuth struct {
	ports.AuthService
}

func (stubAuth) SignInAdmin(_ context.Context, email, _ string, rememberMe bool) (*ports.AdminSession, error) {
	now := time.Now().UTC()
	tok := ports.IssuedToken{Value: "signed", ExpiresAt: now.Add(24 * time.Hour)}
	if rememberMe {
		exp := now.Add(30 * 24 * time.Hour)
		tok.ExpiresAt, tok.CookieExpires = exp, &exp
	}
	return &ports.AdminSession{Token: tok, Admin: &domain.Admin{ID: "admin-1", Email: email}}, nil
}

type stubAdmins struct {
	ports.AdminService
	roles map[string]string
}

func (s stubAdmins) Role(_ context.Context, id string) (string, error) {
	if r, ok := s.roles[id]; ok {
		return r, nil
	}
	return "", domain.ErrAdminNotFound
}

func (s stubAdmins) List(context.Context) ([]*domain.Admin, error) {
	return nil, errors.New("mongo: connection reset")
}

type stubContacts struct {
	ports.ContactService
	got *ports.SubmitContactInput
}

func (s stubContacts) Submit(_ context.Context, in ports.SubmitContactInput) (*domain.Contact, error) {
	*s.got = in
	return &domain.Contact{ID: "c-1", Name: in.Name, Email: in.Email, Phone: in.Phone, Status: domain.ContactNew}, nil
}

type stubNotifications struct {
	ports.NotificationService
}

func (stubNotifications) MarkRead(_ context.Context, recipientID, id string) (*domain.Notification, error) {
	if recipientID == "admin-1" && id == "mine" {
		return &domain.Notification{ID: id, Recipient: recipientID, Type: domain.NotifySystem, Read: true}, nil
	}
	return nil, domain.ErrNotificationNotFound
}

type routerFixture struct {
	e       *echo.Echo
	contact *ports.SubmitContactInput
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	contact := &ports.SubmitContactInput{}
	reg := prometheus.NewRegistry()

	e := NewRouter(Services{
		Tokens: fixedVerifier{"admin-token": "admin-1", "super-token": "super-1", "agent-token": "agent-1"},
		Auth:   stubAuth{},
		Admins: stubAdmins{roles: map[string]string{
			"admin-1": domain.RoleAdmin,
			"super-1": domain.RoleSuperAdmin,
		}},
		Contacts:      stubContacts{got: contact},
		Notifications: stubNotifications{},
	}, Options{
		Log:          zerolog.Nop(),
		CORSOrigins:  []string{"https://app.example.com"},
		CookieSecure: true,
		HealthChecks: []handler.DependencyCheck{
			{Name: "mongo", Check: func(context.Context) error { return nil }},
		},
		Registerer: reg,
		Gatherer:   reg,
	})
	return &routerFixture{e: e, contact: contact}
}

func (f *routerFixture) do(method, target, body string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, m := range mutate {
		m(req)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer "+token) }
}

func cookie(name, value string) func(*http.Request) {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: name, Value: value}) }
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestRouter_SignInCookieLifetime(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodPost, "/api/admin/sign-in", `{"email":"root@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	setCookie := rec.Header().Get(echo.HeaderSetCookie)
	assert.Contains(t, setCookie, middleware.AdminCookie+"=signed")
	assert.Contains(t, setCookie, "HttpOnly")
	assert.NotContains(t, setCookie, "Expires=", "session cookie must not persist")

	rec = f.do(http.MethodPost, "/api/admin/sign-in", `{"email":"root@example.com","password":"secret1","rememberMe":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), cookies[0].Expires, time.Minute)
}

func TestRouter_ContactSubmitWithoutPhone(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodPost, "/api/contact/submit", `{"name":"Jane","email":"jane@example.com","message":"Looking for a villa"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Jane", f.contact.Name)
	assert.Empty(t, f.contact.Phone)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestRouter_AuthFailures(t *testing.T) {
	f := newRouterFixture(t)

	cases := []struct {
		name    string
		mutate  []func(*http.Request)
		code    int
		message string
	}{
		{"no credential", nil, http.StatusUnauthorized, middleware.MsgNoCredential},
		{"expired", []func(*http.Request){bearer("stale")}, http.StatusUnauthorized, middleware.MsgExpired},
		{"garbage", []func(*http.Request){bearer("garbage")}, http.StatusUnauthorized, middleware.MsgInvalid},
		{"agent cookie on admin route", []func(*http.Request){cookie(middleware.AgentCookie, "agent-token")}, http.StatusUnauthorized, middleware.MsgNoCredential},
		{"agent token as bearer", []func(*http.Request){bearer("agent-token")}, http.StatusForbidden, domain.ErrForbidden.Error()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(http.MethodGet, "/api/admin/check-auth", "", tc.mutate...)
			require.Equal(t, tc.code, rec.Code)
			body := decodeError(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tc.code, body.Status)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

func TestRouter_CheckAuthWithCookie(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/admin/check-auth", "", cookie(middleware.AdminCookie, "admin-token"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorized")
}

func TestRouter_ForeignNotificationIsNotFound(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodPut, "/api/notifications/someone-elses/read", "", bearer("admin-token"))
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "notification not found", body.Message)

	rec = f.do(http.MethodPut, "/api/notifications/mine/read", "", bearer("admin-token"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"icon":"bell"`)
}

func TestRouter_CreateAdminRequiresSuperAdmin(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodPost, "/api/admins", `{"username":"x","email":"x@example.com","password":"secret1"}`, bearer("admin-token"))

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, http.StatusForbidden, decodeError(t, rec).Status)
}

func TestRouter_UnexpectedErrorIsRedacted(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/admins", "", bearer("super-token"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, rec.Body.String(), "mongo")
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	f := newRouterFixture(t)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health", "").Code)

	rec := f.do(http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"mongo"`)

	rec = f.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "backoffice_http_requests_total")
}

func TestRouter_UnknownRoute(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/nowhere", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeError(t, rec).Success)
}

func TestRouter_CORSPreflightAllowsCredentials(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodOptions, "/api/admin/sign-in", "", func(r *http.Request) {
		r.Header.Set(echo.HeaderOrigin, "https://app.example.com")
		r.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))
}
