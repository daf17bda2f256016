package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mateluxy/backoffice-api/internal/api/middleware"
	"github.com/mateluxy/backoffice-api/internal/core/domain"
	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

// AuthHandler serves sign-in, sign-out and password recovery for both
// identity classes.
type AuthHandler struct {
	authService  ports.AuthService
	cookieSecure bool
}

func NewAuthHandler(authService ports.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieSecure: cookieSecure}
}

type signInRequest struct {
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `param:"token"    json:"-" validate:"required"`
	Password string `json:"password"  validate:"required,min=6"`
}

type sessionResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Admin     *domain.Admin `json:"admin,omitempty"`
	Agent     *domain.Agent `json:"agent,omitempty"`
}

// AdminSignIn authenticates an admin and sets the access_token cookie.
//
// @Summary      Admin sign-in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  successResponse{data=sessionResponse}
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /api/admin/sign-in [post]
func (h *AuthHandler) AdminSignIn(c echo.Context) error {
	var req signInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.SignInAdmin(c.Request().Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, middleware.AdminCookie, session.Token)
	return respond(c, http.StatusOK, "signed in", sessionResponse{
		Token:     session.Token.Value,
		ExpiresAt: session.Token.ExpiresAt,
		Admin:     session.Admin,
	})
}

// AgentSignIn authenticates an agent and sets the agent_token cookie.
//
// @Summary      Agent sign-in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  successResponse{data=sessionResponse}
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /api/agent/sign-in [post]
func (h *AuthHandler) AgentSignIn(c echo.Context) error {
	var req signInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.SignInAgent(c.Request().Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, middleware.AgentCookie, session.Token)
	return respond(c, http.StatusOK, "signed in", sessionResponse{
		Token:     session.Token.Value,
		ExpiresAt: session.Token.ExpiresAt,
		Agent:     session.Agent,
	})
}

// AdminLogout clears the admin cookie.
//
// @Summary      Admin logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /api/admin/logout [post]
func (h *AuthHandler) AdminLogout(c echo.Context) error {
	return h.logout(c, domain.KindAdmin, middleware.AdminCookie)
}

// AgentLogout clears the agent cookie.
//
// @Summary      Agent logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /api/agent/logout [post]
func (h *AuthHandler) AgentLogout(c echo.Context) error {
	return h.logout(c, domain.KindAgent, middleware.AgentCookie)
}

func (h *AuthHandler) logout(c echo.Context, kind domain.IdentityKind, cookieName string) error {
	h.authService.Logout(c.Request().Context(), kind, middleware.ExtractToken(c, cookieName))

	cookie := h.baseCookie(cookieName)
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	c.SetCookie(cookie)
	return respond(c, http.StatusOK, "Logged out successfully", nil)
}

// CheckAuth confirms the caller holds a valid admin session.
//
// @Summary      Check admin session
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  successResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/admin/check-auth [get]
func (h *AuthHandler) CheckAuth(c echo.Context) error {
	if _, err := currentIdentity(c); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Authorized", nil)
}

// ForgotPassword mails a reset link to the admin owning the address.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Admin email"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/admin/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Password reset link sent to your email", nil)
}

// ResetPassword sets a new password using a mailed reset token.
//
// @Summary      Reset a password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  path      string                true  "Reset token"
// @Param        body   body      resetPasswordRequest  true  "New password"
// @Success      200    {object}  successResponse
// @Failure      400    {object}  ErrorResponse
// @Router       /api/admin/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.authService.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Password has been reset successfully", nil)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, name string, tok ports.IssuedToken) {
	cookie := h.baseCookie(name)
	cookie.Value = tok.Value
	if tok.CookieExpires != nil {
		cookie.Expires = *tok.CookieExpires
	}
	c.SetCookie(cookie)
}

// baseCookie returns the attributes shared by set and clear. Browsers reject
// SameSite=None without Secure, so insecure (local) deployments fall back to Lax.
func (h *AuthHandler) baseCookie(name string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteNoneMode,
	}
	if !h.cookieSecure {
		cookie.SameSite = http.SameSiteLaxMode
	}
	return cookie
}
