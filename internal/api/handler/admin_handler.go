package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

// AdminHandler serves admin account management and the current admin's
// profile.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type createAdminRequest struct {
	Username     string `json:"username"     validate:"required"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"        validate:"required,email"`
	Password     string `json:"password"     validate:"required,min=6"`
	Role         string `json:"role"         validate:"omitempty,oneof='Admin' 'Super Admin'"`
	ProfileImage string `json:"profileImage"`
	Phone        string `json:"phone"`
}

type updateAdminRequest struct {
	Username     *string `json:"username"     validate:"omitempty,min=1"`
	FullName     *string `json:"fullName"`
	Email        *string `json:"email"        validate:"omitempty,email"`
	Password     *string `json:"password"`
	Role         *string `json:"role"         validate:"omitempty,oneof='Admin' 'Super Admin'"`
	ProfileImage *string `json:"profileImage"`
	Phone        *string `json:"phone"`
}

type updateProfileRequest struct {
	Username     *string `json:"username"     validate:"omitempty,min=1"`
	FullName     *string `json:"fullName"`
	Email        *string `json:"email"        validate:"omitempty,email"`
	Password     *string `json:"password"`
	ProfileImage *string `json:"profileImage"`
	Phone        *string `json:"phone"`
}

type usernameAvailability struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}

// List returns every admin.
//
// @Summary      List admins
// @Tags         admins
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  successResponse{data=[]domain.Admin}
// @Failure      401  {object}  ErrorResponse
// @Router       /api/admins [get]
func (h *AdminHandler) List(c echo.Context) error {
	admins, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", admins)
}

// Get returns a single admin.
//
// @Summary      Get admin
// @Tags         admins
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Admin id"
// @Success      200  {object}  successResponse{data=domain.Admin}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/admins/{id} [get]
func (h *AdminHandler) Get(c echo.Context) error {
	admin, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", admin)
}

// Create adds an admin. Mounted behind the Super Admin role guard.
//
// @Summary      Create admin
// @Tags         admins
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createAdminRequest  true  "New admin"
// @Success      201   {object}  successResponse{data=domain.Admin}
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/admins [post]
func (h *AdminHandler) Create(c echo.Context) error {
	actorID, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req createAdminRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	admin, err := h.service.Create(c.Request().Context(), actorID, ports.CreateAdminInput{
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		ProfileImage: req.ProfileImage,
		Phone:        req.Phone,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Admin created successfully", admin)
}

// Update modifies an admin record subject to the role policy.
//
// @Summary      Update admin
// @Tags         admins
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string              true  "Admin id"
// @Param        body  body      updateAdminRequest  true  "Changes"
// @Success      200   {object}  successResponse{data=domain.Admin}
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/admins/{id} [put]
func (h *AdminHandler) Update(c echo.Context) error {
	actorID, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req updateAdminRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	admin, err := h.service.Update(c.Request().Context(), actorID, c.Param("id"), ports.UpdateAdminInput{
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		ProfileImage: req.ProfileImage,
		Phone:        req.Phone,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Admin updated successfully", admin)
}

// Delete removes an admin. The last remaining admin cannot be deleted.
//
// @Summary      Delete admin
// @Tags         admins
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Admin id"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/admins/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	actorID, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actorID, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Admin deleted successfully", nil)
}

// CheckUsername reports whether a username is free. excludeId lets an admin
// keep its own username while editing.
//
// @Summary      Check admin username availability
// @Tags         admins
// @Produce      json
// @Security     CookieAuth
// @Param        username   query     string  true   "Username"
// @Param        excludeId  query     string  false  "Admin id to ignore"
// @Success      200        {object}  successResponse{data=usernameAvailability}
// @Failure      400        {object}  ErrorResponse
// @Router       /api/admins/check-username [get]
func (h *AdminHandler) CheckUsername(c echo.Context) error {
	username := c.QueryParam("username")
	ok, err := h.service.UsernameAvailable(c.Request().Context(), username, c.QueryParam("excludeId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", usernameAvailability{Username: username, Available: ok})
}

// Profile returns the signed-in admin.
//
// @Summary      Current admin profile
// @Tags         admins
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  successResponse{data=domain.Admin}
// @Failure      401  {object}  ErrorResponse
// @Router       /api/admin/profile [get]
func (h *AdminHandler) Profile(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	admin, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", admin)
}

// UpdateProfile edits the signed-in admin. Roles cannot be changed here.
//
// @Summary      Update current admin profile
// @Tags         admins
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      updateProfileRequest  true  "Changes"
// @Success      200   {object}  successResponse{data=domain.Admin}
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/admin/profile [put]
func (h *AdminHandler) UpdateProfile(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	admin, err := h.service.Update(c.Request().Context(), id, id, ports.UpdateAdminInput{
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		Password:     req.Password,
		ProfileImage: req.ProfileImage,
		Phone:        req.Phone,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Profile updated successfully", admin)
}
