package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

type submitContactRequest struct {
	Name            string `json:"name"     validate:"required"`
	Email           string `json:"email"    validate:"required,email"`
	Phone           string `json:"phone"`
	Interest        string `json:"interest"`
	Message         string `json:"message"  validate:"required"`
	ContactPhone    bool   `json:"contactPhone"`
	ContactWhatsApp bool   `json:"contactWhatsApp"`
	ContactEmail    bool   `json:"contactEmail"`
}

type listContactsQuery struct {
	Page   int    `query:"page"   validate:"gte=0"`
	Limit  int    `query:"limit"  validate:"gte=0,max=100"`
	Status string `query:"status" validate:"omitempty,oneof=new in-progress resolved"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Submit stores a message from the public contact form.
//
// @Summary      Submit contact form
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      submitContactRequest  true  "Contact message"
// @Success      201   {object}  successResponse{data=domain.Contact}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/contact/submit [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req submitContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact, err := h.service.Submit(c.Request().Context(), ports.SubmitContactInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Interest: req.Interest,
		Message:  req.Message,
		Preferences: domain.ContactPreferences{
			Phone:    req.ContactPhone,
			WhatsApp: req.ContactWhatsApp,
			Email:    req.ContactEmail,
		},
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Your message has been sent successfully", contact)
}

// List pages through contact messages, newest first.
//
// @Summary      List contact messages
// @Tags         contact
// @Produce      json
// @Security     CookieAuth
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Param        status  query     string  false  "new, in-progress or resolved"
// @Success      200     {object}  successResponse{data=ports.ContactPage}
// @Router       /api/contact [get]
func (h *ContactHandler) List(c echo.Context) error {
	var q listContactsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), ports.ContactFilter{
		Status: q.Status,
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", page)
}

// Get returns one contact message.
//
// @Summary      Get contact message
// @Tags         contact
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Contact id"
// @Success      200  {object}  successResponse{data=domain.Contact}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/contact/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	contact, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", contact)
}

// UpdateStatus moves a contact message through new, in-progress and resolved.
//
// @Summary      Update contact status
// @Tags         contact
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string         true  "Contact id"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  successResponse{data=domain.Contact}
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/contact/{id}/status [patch]
func (h *ContactHandler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	contact, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Status updated", contact)
}

// Delete removes a contact message.
//
// @Summary      Delete contact message
// @Tags         contact
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Contact id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/contact/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Contact message deleted", nil)
}
