package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

// NotificationHandler exposes the caller's own notifications. Every
// operation is scoped to the authenticated identity.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type createNotificationRequest struct {
	Type       string   `json:"type"       validate:"required"`
	Message    string   `json:"message"    validate:"required"`
	Recipients []string `json:"recipients"`
	EntityID   string   `json:"entityId"`
	EntityName string   `json:"entityName"`
}

// notificationView adds the derived presentation fields.
type notificationView struct {
	*domain.Notification
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

func toNotificationView(n *domain.Notification) notificationView {
	icon, color := n.Type.Presentation()
	return notificationView{Notification: n, Icon: icon, Color: color}
}

func toNotificationViews(items []*domain.Notification) []notificationView {
	out := make([]notificationView, 0, len(items))
	for _, n := range items {
		out = append(out, toNotificationView(n))
	}
	return out
}

// List returns the caller's newest notifications (at most 50).
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Security     CookieAuth
// @Param        limit  query     int  false  "Maximum items (1-50)"
// @Success      200    {object}  successResponse{data=[]notificationView}
// @Failure      401    {object}  ErrorResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return domain.NewValidationError("limit must be an integer")
		}
	}

	items, err := h.service.List(c.Request().Context(), id, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", toNotificationViews(items))
}

// Create stores one notification per recipient; without recipients the
// caller is the recipient.
//
// @Summary      Create notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createNotificationRequest  true  "Notification"
// @Success      201   {object}  successResponse{data=[]notificationView}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/notifications [post]
func (h *NotificationHandler) Create(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req createNotificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := ports.CreateNotificationInput{
		Type:       domain.NotificationType(req.Type),
		Message:    req.Message,
		Recipients: req.Recipients,
		CreatedBy:  id,
	}
	if req.EntityID != "" || req.EntityName != "" {
		in.Entity = &domain.EntityRef{ID: req.EntityID, Name: req.EntityName}
	}

	created, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Notification created", toNotificationViews(created))
}

// UnreadCount returns how many of the caller's notifications are unread.
//
// @Summary      Unread notification count
// @Tags         notifications
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  successResponse{data=countResponse}
// @Router       /api/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	n, err := h.service.UnreadCount(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", countResponse{Count: n})
}

// MarkRead marks one of the caller's notifications as read.
//
// @Summary      Mark notification read
// @Tags         notifications
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Notification id"
// @Success      200  {object}  successResponse{data=notificationView}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	n, err := h.service.MarkRead(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Notification marked as read", toNotificationView(n))
}

// MarkAllRead marks every unread notification of the caller as read.
//
// @Summary      Mark all notifications read
// @Tags         notifications
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  successResponse{data=countResponse}
// @Router       /api/notifications/mark-all-read [put]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	n, err := h.service.MarkAllRead(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "All notifications marked as read", countResponse{Count: n})
}

// Delete removes one of the caller's notifications.
//
// @Summary      Delete notification
// @Tags         notifications
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Notification id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Notification deleted", nil)
}

// ClearAll removes every notification of the caller.
//
// @Summary      Clear notifications
// @Tags         notifications
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  successResponse{data=countResponse}
// @Router       /api/notifications/clear-all [delete]
func (h *NotificationHandler) ClearAll(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	n, err := h.service.ClearAll(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "All notifications cleared", countResponse{Count: n})
}
