package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mateluxy/backoffice-api/internal/api/middleware"
	"github.com/mateluxy/backoffice-api/internal/core/domain"
	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

// stubNotificationService records the recipient each call was scoped to.
type stubNotificationService struct {
	items      []*domain.Notification
	lastInput  ports.CreateNotificationInput
	lastLimit  int
	recipients []string
}

func (s *stubNotificationService) Create(_ context.Context, in ports.CreateNotificationInput) ([]*domain.Notification, error) {
	s.lastInput = in
	return []*domain.Notification{{ID: "n-new", Recipient: in.CreatedBy, Type: in.Type, Message: in.Message}}, nil
}

func (s *stubNotificationService) List(_ context.Context, recipientID string, limit int) ([]*domain.Notification, error) {
	s.recipients = append(s.recipients, recipientID)
	s.lastLimit = limit
	return s.items, nil
}

func (s *stubNotificationService) UnreadCount(_ context.Context, recipientID string) (int64, error) {
	s.recipients = append(s.recipients, recipientID)
	return 3, nil
}

func (s *stubNotificationService) MarkRead(_ context.Context, recipientID, id string) (*domain.Notification, error) {
	s.recipients = append(s.recipients, recipientID)
	for _, n := range s.items {
		if n.ID == id && n.Recipient == recipientID {
			n.Read = true
			return n, nil
		}
	}
	return nil, domain.ErrNotificationNotFound
}

func (s *stubNotificationService) MarkAllRead(_ context.Context, recipientID string) (int64, error) {
	s.recipients = append(s.recipients, recipientID)
	return 2, nil
}

func (s *stubNotificationService) Delete(_ context.Context, recipientID, id string) error {
	s.recipients = append(s.recipients, recipientID)
	return domain.ErrNotificationNotFound
}

func (s *stubNotificationService) ClearAll(_ context.Context, recipientID string) (int64, error) {
	s.recipients = append(s.recipients, recipientID)
	return 5, nil
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, id string) echo.Context {
	c := e.NewContext(req, rec)
	middleware.SetIdentityID(c, id)
	return c
}

func TestNotificationHandler_ListAddsPresentation(t *testing.T) {
	e := newTestEcho()
	svc := &stubNotificationService{items: []*domain.Notification{
		{ID: "n1", Recipient: "admin-1", Type: domain.NotifyPropertyAdded, Message: "new listing"},
		{ID: "n2", Recipient: "admin-1", Type: domain.NotifySystem, Message: "hello"},
	}}
	h := NewNotificationHandler(svc)

	rec := httptest.NewRecorder()
	c := authedContext(e, httptest.NewRequest(http.MethodGet, "/api/notifications?limit=10", nil), rec, "admin-1")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.lastLimit != 10 || svc.recipients[0] != "admin-1" {
		t.Errorf("limit=%d recipients=%v", svc.lastLimit, svc.recipients)
	}

	var resp struct {
		Data []struct {
			ID    string `json:"id"`
			Icon  string `json:"icon"`
			Color string `json:"color"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 items, got %s", rec.Body.String())
	}
	if resp.Data[0].Icon != "home" || resp.Data[0].Color != "green" {
		t.Errorf("property-added view = %+v", resp.Data[0])
	}
	if resp.Data[1].Icon != "bell" || resp.Data[1].Color != "gray" {
		t.Errorf("system view = %+v", resp.Data[1])
	}
}

func TestNotificationHandler_ListRejectsBadLimit(t *testing.T) {
	e := newTestEcho()
	h := NewNotificationHandler(&stubNotificationService{})

	c := authedContext(e, httptest.NewRequest(http.MethodGet, "/?limit=ten", nil), httptest.NewRecorder(), "admin-1")
	if err := h.List(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNotificationHandler_CreateUsesCallerAsCreator(t *testing.T) {
	e := newTestEcho()
	svc := &stubNotificationService{}
	h := NewNotificationHandler(svc)

	rec := httptest.NewRecorder()
	body := `{"type":"system","message":"maintenance tonight","recipients":["admin-2"],"entityId":"e1"}`
	c := authedContext(e, jsonRequest(http.MethodPost, "/", body), rec, "admin-1")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	in := svc.lastInput
	if in.CreatedBy != "admin-1" || len(in.Recipients) != 1 || in.Recipients[0] != "admin-2" {
		t.Errorf("unexpected input %+v", in)
	}
	if in.Entity == nil || in.Entity.ID != "e1" {
		t.Errorf("entity not forwarded: %+v", in.Entity)
	}
}

func TestNotificationHandler_CreateRequiresFields(t *testing.T) {
	e := newTestEcho()
	h := NewNotificationHandler(&stubNotificationService{})

	c := authedContext(e, jsonRequest(http.MethodPost, "/", `{"message":"no type"}`), httptest.NewRecorder(), "admin-1")
	if err := h.Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNotificationHandler_MarkReadForeignIsNotFound(t *testing.T) {
	e := newTestEcho()
	svc := &stubNotificationService{items: []*domain.Notification{
		{ID: "n1", Recipient: "admin-2", Type: domain.NotifySystem},
	}}
	h := NewNotificationHandler(svc)

	c := authedContext(e, httptest.NewRequest(http.MethodPut, "/", nil), httptest.NewRecorder(), "admin-1")
	c.SetParamNames("id")
	c.SetParamValues("n1")
	if err := h.MarkRead(c); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
	if svc.items[0].Read {
		t.Error("foreign notification must stay unread")
	}
}

func TestNotificationHandler_Counts(t *testing.T) {
	e := newTestEcho()
	svc := &stubNotificationService{}
	h := NewNotificationHandler(svc)

	cases := []struct {
		name string
		call func(echo.Context) error
		want int64
	}{
		{"unread", h.UnreadCount, 3},
		{"mark all", h.MarkAllRead, 2},
		{"clear all", h.ClearAll, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := authedContext(e, httptest.NewRequest(http.MethodGet, "/", nil), rec, "admin-9")
			if err := tc.call(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			var resp struct {
				Data countResponse `json:"data"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Data.Count != tc.want {
				t.Errorf("count = %d, want %d", resp.Data.Count, tc.want)
			}
		})
	}
	for _, r := range svc.recipients {
		if r != "admin-9" {
			t.Errorf("call scoped to %q, want admin-9", r)
		}
	}
}

func TestNotificationHandler_RequiresIdentity(t *testing.T) {
	e := newTestEcho()
	h := NewNotificationHandler(&stubNotificationService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	var he *echo.HTTPError
	if err := h.List(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
