package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mateluxy/backoffice-api/internal/api/middleware"
	"github.com/mateluxy/backoffice-api/internal/core/domain"
	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

type stubAdminService struct {
	ports.AdminService
	actor, target string
	update        ports.UpdateAdminInput
	excludeID     string
}

func (s *stubAdminService) Update(_ context.Context, actorID, targetID string, in ports.UpdateAdminInput) (*domain.Admin, error) {
	s.actor, s.target, s.update = actorID, targetID, in
	return &domain.Admin{ID: targetID, Role: domain.RoleAdmin}, nil
}

func (s *stubAdminService) UsernameAvailable(_ context.Context, username, excludeID string) (bool, error) {
	s.excludeID = excludeID
	return username != "taken", nil
}

func TestAdminHandler_UpdateProfileNeverChangesRole(t *testing.T) {
	e := newTestEcho()
	svc := &stubAdminService{}
	h := NewAdminHandler(svc)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/api/admin/profile", `{"fullName":"Jane","role":"Super Admin"}`), rec)
	middleware.SetIdentityID(c, "admin-1")

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.actor != "admin-1" || svc.target != "admin-1" {
		t.Errorf("profile update must target the caller, got actor=%q target=%q", svc.actor, svc.target)
	}
	if svc.update.Role != nil {
		t.Errorf("role must not be forwarded, got %q", *svc.update.Role)
	}
	if svc.update.FullName == nil || *svc.update.FullName != "Jane" {
		t.Errorf("fullName not forwarded: %+v", svc.update)
	}
}

func TestAdminHandler_CheckUsername(t *testing.T) {
	e := newTestEcho()
	svc := &stubAdminService{}
	h := NewAdminHandler(svc)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/admins/check-username?username=taken&excludeId=admin-2", nil), rec)
	if err := h.CheckUsername(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.excludeID != "admin-2" {
		t.Errorf("excludeId = %q", svc.excludeID)
	}
	if !strings.Contains(rec.Body.String(), `"available":false`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}
