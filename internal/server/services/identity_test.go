package services

import (
	"errors"
	"testing"

	"github.com/mvasiljevs/taskdesk/internal/common"
	"github.com/mvasiljevs/taskdesk/internal/server/models"
)

func TestIdentityFromUser(t *testing.T) {
	if got := IdentityFromUser(nil); got != nil {
		t.Fatalf("nil user: want nil identity, got %+v", got)
	}

	u := &models.User{ID: 7, Username: "frank", Role: models.RoleAdmin}
	id := IdentityFromUser(u)
	if id == nil || id.ID != 7 || id.Username != "frank" || id.Role != models.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestIsAdmin(t *testing.T) {
	var nilID *Identity
	if nilID.IsAdmin() {
		t.Fatal("nil identity must not be admin")
	}
	if userIdentity(1).IsAdmin() {
		t.Fatal("user role must not be admin")
	}
	if !adminIdentity().IsAdmin() {
		t.Fatal("admin role must be admin")
	}
}

func TestRequireRole(t *testing.T) {
	if err := RequireRole(nil, models.RoleAdmin); !errors.Is(err, common.ErrorUnauthenticated) {
		t.Fatalf("nil identity: want ErrorUnauthenticated, got %v", err)
	}
	if err := RequireRole(userIdentity(1), models.RoleAdmin); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("role mismatch: want ErrorForbidden, got %v", err)
	}
	if err := RequireRole(adminIdentity(), models.RoleAdmin); err != nil {
		t.Fatalf("matching role: want nil, got %v", err)
	}
	if err := RequireRole(userIdentity(1), models.RoleUser); err != nil {
		t.Fatalf("matching user role: want nil, got %v", err)
	}
}

func TestRequireOwnerOrAdmin(t *testing.T) {
	if err := RequireOwnerOrAdmin(nil, 1); !errors.Is(err, common.ErrorUnauthenticated) {
		t.Fatalf("nil identity: want ErrorUnauthenticated, got %v", err)
	}
	if err := RequireOwnerOrAdmin(userIdentity(1), 1); err != nil {
		t.Fatalf("owner: want nil, got %v", err)
	}
	if err := RequireOwnerOrAdmin(adminIdentity(), 1); err != nil {
		t.Fatalf("admin on foreign resource: want nil, got %v", err)
	}
	if err := RequireOwnerOrAdmin(userIdentity(2), 1); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("non-owner: want ErrorForbidden, got %v", err)
	}
}
