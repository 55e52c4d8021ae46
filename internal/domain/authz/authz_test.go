package authz

import (
	"errors"
	"testing"

	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
	"github.com/aitbenali/medina-journeys/internal/domain/entity"
)

func TestCan(t *testing.T) {
	cases := []struct {
		role       entity.Role
		capability Capability
		want       bool
	}{
		{entity.RoleAdmin, ManageEvents, true},
		{entity.RoleAdmin, ManageOwnClub, true},
		{entity.RoleAdmin, ManageClubs, true},
		{entity.RoleAdmin, ManageUsers, true},
		{entity.RoleAdmin, RefundPayments, true},
		{entity.RoleAdmin, ViewAdmin, true},
		{entity.RoleClubManager, ManageEvents, true},
		{entity.RoleClubManager, ManageOwnClub, true},
		{entity.RoleClubManager, ManageClubs, false},
		{entity.RoleClubManager, ManageUsers, false},
		{entity.RoleClubManager, RefundPayments, false},
		{entity.RoleClubManager, ViewAdmin, false},
		{entity.RoleMember, ManageEvents, false},
		{entity.RoleMember, ManageOwnClub, false},
		{entity.RoleMember, ManageClubs, false},
		{entity.RoleMember, ManageUsers, false},
		{entity.RoleMember, RefundPayments, false},
		{entity.RoleMember, ViewAdmin, false},
	}
	for _, tc := range cases {
		if got := Can(tc.role, tc.capability); got != tc.want {
			t.Errorf("Can(%s, %s) = %v, want %v", tc.role, tc.capability, got, tc.want)
		}
	}
}

func TestCanUnknownRole(t *testing.T) {
	if Can(entity.Role("intruder"), ManageEvents) {
		t.Error("unknown role must have no capabilities")
	}
}

func TestRequire(t *testing.T) {
	if err := Require(entity.RoleAdmin, RefundPayments); err != nil {
		t.Errorf("admin refund: unexpected error %v", err)
	}
	if err := Require(entity.RoleMember, ManageEvents); !errors.Is(err, errorz.ErrForbidden) {
		t.Errorf("member manage events: got %v, want ErrForbidden", err)
	}
}
