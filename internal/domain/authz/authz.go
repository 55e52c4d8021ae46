// Package authz is the single place where roles are mapped to what they may
// do. Handlers and services ask for a capability instead of comparing role
// strings, which keeps the whole permission model testable in one table.
package authz

import (
	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
	"github.com/aitbenali/medina-journeys/internal/domain/entity"
)

type Capability string

const (
	// ManageEvents allows creating and editing events. Club managers are
	// additionally restricted to their own club's events in the service
	// layer; admins are not.
	ManageEvents   Capability = "manage_events"
	ManageOwnClub  Capability = "manage_own_club"
	ManageClubs    Capability = "manage_clubs"
	ManageUsers    Capability = "manage_users"
	RefundPayments Capability = "refund_payments"
	ViewAdmin      Capability = "view_admin"
)

var grants = map[entity.Role]map[Capability]bool{
	entity.RoleAdmin: {
		ManageEvents:   true,
		ManageOwnClub:  true,
		ManageClubs:    true,
		ManageUsers:    true,
		RefundPayments: true,
		ViewAdmin:      true,
	},
	entity.RoleClubManager: {
		ManageEvents:  true,
		ManageOwnClub: true,
	},
	entity.RoleMember: {},
}

func Can(role entity.Role, capability Capability) bool {
	return grants[role][capability]
}

// Require returns errorz.ErrForbidden when the role lacks the capability.
func Require(role entity.Role, capability Capability) error {
	if !Can(role, capability) {
		return errorz.ErrForbidden
	}
	return nil
}
