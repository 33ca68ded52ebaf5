package stock

import (
	"github.com/erp/stockops/internal/domain/shared"
	"github.com/google/uuid"
)

// Role constants for warehouse-operations entry points
const (
	// RoleCancelBackToDraft authorizes cancelling confirmed pickings and
	// resetting them to draft, including warehouse reassignment.
	RoleCancelBackToDraft = "stock.cancel_back_to_draft"
)

// AuthContext carries the caller's identity and roles into every entry-point
// operation. It is always passed explicitly; there is no ambient current
// user.
type AuthContext struct {
	UserID uuid.UUID
	Roles  []string
}

// HasRole reports whether the caller holds the given role
func (a AuthContext) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// requireRole returns a permission error unless the caller holds the role.
// Permission is checked before any other validation.
func requireRole(auth AuthContext, role string) error {
	if !auth.HasRole(role) {
		return shared.NewPermissionError(
			"MISSING_ROLE",
			"You do not have permission to cancel and set pickings back to draft",
		)
	}
	return nil
}
