package salesteam

import (
	"time"

	"github.com/google/uuid"

	"github.com/lumengrid/lumengrid-quote/internal/catalog"
)

// Role enumerates sales-team roles.
type Role string

const (
	RoleSales      Role = "sales"
	RolePartner    Role = "partner"
	RoleSuperAdmin Role = "superAdmin"
)

// SalesUser is an attribution target for quotations. This engine never
// mutates sales users.
type SalesUser struct {
	ID   uuid.UUID
	Name string
	Role Role
	// AllowedCustomerTypes restricts which tiers a partner may quote for;
	// empty for non-partner roles.
	AllowedCustomerTypes []catalog.CustomerTier
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Elevated reports whether the user may assign quotations on behalf of
// other representatives.
func (u SalesUser) Elevated() bool {
	return u.Role == RoleSuperAdmin || u.Role == RolePartner
}

// MayQuoteFor reports whether the user may create quotations for a tier.
func (u SalesUser) MayQuoteFor(tier catalog.CustomerTier) bool {
	if u.Role != RolePartner || len(u.AllowedCustomerTypes) == 0 {
		return true
	}
	for _, t := range u.AllowedCustomerTypes {
		if t == tier {
			return true
		}
	}
	return false
}
