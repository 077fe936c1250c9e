package domain

import "github.com/google/uuid"

// Principal is the verified identity carried by a session token. Its TenantID
// is the only tenant scope a request may act in.
type Principal struct {
	UserID   uuid.UUID `json:"userId"`
	TenantID uuid.UUID `json:"tenantId"`
	Role     Role      `json:"role"`
}

// HasRole reports whether the principal holds one of roles. An empty list
// admits any role.
func (p Principal) HasRole(roles ...Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
