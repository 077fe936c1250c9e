package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	TenantID     uuid.UUID `json:"tenantId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleAdmin, RoleMember:
		return true
	}
	return false
}

// ParseRole normalizes r to upper case and validates it.
func ParseRole(r string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(r)))
	if !ValidRole(string(role)) {
		return "", false
	}
	return role, true
}
