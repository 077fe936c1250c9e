package domain

import (
	"context"

	"github.com/google/uuid"
)

type TenantStore interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
	UpdatePlan(ctx context.Context, id uuid.UUID, plan Plan) (*Tenant, error)
}

type UserStore interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, tenantID uuid.UUID, role Role) (*User, error)
	// DeleteInTenant removes the user only if it belongs to tenantID and
	// returns the number of rows removed.
	DeleteInTenant(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (int64, error)
}

type NoteStore interface {
	Create(ctx context.Context, n *Note) error
	GetByID(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*Note, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]Note, error)
	Update(ctx context.Context, n *Note) error
	Delete(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) error
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error)
}
