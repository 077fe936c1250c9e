package store

import (
	"context"
	"errors"

	"github.com/Harshitk-cp/notely/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TenantStore struct {
	db *pgxpool.Pool
}

func NewTenantStore(db *pgxpool.Pool) *TenantStore {
	return &TenantStore{db: db}
}

func (s *TenantStore) Create(ctx context.Context, t *domain.Tenant) error {
	if t.Plan == "" {
		t.Plan = domain.PlanFree
	}
	err := s.db.QueryRow(ctx,
		`INSERT INTO tenants (name, slug, plan) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		t.Name, t.Slug, t.Plan,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *TenantStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	return s.getOne(ctx,
		`SELECT id, name, slug, plan, created_at, updated_at
		 FROM tenants WHERE id = $1`, id)
}

func (s *TenantStore) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	return s.getOne(ctx,
		`SELECT id, name, slug, plan, created_at, updated_at
		 FROM tenants WHERE slug = $1`, slug)
}

func (s *TenantStore) UpdatePlan(ctx context.Context, id uuid.UUID, plan domain.Plan) (*domain.Tenant, error) {
	return s.getOne(ctx,
		`UPDATE tenants SET plan = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, name, slug, plan, created_at, updated_at`, id, plan)
}

func (s *TenantStore) getOne(ctx context.Context, query string, args ...any) (*domain.Tenant, error) {
	t := &domain.Tenant{}
	err := s.db.QueryRow(ctx, query, args...).
		Scan(&t.ID, &t.Name, &t.Slug, &t.Plan, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}
