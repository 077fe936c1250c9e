package store

import (
	"context"
	"errors"

	"github.com/Harshitk-cp/notely/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserStore struct {
	db *pgxpool.Pool
}

func NewUserStore(db *pgxpool.Pool) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, email, password_hash, role, tenant_id, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.TenantID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, role, tenant_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		u.Email, u.PasswordHash, u.Role, u.TenantID,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (s *UserStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.User, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE tenant_id = $1
		 ORDER BY created_at ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *UserStore) UpdateRole(ctx context.Context, id uuid.UUID, tenantID uuid.UUID, role domain.Role) (*domain.User, error) {
	return scanUser(s.db.QueryRow(ctx,
		`UPDATE users SET role = $3, updated_at = NOW()
		 WHERE id = $1 AND tenant_id = $2
		 RETURNING `+userColumns, id, tenantID, role))
}

func (s *UserStore) DeleteInTenant(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM users WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
