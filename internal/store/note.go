package store

import (
	"context"
	"errors"

	"github.com/Harshitk-cp/notely/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NoteStore struct {
	db *pgxpool.Pool
}

func NewNoteStore(db *pgxpool.Pool) *NoteStore {
	return &NoteStore{db: db}
}

func (s *NoteStore) Create(ctx context.Context, n *domain.Note) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO notes (title, content, tenant_id, owner_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		n.Title, n.Content, n.TenantID, n.OwnerID,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

// GetByID filters on id and tenant together; a note in another tenant is ErrNotFound.
func (s *NoteStore) GetByID(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*domain.Note, error) {
	n := &domain.Note{}
	err := s.db.QueryRow(ctx,
		`SELECT id, title, content, tenant_id, owner_id, created_at, updated_at
		 FROM notes WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	).Scan(&n.ID, &n.Title, &n.Content, &n.TenantID, &n.OwnerID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

func (s *NoteStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Note, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, title, content, tenant_id, owner_id, created_at, updated_at
		 FROM notes WHERE tenant_id = $1
		 ORDER BY created_at ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.TenantID, &n.OwnerID, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *NoteStore) Update(ctx context.Context, n *domain.Note) error {
	err := s.db.QueryRow(ctx,
		`UPDATE notes SET title = $3, content = $4, updated_at = NOW()
		 WHERE id = $1 AND tenant_id = $2
		 RETURNING updated_at`,
		n.ID, n.TenantID, n.Title, n.Content,
	).Scan(&n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *NoteStore) Delete(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *NoteStore) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notes WHERE tenant_id = $1`, tenantID,
	).Scan(&count)
	return count, err
}
