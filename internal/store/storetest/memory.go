// Package storetest provides an in-memory implementation of the domain stores
// that mirrors the Postgres constraints (unique slug and email, tenant-scoped
// lookups, cascade of notes on user removal). It is meant for tests only.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Harshitk-cp/notely/internal/domain"
	"github.com/Harshitk-cp/notely/internal/store"
	"github.com/google/uuid"
)

type Memory struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]domain.Tenant
	users   map[uuid.UUID]domain.User
	notes   map[uuid.UUID]domain.Note
	seq     int
	err     error
}

func New() *Memory {
	return &Memory{
		tenants: make(map[uuid.UUID]domain.Tenant),
		users:   make(map[uuid.UUID]domain.User),
		notes:   make(map[uuid.UUID]domain.Note),
	}
}

// FailWith makes every subsequent store call return err. Pass nil to recover.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Memory) Tenants() *TenantStore { return &TenantStore{m} }
func (m *Memory) Users() *UserStore     { return &UserStore{m} }
func (m *Memory) Notes() *NoteStore     { return &NoteStore{m} }

// stamp returns strictly increasing timestamps so created_at ordering is stable.
func (m *Memory) stamp() time.Time {
	m.seq++
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Millisecond)
}

type TenantStore struct{ m *Memory }

func (s *TenantStore) Create(ctx context.Context, t *domain.Tenant) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.err != nil {
		return s.m.err
	}
	for _, existing := range s.m.tenants {
		if existing.Slug == t.Slug {
			return store.ErrConflict
		}
	}
	if t.Plan == "" {
		t.Plan = domain.PlanFree
	}
	t.ID = uuid.New()
	t.CreatedAt = s.m.stamp()
	t.UpdatedAt = t.CreatedAt
	s.m.tenants[t.ID] = *t
	return nil
}

func (s *TenantStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.err != nil {
		return nil, s.m.err
	}
	t, ok := s.m.tenants[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &t, nil
}

func (s *TenantStore) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.err != nil {
		return nil, s.m.err
	}
	for _, t := range s.m.tenants {
		if t.Slug == slug {
			t := t
			return &t, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *TenantStore) UpdatePlan(ctx context.Context, id uuid.UUID, plan domain.Plan) (*domain.Tenant, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.err != nil {
		return nil, s.m.err
	}
	t, ok := s.m.tenants[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	t.Plan = plan
	t.UpdatedAt = s.m.stamp()
	s.m.tenants[id] = t
	return &t, nil
}

type UserStore struct{ m *Memory }

func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.err != nil {
		return s.m.err
	}
	for _, existing := range s.m.users {
		if existing.Email == u.Email {
			return store.ErrConflict
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = s.m.stamp()
	u.UpdatedAt = u.CreatedAt
	s.m.users[u.ID] = *u
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.err != nil {
		return nil, s.m.err
	}
	u, ok := s.m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.err != nil {
		return nil, s.m.err
	}
	for _, u := range s.m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *UserStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.err != nil {
		return nil, s.m.err
	}
	users := []domain.User{}
	for _, u := range s.m.users {
		if u.TenantID == tenantID {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (s *UserStore) UpdateRole(ctx context.Context, id uuid.UUID, tenantID uuid.UUID, role domain.Role) (*domain.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.err != nil {
		return nil, s.m.err
	}
	u, ok := s.m.users[id]
	if !ok || u.TenantID != tenantID {
		return nil, store.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = s.m.stamp()
	s.m.users[id] = u
	return &u, nil
}

func (s *UserStore) DeleteInTenant(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.err != nil {
		return 0, s.m.err
	}
	u, ok := s.m.users[id]
	if !ok || u.TenantID != tenantID {
		return 0, nil
	}
	delete(s.m.users, id)
	for nid, n := range s.m.notes {
		if n.OwnerID == id {
			delete(s.m.notes, nid)
		}
	}
	return 1, nil
}

type NoteStore struct{ m *Memory }

func (s *NoteStore) Create(ctx context.Context, n *domain.Note) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.err != nil {
		return s.m.err
	}
	n.ID = uuid.New()
	n.CreatedAt = s.m.stamp()
	n.UpdatedAt = n.CreatedAt
	s.m.notes[n.ID] = *n
	return nil
}

func (s *NoteStore) GetByID(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*domain.Note, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.err != nil {
		return nil, s.m.err
	}
	n, ok := s.m.notes[id]
	if !ok || n.TenantID != tenantID {
		return nil, store.ErrNotFound
	}
	return &n, nil
}

func (s *NoteStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Note, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.err != nil {
		return nil, s.m.err
	}
	notes := []domain.Note{}
	for _, n := range s.m.notes {
		if n.TenantID == tenantID {
			notes = append(notes, n)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].CreatedAt.Before(notes[j].CreatedAt) })
	return notes, nil
}

func (s *NoteStore) Update(ctx context.Context, n *domain.Note) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.err != nil {
		return s.m.err
	}
	existing, ok := s.m.notes[n.ID]
	if !ok || existing.TenantID != n.TenantID {
		return store.ErrNotFound
	}
	existing.Title = n.Title
	existing.Content = n.Content
	existing.UpdatedAt = s.m.stamp()
	n.UpdatedAt = existing.UpdatedAt
	s.m.notes[n.ID] = existing
	return nil
}

func (s *NoteStore) Delete(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.err != nil {
		return s.m.err
	}
	n, ok := s.m.notes[id]
	if !ok || n.TenantID != tenantID {
		return store.ErrNotFound
	}
	delete(s.m.notes, id)
	return nil
}

func (s *NoteStore) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.err != nil {
		return 0, s.m.err
	}
	count := 0
	for _, n := range s.m.notes {
		if n.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

var (
	_ domain.TenantStore = (*TenantStore)(nil)
	_ domain.UserStore   = (*UserStore)(nil)
	_ domain.NoteStore   = (*NoteStore)(nil)
)
