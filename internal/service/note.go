package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Harshitk-cp/notely/internal/domain"
	"github.com/Harshitk-cp/notely/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNoteFieldsRequired = errors.New("title and content are required")
	ErrNoteFieldEmpty     = errors.New("title and content must not be empty")
	ErrNoteNotFound       = errors.New("note not found")
	ErrQuotaExceeded      = errors.New("free plan limit reached (max 3 notes per tenant)")
)

// NoteQuota decides whether a tenant may create another note.
type NoteQuota interface {
	CanCreateNote(ctx context.Context, tenantID uuid.UUID) error
}

// NoteService scopes every note operation to the caller's tenant. A note that
// exists in another tenant is reported exactly like one that does not exist.
type NoteService struct {
	notes  domain.NoteStore
	quota  NoteQuota
	logger *zap.Logger
}

func NewNoteService(ns domain.NoteStore, quota NoteQuota, logger *zap.Logger) *NoteService {
	return &NoteService{notes: ns, quota: quota, logger: logger}
}

func (s *NoteService) List(ctx context.Context, p domain.Principal) ([]domain.Note, error) {
	return s.notes.ListByTenant(ctx, p.TenantID)
}

func (s *NoteService) Create(ctx context.Context, p domain.Principal, title, content string) (*domain.Note, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, ErrNoteFieldsRequired
	}

	if err := s.quota.CanCreateNote(ctx, p.TenantID); err != nil {
		return nil, err
	}

	note := &domain.Note{
		Title:    title,
		Content:  content,
		TenantID: p.TenantID,
		OwnerID:  p.UserID,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Get(ctx context.Context, p domain.Principal, id uuid.UUID) (*domain.Note, error) {
	n, err := s.notes.GetByID(ctx, id, p.TenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return n, nil
}

// Update applies patch to a note in the caller's tenant. Nil patch fields are
// kept; provided fields must be non-blank.
func (s *NoteService) Update(ctx context.Context, p domain.Principal, id uuid.UUID, patch domain.NotePatch) (*domain.Note, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, ErrNoteFieldEmpty
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return nil, ErrNoteFieldEmpty
	}

	n, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}

	if err := s.notes.Update(ctx, n); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return n, nil
}

func (s *NoteService) Delete(ctx context.Context, p domain.Principal, id uuid.UUID) error {
	if _, err := s.Get(ctx, p, id); err != nil {
		return err
	}
	if err := s.notes.Delete(ctx, id, p.TenantID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoteNotFound
		}
		return err
	}
	s.logger.Debug("note deleted",
		zap.String("note_id", id.String()),
		zap.String("tenant_id", p.TenantID.String()),
		zap.String("user_id", p.UserID.String()))
	return nil
}
