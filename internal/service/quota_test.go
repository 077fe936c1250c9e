package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Harshitk-cp/notely/internal/domain"
	"github.com/Harshitk-cp/notely/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTenantStore mocks the TenantStore interface.
type MockTenantStore struct {
	mock.Mock
}

func (m *MockTenantStore) Create(ctx context.Context, t *domain.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTenantStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantStore) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantStore) UpdatePlan(ctx context.Context, id uuid.UUID, plan domain.Plan) (*domain.Tenant, error) {
	args := m.Called(ctx, id, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

// MockNoteCounter mocks the count part of NoteStore; other methods are unused by QuotaPolicy.
type MockNoteCounter struct {
	mock.Mock
	domain.NoteStore
}

func (m *MockNoteCounter) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

func TestQuotaPolicy_CanCreateNote(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		plan  domain.Plan
		count int
		want  error
	}{
		{"free with room", domain.PlanFree, 2, nil},
		{"free at limit", domain.PlanFree, 3, ErrQuotaExceeded},
		{"free over limit", domain.PlanFree, 5, ErrQuotaExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenantID := uuid.New()
			ts := new(MockTenantStore)
			ns := new(MockNoteCounter)
			ts.On("GetByID", ctx, tenantID).Return(&domain.Tenant{ID: tenantID, Plan: tt.plan}, nil)
			ns.On("CountByTenant", ctx, tenantID).Return(tt.count, nil)

			err := NewQuotaPolicy(ts, ns).CanCreateNote(ctx, tenantID)
			assert.Equal(t, tt.want, err)
			ts.AssertExpectations(t)
			ns.AssertExpectations(t)
		})
	}
}

func TestQuotaPolicy_ProSkipsCount(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	ts := new(MockTenantStore)
	ns := new(MockNoteCounter)
	ts.On("GetByID", ctx, tenantID).Return(&domain.Tenant{ID: tenantID, Plan: domain.PlanPro}, nil)

	err := NewQuotaPolicy(ts, ns).CanCreateNote(ctx, tenantID)
	assert.NoError(t, err)
	ns.AssertNotCalled(t, "CountByTenant", mock.Anything, mock.Anything)
}

func TestQuotaPolicy_Errors(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("missing tenant", func(t *testing.T) {
		ts := new(MockTenantStore)
		ts.On("GetByID", ctx, tenantID).Return(nil, store.ErrNotFound)
		err := NewQuotaPolicy(ts, new(MockNoteCounter)).CanCreateNote(ctx, tenantID)
		assert.Equal(t, ErrTenantNotFound, err)
	})

	t.Run("count failure propagates", func(t *testing.T) {
		boom := errors.New("connection reset")
		ts := new(MockTenantStore)
		ns := new(MockNoteCounter)
		ts.On("GetByID", ctx, tenantID).Return(&domain.Tenant{ID: tenantID, Plan: domain.PlanFree}, nil)
		ns.On("CountByTenant", ctx, tenantID).Return(0, boom)
		err := NewQuotaPolicy(ts, ns).CanCreateNote(ctx, tenantID)
		assert.ErrorIs(t, err, boom)
	})
}
