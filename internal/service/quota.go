package service

import (
	"context"
	"errors"

	"github.com/Harshitk-cp/notely/internal/domain"
	"github.com/Harshitk-cp/notely/internal/store"
	"github.com/google/uuid"
)

// QuotaPolicy caps note creation by the tenant's plan.
//
// The check is read-count-then-insert with no lock, so concurrent creates in
// the same tenant can admit a note past the limit.
type QuotaPolicy struct {
	tenants domain.TenantStore
	notes   domain.NoteStore
}

func NewQuotaPolicy(tenants domain.TenantStore, notes domain.NoteStore) *QuotaPolicy {
	return &QuotaPolicy{tenants: tenants, notes: notes}
}

// CanCreateNote returns nil if the tenant may add one more note, or ErrQuotaExceeded.
func (q *QuotaPolicy) CanCreateNote(ctx context.Context, tenantID uuid.UUID) error {
	tenant, err := q.tenants.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTenantNotFound
		}
		return err
	}

	limits := domain.GetPlanLimits(tenant.Plan)
	if limits.Unlimited {
		return nil
	}

	count, err := q.notes.CountByTenant(ctx, tenantID)
	if err != nil {
		return err
	}
	if !limits.AllowsAnotherNote(count) {
		return ErrQuotaExceeded
	}
	return nil
}
