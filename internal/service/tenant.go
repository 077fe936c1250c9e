package service

import (
	"context"
	"errors"

	"github.com/Harshitk-cp/notely/internal/domain"
	"github.com/Harshitk-cp/notely/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrForbidden     = errors.New("forbidden")
	ErrEmailRequired = errors.New("email is required")
	ErrInvalidRole   = errors.New("invalid role")
	ErrSelfDeletion  = errors.New("cannot delete yourself")
	ErrAlreadyOnPlan = errors.New("tenant is already on PRO plan")
)

// TenantService implements tenant administration. Routes are role-gated by
// middleware; every method here also checks that the slug resolves to the
// caller's own tenant, before looking at any other input.
type TenantService struct {
	tenants        domain.TenantStore
	users          domain.UserStore
	hasher         PasswordHasher
	invitePassword string
	logger         *zap.Logger
}

func NewTenantService(ts domain.TenantStore, us domain.UserStore, hasher PasswordHasher, invitePassword string, logger *zap.Logger) *TenantService {
	return &TenantService{
		tenants:        ts,
		users:          us,
		hasher:         hasher,
		invitePassword: invitePassword,
		logger:         logger,
	}
}

// resolve loads the tenant for slug and requires it to be the caller's.
func (s *TenantService) resolve(ctx context.Context, p domain.Principal, slug string) (*domain.Tenant, error) {
	tenant, err := s.tenants.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	if tenant.ID != p.TenantID {
		return nil, ErrForbidden
	}
	return tenant, nil
}

func (s *TenantService) GetInfo(ctx context.Context, p domain.Principal, slug string) (*domain.Tenant, error) {
	return s.resolve(ctx, p, slug)
}

func (s *TenantService) ListUsers(ctx context.Context, p domain.Principal, slug string) ([]domain.User, error) {
	tenant, err := s.resolve(ctx, p, slug)
	if err != nil {
		return nil, err
	}
	return s.users.ListByTenant(ctx, tenant.ID)
}

type InviteResult struct {
	User              *domain.User
	TemporaryPassword string
}

// InviteUser creates a user in the caller's tenant with the configured default
// password. role defaults to MEMBER. Email uniqueness is global, not per tenant.
func (s *TenantService) InviteUser(ctx context.Context, p domain.Principal, slug, email, role string) (*InviteResult, error) {
	tenant, err := s.resolve(ctx, p, slug)
	if err != nil {
		return nil, err
	}

	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	r := domain.RoleMember
	if role != "" {
		parsed, ok := domain.ParseRole(role)
		if !ok {
			return nil, ErrInvalidRole
		}
		r = parsed
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(s.invitePassword)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         r,
		TenantID:     tenant.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	s.logger.Info("user invited",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("invited_by", p.UserID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(r)))

	return &InviteResult{User: user, TemporaryPassword: s.invitePassword}, nil
}

func (s *TenantService) ChangeUserRole(ctx context.Context, p domain.Principal, slug, userID, role string) (*domain.User, error) {
	tenant, err := s.resolve(ctx, p, slug)
	if err != nil {
		return nil, err
	}

	r, ok := domain.ParseRole(role)
	if !ok {
		return nil, ErrInvalidRole
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := s.users.UpdateRole(ctx, id, tenant.ID, r)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.logger.Info("user role changed",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("changed_by", p.UserID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(r)))
	return user, nil
}

// RemoveUser deletes a user of the caller's tenant. An id that is unknown or
// belongs to another tenant is a no-op and still succeeds.
func (s *TenantService) RemoveUser(ctx context.Context, p domain.Principal, slug, userID string) error {
	tenant, err := s.resolve(ctx, p, slug)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil
	}
	if id == p.UserID {
		return ErrSelfDeletion
	}

	removed, err := s.users.DeleteInTenant(ctx, id, tenant.ID)
	if err != nil {
		return err
	}

	s.logger.Info("user removed",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("removed_by", p.UserID.String()),
		zap.String("user_id", id.String()),
		zap.Int64("rows", removed))
	return nil
}

// UpgradePlan moves the tenant from FREE to PRO. There is no downgrade.
func (s *TenantService) UpgradePlan(ctx context.Context, p domain.Principal, slug string) (*domain.Tenant, error) {
	tenant, err := s.resolve(ctx, p, slug)
	if err != nil {
		return nil, err
	}
	if tenant.Plan == domain.PlanPro {
		return nil, ErrAlreadyOnPlan
	}

	updated, err := s.tenants.UpdatePlan(ctx, tenant.ID, domain.PlanPro)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	s.logger.Info("tenant upgraded",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("upgraded_by", p.UserID.String()),
		zap.String("plan", string(updated.Plan)))
	return updated, nil
}
