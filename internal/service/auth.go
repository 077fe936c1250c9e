package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Harshitk-cp/notely/internal/domain"
	"github.com/Harshitk-cp/notely/internal/store"
	"go.uber.org/zap"
)

var (
	ErrRegisterFieldsRequired = errors.New("email, password, and tenantSlug are required")
	ErrCredentialsRequired    = errors.New("email and password are required")
	ErrInvalidTenantSlug      = errors.New("invalid tenantSlug")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrUserExists             = errors.New("user already exists")
	ErrUserNotFound           = errors.New("user not found")
	ErrTenantNotFound         = errors.New("tenant not found")
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(hash, password string) bool
}

type TokenIssuer interface {
	Issue(p domain.Principal) (string, time.Time, error)
}

type AuthService struct {
	tenants domain.TenantStore
	users   domain.UserStore
	hasher  PasswordHasher
	tokens  TokenIssuer
	logger  *zap.Logger
}

func NewAuthService(ts domain.TenantStore, us domain.UserStore, hasher PasswordHasher, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		tenants: ts,
		users:   us,
		hasher:  hasher,
		tokens:  tokens,
		logger:  logger,
	}
}

type RegisterInput struct {
	Email      string
	Password   string
	TenantSlug string
}

// Register creates a MEMBER in an existing tenant.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" || in.TenantSlug == "" {
		return nil, ErrRegisterFieldsRequired
	}

	tenant, err := s.tenants.GetBySlug(ctx, in.TenantSlug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidTenantSlug
		}
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleMember,
		TenantID:     tenant.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("tenant_id", tenant.ID.String()))
	return user, nil
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
	Tenant    *domain.Tenant
}

// Login checks the password against the stored hash and issues a session token.
// Unknown email and wrong password return the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	tenant, err := s.tenants.GetByID(ctx, user.TenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("tenant not found for user", zap.String("user_id", user.ID.String()))
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	if !s.hasher.Matches(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(domain.Principal{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Role:     user.Role,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		Tenant:    tenant,
	}, nil
}

// Me reloads the caller's user and tenant. The token itself is not re-checked
// against the store, so a user removed after login surfaces here as ErrUserNotFound.
func (s *AuthService) Me(ctx context.Context, p domain.Principal) (*domain.User, *domain.Tenant, error) {
	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	tenant, err := s.tenants.GetByID(ctx, user.TenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrTenantNotFound
		}
		return nil, nil, err
	}
	return user, tenant, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
