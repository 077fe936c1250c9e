package service

import (
	"context"
	"testing"

	"github.com/Harshitk-cp/notely/internal/domain"
	"github.com/Harshitk-cp/notely/internal/security"
	"github.com/Harshitk-cp/notely/internal/store/storetest"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// testEnv wires every service against one in-memory store.
type testEnv struct {
	mem     *storetest.Memory
	hasher  *security.Hasher
	tokens  *security.TokenService
	auth    *AuthService
	notes   *NoteService
	tenants *TenantService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := storetest.New()
	hasher := security.NewHasher(bcrypt.MinCost)
	tokens, err := security.NewTokenService([]byte("service-test-secret"), "notely", 0)
	require.NoError(t, err)
	logger := zap.NewNop()

	return &testEnv{
		mem:     mem,
		hasher:  hasher,
		tokens:  tokens,
		auth:    NewAuthService(mem.Tenants(), mem.Users(), hasher, tokens, logger),
		notes:   NewNoteService(mem.Notes(), NewQuotaPolicy(mem.Tenants(), mem.Notes()), logger),
		tenants: NewTenantService(mem.Tenants(), mem.Users(), hasher, "password", logger),
	}
}

func (e *testEnv) tenant(t *testing.T, slug string, plan domain.Plan) *domain.Tenant {
	t.Helper()
	tn := &domain.Tenant{Name: slug, Slug: slug, Plan: plan}
	require.NoError(t, e.mem.Tenants().Create(context.Background(), tn))
	return tn
}

func (e *testEnv) user(t *testing.T, tn *domain.Tenant, email string, role domain.Role) domain.Principal {
	t.Helper()
	hash, err := e.hasher.Hash("password")
	require.NoError(t, err)
	u := &domain.User{Email: email, PasswordHash: hash, Role: role, TenantID: tn.ID}
	require.NoError(t, e.mem.Users().Create(context.Background(), u))
	return domain.Principal{UserID: u.ID, TenantID: tn.ID, Role: role}
}
