package service

import (
	"context"
	"testing"

	"github.com/Harshitk-cp/notely/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	acme := env.tenant(t, "acme", domain.PlanFree)

	u, err := env.auth.Register(ctx, RegisterInput{Email: "New@Acme.test", Password: "hunter2", TenantSlug: "acme"})
	require.NoError(t, err)
	assert.Equal(t, "new@acme.test", u.Email)
	assert.Equal(t, domain.RoleMember, u.Role)
	assert.Equal(t, acme.ID, u.TenantID)
	assert.NotEqual(t, "hunter2", u.PasswordHash)

	_, err = env.auth.Register(ctx, RegisterInput{Email: "new@acme.test", Password: "x", TenantSlug: "acme"})
	assert.Equal(t, ErrUserExists, err)

	_, err = env.auth.Register(ctx, RegisterInput{Email: "b@acme.test", Password: "x", TenantSlug: "nope"})
	assert.Equal(t, ErrInvalidTenantSlug, err)

	for _, in := range []RegisterInput{
		{Password: "x", TenantSlug: "acme"},
		{Email: "c@acme.test", TenantSlug: "acme"},
		{Email: "c@acme.test", Password: "x"},
	} {
		_, err = env.auth.Register(ctx, in)
		assert.Equal(t, ErrRegisterFieldsRequired, err)
	}
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	acme := env.tenant(t, "acme", domain.PlanFree)
	admin := env.user(t, acme, "admin@acme.test", domain.RoleAdmin)

	res, err := env.auth.Login(ctx, "admin@acme.test", "password")
	require.NoError(t, err)
	assert.Equal(t, admin.UserID, res.User.ID)
	assert.Equal(t, "acme", res.Tenant.Slug)

	p, err := env.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, admin, p)

	_, err = env.auth.Login(ctx, "admin@acme.test", "wrong")
	assert.Equal(t, ErrInvalidCredentials, err)

	_, err = env.auth.Login(ctx, "ghost@acme.test", "password")
	assert.Equal(t, ErrInvalidCredentials, err)

	_, err = env.auth.Login(ctx, "", "password")
	assert.Equal(t, ErrCredentialsRequired, err)
}

func TestAuthService_Me(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	acme := env.tenant(t, "acme", domain.PlanPro)
	member := env.user(t, acme, "user@acme.test", domain.RoleMember)

	u, tn, err := env.auth.Me(ctx, member)
	require.NoError(t, err)
	assert.Equal(t, member.UserID, u.ID)
	assert.Equal(t, domain.PlanPro, tn.Plan)

	_, _, err = env.auth.Me(ctx, domain.Principal{UserID: uuid.New(), TenantID: acme.ID, Role: domain.RoleMember})
	assert.Equal(t, ErrUserNotFound, err)
}
