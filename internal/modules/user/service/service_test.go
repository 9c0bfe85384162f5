package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/session"
	"anoa.com/livestockhub/internal/modules/user/dto"
	"anoa.com/livestockhub/internal/modules/user/repository"
	"anoa.com/livestockhub/internal/testutil"
	"anoa.com/livestockhub/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc    AuthService
	repo   repository.UserRepository
	issuer *session.TokenIssuer
	store  *session.Store
}

func newFixture(t *testing.T, production bool) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	issuer := session.NewTokenIssuer("secret", time.Hour)
	store := session.NewStore(nil)
	svc := NewAuthService(repo, issuer, store, nil, Options{DefaultRole: entity.RoleFarmer, Production: production})
	return &fixture{svc: svc, repo: repo, issuer: issuer, store: store}
}

func TestSignUp_AssignsDefaultRoleAndProfile(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	res, err := f.svc.SignUp(ctx, dto.SignUpInput{Email: "Asha@Example.com", Password: "password123", FullName: "Asha"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, []entity.Role{entity.RoleFarmer}, res.Roles)
	require.NotNil(t, res.Profile)
	assert.False(t, res.Profile.OnboardingCompleted)
	assert.Equal(t, "asha@example.com", res.User.Email)

	sess, err := f.issuer.Parse(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, sess.UserID)

	_, err = f.svc.SignUp(ctx, dto.SignUpInput{Email: "asha@example.com", Password: "password123", FullName: "Asha"})
	assert.Equal(t, http.StatusConflict, apperror.MapErrorToStatus(err))
}

func TestSignIn(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	_, err := f.svc.SignUp(ctx, dto.SignUpInput{Email: "ravi@example.com", Password: "password123", FullName: "Ravi"})
	require.NoError(t, err)

	res, err := f.svc.SignIn(ctx, dto.LoginInput{Email: "ravi@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)

	_, err = f.svc.SignIn(ctx, dto.LoginInput{Email: "ravi@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.SignIn(ctx, dto.LoginInput{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLogin_RequiresAdminRole(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	res, err := f.svc.SignUp(ctx, dto.SignUpInput{Email: "boss@example.com", Password: "password123", FullName: "Boss"})
	require.NoError(t, err)

	_, err = f.svc.AdminLogin(ctx, dto.LoginInput{Email: "boss@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrNotAdmin)

	require.NoError(t, f.repo.AddRole(ctx, res.User.ID, entity.RoleAdmin))
	admin, err := f.svc.AdminLogin(ctx, dto.LoginInput{Email: "boss@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Contains(t, admin.Roles, entity.RoleAdmin)
}

func TestDemoLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates onboarded demo account once", func(t *testing.T) {
		f := newFixture(t, false)
		first, err := f.svc.DemoLogin(ctx, dto.DemoLoginInput{Role: entity.RoleFarmer})
		require.NoError(t, err)
		assert.True(t, first.Profile.OnboardingCompleted)

		second, err := f.svc.DemoLogin(ctx, dto.DemoLoginInput{Role: entity.RoleFarmer})
		require.NoError(t, err)
		assert.Equal(t, first.User.ID, second.User.ID)
	})

	t.Run("disabled in production", func(t *testing.T) {
		f := newFixture(t, true)
		_, err := f.svc.DemoLogin(ctx, dto.DemoLoginInput{Role: entity.RoleAdmin})
		assert.ErrorIs(t, err, ErrDemoDisabled)
	})
}

func TestSignOut_RevokesSession(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	res, err := f.svc.SignUp(ctx, dto.SignUpInput{Email: "out@example.com", Password: "password123", FullName: "Out"})
	require.NoError(t, err)
	sess, err := f.issuer.Parse(res.AccessToken)
	require.NoError(t, err)

	me, err := f.svc.Session(ctx, sess)
	require.NoError(t, err)
	assert.False(t, me.IsImpersonating)

	require.NoError(t, f.svc.SignOut(ctx, sess))
	revoked, err := f.store.IsRevoked(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestGoogleLogin_DisabledWithoutClient(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.svc.GoogleLogin("state")
	assert.ErrorIs(t, err, ErrGoogleDisabled)
}
