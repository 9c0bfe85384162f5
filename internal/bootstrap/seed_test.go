package bootstrap

import (
	"context"
	"testing"

	"anoa.com/livestockhub/internal/entity"
	userService "anoa.com/livestockhub/internal/modules/user/service"
	"anoa.com/livestockhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedAdminIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	admin, err := SeedAdmin(ctx, db, "admin@livestockhub.local", "admin12345", zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin12345")))

	var profile entity.Profile
	require.NoError(t, db.First(&profile, "id = ?", admin.ID).Error)
	assert.True(t, profile.OnboardingCompleted)

	again, err := SeedAdmin(ctx, db, "other@livestockhub.local", "admin12345", zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, admin.ID, again.ID)

	var admins int64
	require.NoError(t, db.Model(&entity.UserRole{}).Where("role = ?", entity.RoleAdmin).Count(&admins).Error)
	assert.Equal(t, int64(1), admins)
}

func TestSeedAdminRequiresCredentials(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, err := SeedAdmin(context.Background(), db, "", "", zap.NewNop())
	assert.Error(t, err)
}

func TestSeedContent(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, db, "admin@example.com", true, entity.RoleAdmin)

	require.NoError(t, SeedContent(ctx, db, admin, zap.NewNop()))
	require.NoError(t, SeedContent(ctx, db, admin, zap.NewNop()))

	var items, schemes int64
	require.NoError(t, db.Model(&entity.ContentItem{}).Where("published = ?", true).Count(&items).Error)
	require.NoError(t, db.Model(&entity.Scheme{}).Count(&schemes).Error)
	assert.Equal(t, int64(len(starterContent)), items)
	assert.Equal(t, int64(len(starterSchemes)), schemes)
}

func TestSeedDemoUsers(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, SeedDemoUsers(ctx, db, zap.NewNop()))
	require.NoError(t, SeedDemoUsers(ctx, db, zap.NewNop()))

	for _, role := range DemoRoles {
		var user entity.User
		require.NoError(t, db.Preload("Profile").Preload("Roles").First(&user, "email = ?", userService.DemoEmail(role)).Error, role)
		require.Len(t, user.Roles, 1)
		assert.Equal(t, role, user.Roles[0].Role)
		require.NotNil(t, user.Profile)
		assert.True(t, user.Profile.OnboardingCompleted)
	}

	var users int64
	require.NoError(t, db.Model(&entity.User{}).Count(&users).Error)
	assert.Equal(t, int64(len(DemoRoles)), users)
}
