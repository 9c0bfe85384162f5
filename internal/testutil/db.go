// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"anoa.com/livestockhub/internal/entity"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with every model migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(entity.All()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// NewTestRedis starts a miniredis server and returns a client bound to it.
func NewTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

// CreateUser inserts a user with a profile and the given roles.
func CreateUser(t *testing.T, db *gorm.DB, email string, onboarded bool, roles ...entity.Role) *entity.User {
	t.Helper()

	user := &entity.User{Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&entity.Profile{
		ID:                  user.ID,
		FullName:            strings.Split(email, "@")[0],
		PreferredLanguage:   "en",
		OnboardingCompleted: onboarded,
	}).Error)
	for _, r := range roles {
		require.NoError(t, db.Create(&entity.UserRole{UserID: user.ID, Role: r}).Error)
	}
	return user
}

// CreateAnimal inserts an animal owned by ownerID.
func CreateAnimal(t *testing.T, db *gorm.DB, ownerID uuid.UUID, species string) *entity.Animal {
	t.Helper()

	a := &entity.Animal{OwnerID: ownerID, Species: species, Gender: "female", HealthStatus: entity.HealthStatusHealthy}
	require.NoError(t, db.WithContext(context.Background()).Create(a).Error)
	return a
}

// Day returns midnight UTC of t shifted by days.
func Day(t time.Time, days int) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d+days, 0, 0, 0, 0, time.UTC)
}
