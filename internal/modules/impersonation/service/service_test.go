package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/livestockhub/internal/entity"
	auditRepo "anoa.com/livestockhub/internal/modules/audit/repository"
	auditService "anoa.com/livestockhub/internal/modules/audit/service"
	"anoa.com/livestockhub/internal/modules/impersonation/repository"
	"anoa.com/livestockhub/internal/modules/session"
	userRepo "anoa.com/livestockhub/internal/modules/user/repository"
	userService "anoa.com/livestockhub/internal/modules/user/service"
	"anoa.com/livestockhub/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpersonation_StartAndStop(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, db, "admin@example.com", true, entity.RoleAdmin)
	farmer := testutil.CreateUser(t, db, "farmer@example.com", false, entity.RoleFarmer)

	issuer := session.NewTokenIssuer("secret", time.Hour)
	store := session.NewStore(nil)
	auth := userService.NewAuthService(userRepo.NewUserRepository(db), issuer, store, nil, userService.Options{})
	audit := auditService.NewAuditService(auditRepo.NewAuditRepository(db), nil, nil)
	svc := NewImpersonationService(repository.NewImpersonationRepository(db), auth, audit, store, nil)

	_, adminSess, err := issuer.Issue(admin.ID, nil)
	require.NoError(t, err)

	_, err = svc.Stop(ctx, adminSess)
	assert.ErrorIs(t, err, ErrNotImpersonating)

	_, err = svc.Start(ctx, adminSess, admin.ID)
	assert.ErrorIs(t, err, ErrSelfImpersonation)

	started, err := svc.Start(ctx, adminSess, farmer.ID)
	require.NoError(t, err)
	assert.True(t, started.IsImpersonating)

	impSess, err := issuer.Parse(started.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, farmer.ID, impSess.UserID)
	require.NotNil(t, impSess.ImpersonatorID)
	assert.Equal(t, admin.ID, *impSess.ImpersonatorID)

	_, err = svc.Start(ctx, impSess, admin.ID)
	assert.ErrorIs(t, err, ErrAlreadyImpersonating)

	stopped, err := svc.Stop(ctx, impSess)
	require.NoError(t, err)
	assert.False(t, stopped.IsImpersonating)
	assert.Equal(t, started.ImpersonationID, stopped.ImpersonationID)

	back, err := issuer.Parse(stopped.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, back.UserID)
	assert.False(t, back.IsImpersonating())

	revoked, err := store.IsRevoked(ctx, impSess.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	var record entity.ImpersonationSession
	require.NoError(t, db.First(&record, "id = ?", started.ImpersonationID).Error)
	assert.NotNil(t, record.EndedAt)

	var count int64
	require.NoError(t, db.Model(&entity.AuditLog{}).Where("actor_id = ?", admin.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

// failingAudit stores nothing and rejects every entry.
type failingAudit struct {
	auditService.AuditService
}

func (failingAudit) Record(context.Context, uuid.UUID, string, *uuid.UUID, map[string]any) error {
	return errors.New("audit store unavailable")
}

func TestImpersonation_StartRollsBackWhenAuditFails(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, db, "admin@example.com", true, entity.RoleAdmin)
	farmer := testutil.CreateUser(t, db, "farmer@example.com", false, entity.RoleFarmer)

	issuer := session.NewTokenIssuer("secret", time.Hour)
	store := session.NewStore(nil)
	auth := userService.NewAuthService(userRepo.NewUserRepository(db), issuer, store, nil, userService.Options{})
	svc := NewImpersonationService(repository.NewImpersonationRepository(db), auth, failingAudit{}, store, nil)

	_, adminSess, err := issuer.Issue(admin.ID, nil)
	require.NoError(t, err)

	_, err = svc.Start(ctx, adminSess, farmer.ID)
	require.Error(t, err)

	var sessions int64
	require.NoError(t, db.Model(&entity.ImpersonationSession{}).Count(&sessions).Error)
	assert.Zero(t, sessions)
}

func TestImpersonation_StopKeepsSessionOpenWhenAuditFails(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, db, "admin@example.com", true, entity.RoleAdmin)
	farmer := testutil.CreateUser(t, db, "farmer@example.com", false, entity.RoleFarmer)

	issuer := session.NewTokenIssuer("secret", time.Hour)
	store := session.NewStore(nil)
	auth := userService.NewAuthService(userRepo.NewUserRepository(db), issuer, store, nil, userService.Options{})
	audit := auditService.NewAuditService(auditRepo.NewAuditRepository(db), nil, nil)
	repo := repository.NewImpersonationRepository(db)

	_, adminSess, err := issuer.Issue(admin.ID, nil)
	require.NoError(t, err)
	started, err := NewImpersonationService(repo, auth, audit, store, nil).Start(ctx, adminSess, farmer.ID)
	require.NoError(t, err)
	impSess, err := issuer.Parse(started.AccessToken)
	require.NoError(t, err)

	_, err = NewImpersonationService(repo, auth, failingAudit{}, store, nil).Stop(ctx, impSess)
	require.Error(t, err)

	var open entity.ImpersonationSession
	require.NoError(t, db.First(&open, "id = ?", started.ImpersonationID).Error)
	assert.Nil(t, open.EndedAt)

	revoked, err := store.IsRevoked(ctx, impSess.ID)
	require.NoError(t, err)
	assert.False(t, revoked)
}
