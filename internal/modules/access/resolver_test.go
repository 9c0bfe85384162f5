package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/session"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoles struct {
	roles map[uuid.UUID][]entity.Role
	err   error
	calls int
}

func (f *fakeRoles) FindRolesByUserID(_ context.Context, userID uuid.UUID) ([]entity.Role, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.roles[userID], nil
}

func newSession(userID uuid.UUID) *session.Session {
	return &session.Session{ID: uuid.NewString(), UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}
}

func TestRoleResolver_CachesPerSession(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	userID := uuid.New()
	source := &fakeRoles{roles: map[uuid.UUID][]entity.Role{userID: {entity.RoleFarmer, entity.RoleAdmin}}}
	resolver := NewRoleResolver(source, rdb, time.Minute, nil)
	sess := newSession(userID)

	set := resolver.Resolve(context.Background(), sess)
	assert.True(t, set.Has(entity.RoleAdmin))
	assert.True(t, set.Has(entity.RoleFarmer))

	set = resolver.Resolve(context.Background(), sess)
	assert.Len(t, set, 2)
	assert.Equal(t, 1, source.calls)

	cached, err := mr.Get(session.RolesKey(sess.ID))
	require.NoError(t, err)
	assert.Equal(t, "admin,farmer", cached)

	resolver.Invalidate(context.Background(), sess.ID)
	resolver.Resolve(context.Background(), sess)
	assert.Equal(t, 2, source.calls)
}

func TestRoleResolver_EmptySetIsCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	source := &fakeRoles{}
	resolver := NewRoleResolver(source, rdb, time.Minute, nil)
	sess := newSession(uuid.New())

	assert.Empty(t, resolver.Resolve(context.Background(), sess))
	assert.Empty(t, resolver.Resolve(context.Background(), sess))
	assert.Equal(t, 1, source.calls)
}

func TestRoleResolver_FailureDeniesAndIsNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	source := &fakeRoles{err: errors.New("connection refused")}
	resolver := NewRoleResolver(source, rdb, time.Minute, nil)
	sess := newSession(uuid.New())

	set := resolver.Resolve(context.Background(), sess)
	assert.Empty(t, set)
	assert.False(t, set.Intersects(AllowedRoles(FeatureFarm)))
	assert.False(t, mr.Exists(session.RolesKey(sess.ID)))
}

func TestRoleResolver_WithoutRedis(t *testing.T) {
	userID := uuid.New()
	source := &fakeRoles{roles: map[uuid.UUID][]entity.Role{userID: {entity.RoleVeterinaryOfficer}}}
	resolver := NewRoleResolver(source, nil, 0, nil)

	set := resolver.Resolve(context.Background(), newSession(userID))
	assert.True(t, set.Has(entity.RoleVeterinaryOfficer))
}

func TestRoleResolver_InvalidateUserDropsEverySession(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	userID := uuid.New()
	source := &fakeRoles{roles: map[uuid.UUID][]entity.Role{userID: {entity.RoleFarmer}}}
	resolver := NewRoleResolver(source, rdb, time.Minute, nil)
	phone, laptop := newSession(userID), newSession(userID)

	resolver.Resolve(context.Background(), phone)
	resolver.Resolve(context.Background(), laptop)
	require.Equal(t, 2, source.calls)

	source.roles[userID] = []entity.Role{entity.RoleFarmer, entity.RoleVeterinaryOfficer}
	resolver.InvalidateUser(context.Background(), userID)

	assert.False(t, mr.Exists(session.RolesKey(phone.ID)))
	assert.True(t, resolver.Resolve(context.Background(), phone).Has(entity.RoleVeterinaryOfficer))
	assert.True(t, resolver.Resolve(context.Background(), laptop).Has(entity.RoleVeterinaryOfficer))
	assert.Equal(t, 4, source.calls)
}
