package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	userID := uuid.New()

	token, sess, err := issuer.Issue(userID, nil)
	require.NoError(t, err)

	parsed, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, parsed.ID)
	assert.Equal(t, userID, parsed.UserID)
	assert.False(t, parsed.IsImpersonating())
}

func TestTokenIssuer_ImpersonationClaim(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	admin, target := uuid.New(), uuid.New()

	token, _, err := issuer.Issue(target, &admin)
	require.NoError(t, err)

	parsed, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, target, parsed.UserID)
	require.True(t, parsed.IsImpersonating())
	assert.Equal(t, admin, *parsed.ImpersonatorID)
}

func TestTokenIssuer_RejectsForeignAndExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	other := NewTokenIssuer("other", time.Hour)

	token, _, err := other.Issue(uuid.New(), nil)
	require.NoError(t, err)
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	issued := time.Now().Add(-2 * time.Hour)
	issuer.now = func() time.Time { return issued }
	token, _, err = issuer.Issue(uuid.New(), nil)
	require.NoError(t, err)
	issuer.now = time.Now
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestStore_MemoryRevocation(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()
	sess := &Session{ID: "abc", ExpiresAt: time.Now().Add(time.Minute)}

	revoked, err := store.IsRevoked(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, sess))
	revoked, err = store.IsRevoked(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestStore_RedisRevocation(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	store := NewStore(rdb)
	ctx := context.Background()
	sess := &Session{ID: "xyz", ExpiresAt: time.Now().Add(time.Minute)}
	mr.Set(RolesKey(sess.ID), "farmer")

	require.NoError(t, store.Revoke(ctx, sess))
	revoked, err := store.IsRevoked(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.False(t, mr.Exists(RolesKey(sess.ID)))

	mr.FastForward(2 * time.Minute)
	revoked, err = store.IsRevoked(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, revoked)
}
