package ratelimiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/livestockhub/pkg/apperror"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnforce(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, Enforce(ctx, rdb, userID, "ticket", time.Minute))

	err := Enforce(ctx, rdb, userID, "ticket", time.Minute)
	var rlErr *RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.True(t, errors.Is(err, apperror.ErrRateLimitExceeded))
	assert.Greater(t, rlErr.RetryAfter, time.Duration(0))

	require.NoError(t, ClearRateLimit(ctx, rdb, userID, "ticket"))
	assert.NoError(t, Enforce(ctx, rdb, userID, "ticket", time.Minute))
}

func TestNilClientAlwaysAllows(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		assert.NoError(t, Enforce(ctx, nil, uuid.New(), "chat", time.Minute))
	}
}
