package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/livestockhub/internal/modules/aichat/dto"
	"anoa.com/livestockhub/internal/testutil"
	"anoa.com/livestockhub/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingProvider struct{}

func (failingProvider) Name() string { return "failing" }
func (failingProvider) Reply(context.Context, []dto.Turn, string, string) (string, error) {
	return "", errors.New("quota exceeded")
}
func (failingProvider) Close() {}

func TestAsk_StubIsDeterministic(t *testing.T) {
	svc := NewChatService(nil, nil, 0, nil)
	ctx := context.Background()

	first, err := svc.Ask(ctx, uuid.New(), dto.AskInput{Message: "My buffalo has a fever since morning"})
	require.NoError(t, err)
	second, err := svc.Ask(ctx, uuid.New(), dto.AskInput{Message: "My buffalo has a fever since morning"})
	require.NoError(t, err)

	assert.Equal(t, "stub", first.Provider)
	assert.Equal(t, first.Reply, second.Reply)
	assert.Contains(t, first.Reply, "veterinary officer")

	other, err := svc.Ask(ctx, uuid.New(), dto.AskInput{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, stubFallback, other.Reply)
}

func TestAsk_ProviderFailureMapsToBadGateway(t *testing.T) {
	svc := NewChatService(failingProvider{}, nil, 0, nil)

	_, err := svc.Ask(context.Background(), uuid.New(), dto.AskInput{Message: "feed plan"})
	assert.ErrorIs(t, err, ErrProviderFailed)
	assert.Equal(t, 502, apperror.MapErrorToStatus(err))
}

func TestAsk_RateLimited(t *testing.T) {
	rdb, _ := testutil.NewTestRedis(t)
	svc := NewChatService(nil, rdb, 10*time.Second, nil)
	user := uuid.New()

	_, err := svc.Ask(context.Background(), user, dto.AskInput{Message: "milk yield dropped"})
	require.NoError(t, err)
	_, err = svc.Ask(context.Background(), user, dto.AskInput{Message: "milk yield dropped"})
	assert.ErrorIs(t, err, apperror.ErrRateLimitExceeded)
}
