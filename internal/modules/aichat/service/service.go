package service

import (
	"context"
	"net/http"
	"time"

	"anoa.com/livestockhub/internal/modules/aichat/dto"
	"anoa.com/livestockhub/pkg/apperror"
	"anoa.com/livestockhub/pkg/ratelimiter"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const chatAction = "ai_chat"

var ErrProviderFailed = apperror.New(http.StatusBadGateway, "the assistant is unavailable, please try again", nil)

type ChatService interface {
	Ask(ctx context.Context, userID uuid.UUID, input dto.AskInput) (*dto.AskResponse, error)
}

type chatService struct {
	provider  Provider
	redis     *redis.Client
	rateLimit time.Duration
	log       *zap.Logger
}

// NewChatService falls back to StubProvider when provider is nil.
func NewChatService(provider Provider, redisClient *redis.Client, rateLimit time.Duration, log *zap.Logger) ChatService {
	if provider == nil {
		provider = StubProvider{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &chatService{provider: provider, redis: redisClient, rateLimit: rateLimit, log: log}
}

func (s *chatService) Ask(ctx context.Context, userID uuid.UUID, input dto.AskInput) (*dto.AskResponse, error) {
	if err := ratelimiter.Enforce(ctx, s.redis, userID, chatAction, s.rateLimit); err != nil {
		return nil, err
	}

	reply, err := s.provider.Reply(ctx, input.History, input.Message, input.Language)
	if err != nil {
		s.log.Error("chat provider failed", zap.String("provider", s.provider.Name()), zap.Error(err))
		return nil, ErrProviderFailed
	}
	return &dto.AskResponse{Reply: reply, Provider: s.provider.Name()}, nil
}
