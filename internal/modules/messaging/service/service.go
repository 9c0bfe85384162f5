package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/messaging/dto"
	"anoa.com/livestockhub/internal/modules/messaging/repository"
	"anoa.com/livestockhub/pkg/apperror"
	commonDto "anoa.com/livestockhub/pkg/dto"
	"anoa.com/livestockhub/pkg/sanitize"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrConversationNotFound = apperror.NotFound("conversation not found")
	ErrNotParticipant       = apperror.Forbidden("you are not part of this conversation")
	ErrSelfConversation     = apperror.BadRequest("you cannot start a conversation with yourself")
	ErrRecipientNotFound    = apperror.NotFound("recipient not found")
	ErrStreamUnavailable    = errors.New("realtime messaging requires redis")
)

const EventNewMessage = "message.new"

// Channel is the redis pub/sub channel carrying a user's message events.
func Channel(userID uuid.UUID) string {
	return fmt.Sprintf("user_messages:%s", userID.String())
}

// UserLookup reports whether a user exists.
type UserLookup interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type MessagingService interface {
	Start(ctx context.Context, senderID uuid.UUID, input dto.StartConversationInput) (*entity.Conversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]dto.ConversationSummary, error)
	ListMessages(ctx context.Context, userID, conversationID uuid.UUID, filter dto.MessageFilter) (*commonDto.Paginated[entity.Message], error)
	Send(ctx context.Context, senderID, conversationID uuid.UUID, input dto.SendMessageInput) (*entity.Message, error)
	Subscribe(ctx context.Context, userID uuid.UUID) (*redis.PubSub, error)
}

type messagingService struct {
	repo  repository.MessagingRepository
	users UserLookup
	redis *redis.Client
	log   *zap.Logger
}

func NewMessagingService(repo repository.MessagingRepository, users UserLookup, redisClient *redis.Client, log *zap.Logger) MessagingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &messagingService{repo: repo, users: users, redis: redisClient, log: log}
}

// Start reuses an existing conversation between the two users about the
// same listing and appends the opening message to it.
func (s *messagingService) Start(ctx context.Context, senderID uuid.UUID, input dto.StartConversationInput) (*entity.Conversation, error) {
	recipientID, err := uuid.Parse(input.RecipientID)
	if err != nil {
		return nil, apperror.BadRequest("recipient_id must be a valid id")
	}
	if recipientID == senderID {
		return nil, ErrSelfConversation
	}
	ok, err := s.users.Exists(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRecipientNotFound
	}

	var listingID *uuid.UUID
	if input.ListingID != nil && *input.ListingID != "" {
		id, err := uuid.Parse(*input.ListingID)
		if err != nil {
			return nil, apperror.BadRequest("listing_id must be a valid id")
		}
		listingID = &id
	}

	text := sanitize.Text(input.Message)
	if text == "" {
		return nil, apperror.BadRequest("message must not be empty")
	}

	existing, err := s.repo.FindDirect(ctx, senderID, recipientID, listingID)
	if err == nil {
		if _, err := s.send(ctx, senderID, existing.ID, text); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv := &entity.Conversation{Subject: sanitize.Optional(input.Subject), ListingID: listingID}
	first := &entity.Message{SenderID: senderID, MessageText: text}
	if err := s.repo.CreateConversation(ctx, conv, []uuid.UUID{senderID, recipientID}, first); err != nil {
		return nil, err
	}
	s.publish(ctx, []uuid.UUID{senderID, recipientID}, first)
	return conv, nil
}

func (s *messagingService) ListConversations(ctx context.Context, userID uuid.UUID) ([]dto.ConversationSummary, error) {
	convs, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ConversationSummary, 0, len(convs))
	for _, c := range convs {
		last, err := s.repo.LastMessage(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		unread, err := s.repo.CountUnread(ctx, c.ID, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.ConversationSummary{Conversation: c, LastMessage: last, UnreadCount: unread})
	}
	return out, nil
}

func (s *messagingService) requireParticipant(ctx context.Context, conversationID, userID uuid.UUID) error {
	if _, err := s.repo.FindConversation(ctx, conversationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConversationNotFound
		}
		return err
	}
	ok, err := s.repo.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotParticipant
	}
	return nil
}

// ListMessages returns the page oldest first and marks the other side's
// messages as read.
func (s *messagingService) ListMessages(ctx context.Context, userID, conversationID uuid.UUID, filter dto.MessageFilter) (*commonDto.Paginated[entity.Message], error) {
	if err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	filter.Normalize()

	msgs, total, err := s.repo.ListMessages(ctx, conversationID, filter)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkRead(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	return &commonDto.Paginated[entity.Message]{Data: msgs, Meta: commonDto.NewPaginationMeta(filter.PageQuery, total)}, nil
}

func (s *messagingService) Send(ctx context.Context, senderID, conversationID uuid.UUID, input dto.SendMessageInput) (*entity.Message, error) {
	if err := s.requireParticipant(ctx, conversationID, senderID); err != nil {
		return nil, err
	}
	text := sanitize.Text(input.MessageText)
	if text == "" {
		return nil, apperror.BadRequest("message_text must not be empty")
	}
	return s.send(ctx, senderID, conversationID, text)
}

func (s *messagingService) send(ctx context.Context, senderID, conversationID uuid.UUID, text string) (*entity.Message, error) {
	msg := &entity.Message{ConversationID: conversationID, SenderID: senderID, MessageText: text}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	participants, err := s.repo.ParticipantIDs(ctx, conversationID)
	if err != nil {
		s.log.Warn("failed to load participants for fan-out", zap.String("conversation_id", conversationID.String()), zap.Error(err))
		return msg, nil
	}
	s.publish(ctx, participants, msg)
	return msg, nil
}

// publish is best effort: the stored message is what clients reload.
func (s *messagingService) publish(ctx context.Context, participants []uuid.UUID, msg *entity.Message) {
	if s.redis == nil {
		return
	}
	payload, err := json.Marshal(dto.StreamEvent{Type: EventNewMessage, ConversationID: msg.ConversationID, Message: msg})
	if err != nil {
		return
	}
	for _, id := range participants {
		if err := s.redis.Publish(ctx, Channel(id), payload).Err(); err != nil {
			s.log.Warn("failed to publish message event", zap.String("user_id", id.String()), zap.Error(err))
		}
	}
}

// Subscribe opens the caller's event channel and waits for the
// subscription to be confirmed.
func (s *messagingService) Subscribe(ctx context.Context, userID uuid.UUID) (*redis.PubSub, error) {
	if s.redis == nil {
		return nil, ErrStreamUnavailable
	}
	pubsub := s.redis.Subscribe(ctx, Channel(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}
	return pubsub, nil
}
