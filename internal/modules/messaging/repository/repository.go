package repository

import (
	"context"
	"errors"
	"time"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/messaging/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessagingRepository interface {
	// CreateConversation stores the conversation, its participants and the
	// opening message together.
	CreateConversation(ctx context.Context, conv *entity.Conversation, participants []uuid.UUID, first *entity.Message) error
	FindDirect(ctx context.Context, a, b uuid.UUID, listingID *uuid.UUID) (*entity.Conversation, error)
	FindConversation(ctx context.Context, id uuid.UUID) (*entity.Conversation, error)
	IsParticipant(ctx context.Context, conversationID, userID uuid.UUID) (bool, error)
	ParticipantIDs(ctx context.Context, conversationID uuid.UUID) ([]uuid.UUID, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.Conversation, error)
	LastMessage(ctx context.Context, conversationID uuid.UUID) (*entity.Message, error)
	CountUnread(ctx context.Context, conversationID, readerID uuid.UUID) (int64, error)

	CreateMessage(ctx context.Context, msg *entity.Message) error
	ListMessages(ctx context.Context, conversationID uuid.UUID, filter dto.MessageFilter) ([]entity.Message, int64, error)
	MarkRead(ctx context.Context, conversationID, readerID uuid.UUID) error
}

type messagingRepository struct {
	db *gorm.DB
}

func NewMessagingRepository(db *gorm.DB) MessagingRepository {
	return &messagingRepository{db: db}
}

func (r *messagingRepository) CreateConversation(ctx context.Context, conv *entity.Conversation, participants []uuid.UUID, first *entity.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(conv).Error; err != nil {
			return err
		}
		rows := make([]entity.ConversationParticipant, 0, len(participants))
		for _, id := range participants {
			rows = append(rows, entity.ConversationParticipant{ConversationID: conv.ID, UserID: id})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		conv.Participants = rows

		first.ConversationID = conv.ID
		return tx.Create(first).Error
	})
}

func (r *messagingRepository) FindDirect(ctx context.Context, a, b uuid.UUID, listingID *uuid.UUID) (*entity.Conversation, error) {
	mine := r.db.Model(&entity.ConversationParticipant{}).Select("conversation_id").Where("user_id = ?", a)
	theirs := r.db.Model(&entity.ConversationParticipant{}).Select("conversation_id").Where("user_id = ?", b)

	q := r.db.WithContext(ctx).
		Where("id IN (?) AND id IN (?)", mine, theirs)
	if listingID != nil {
		q = q.Where("listing_id = ?", *listingID)
	} else {
		q = q.Where("listing_id IS NULL")
	}

	var conv entity.Conversation
	if err := q.Preload("Participants").First(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *messagingRepository) FindConversation(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	var conv entity.Conversation
	if err := r.db.WithContext(ctx).Preload("Participants").First(&conv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *messagingRepository) IsParticipant(ctx context.Context, conversationID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *messagingRepository) ParticipantIDs(ctx context.Context, conversationID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&entity.ConversationParticipant{}).
		Where("conversation_id = ?", conversationID).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *messagingRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.Conversation, error) {
	ids := r.db.Model(&entity.ConversationParticipant{}).Select("conversation_id").Where("user_id = ?", userID)

	var convs []entity.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Where("id IN (?)", ids).
		Order("updated_at DESC").
		Find(&convs).Error
	return convs, err
}

func (r *messagingRepository) LastMessage(ctx context.Context, conversationID uuid.UUID) (*entity.Message, error) {
	var msg entity.Message
	err := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID).Order("created_at DESC").First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messagingRepository) CountUnread(ctx context.Context, conversationID, readerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read = ?", conversationID, readerID, false).
		Count(&count).Error
	return count, err
}

// CreateMessage also bumps the conversation so it sorts first in lists.
func (r *messagingRepository) CreateMessage(ctx context.Context, msg *entity.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Conversation{}).
			Where("id = ?", msg.ConversationID).
			UpdateColumn("updated_at", time.Now()).Error
	})
}

func (r *messagingRepository) ListMessages(ctx context.Context, conversationID uuid.UUID, filter dto.MessageFilter) ([]entity.Message, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.Message{}).Where("conversation_id = ?", conversationID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var msgs []entity.Message
	err := q.Order("created_at ASC").Offset(filter.Offset()).Limit(filter.Limit).Find(&msgs).Error
	return msgs, total, err
}

func (r *messagingRepository) MarkRead(ctx context.Context, conversationID, readerID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read = ?", conversationID, readerID, false).
		Update("read", true).Error
}
