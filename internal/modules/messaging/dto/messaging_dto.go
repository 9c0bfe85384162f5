package dto

import (
	"anoa.com/livestockhub/internal/entity"
	commonDto "anoa.com/livestockhub/pkg/dto"
	"github.com/google/uuid"
)

type StartConversationInput struct {
	RecipientID string  `json:"recipient_id" binding:"required,uuid"`
	ListingID   *string `json:"listing_id" binding:"omitempty,uuid"`
	Subject     *string `json:"subject" binding:"omitempty,max=200"`
	Message     string  `json:"message" binding:"required,min=1,max=5000"`
}

type SendMessageInput struct {
	MessageText string `json:"message_text" binding:"required,min=1,max=5000"`
}

type MessageFilter struct {
	commonDto.PageQuery
}

type ConversationSummary struct {
	entity.Conversation
	LastMessage *entity.Message `json:"last_message,omitempty"`
	UnreadCount int64           `json:"unread_count"`
}

// StreamEvent is the payload pushed to each participant's realtime channel.
type StreamEvent struct {
	Type           string          `json:"type"`
	ConversationID uuid.UUID       `json:"conversation_id"`
	Message        *entity.Message `json:"message"`
}
