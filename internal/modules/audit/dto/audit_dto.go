package dto

import (
	"time"

	commonDto "anoa.com/livestockhub/pkg/dto"
	"github.com/google/uuid"
)

type AuditFilter struct {
	commonDto.PageQuery
	ActorID string `form:"actor_id" binding:"omitempty,uuid"`
	Action  string `form:"action" binding:"omitempty,max=50"`
}

// Event is the message published for every audit log entry.
type Event struct {
	ID         uuid.UUID      `json:"id"`
	ActorID    uuid.UUID      `json:"actor_id"`
	Action     string         `json:"action"`
	TargetID   *uuid.UUID     `json:"target_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
