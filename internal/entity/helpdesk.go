package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

type HelpdeskTicket struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Subject     string             `gorm:"size:200;not null" json:"subject"`
	Description string             `gorm:"type:text;not null" json:"description"`
	Category    string             `gorm:"size:30;not null" json:"category"`
	Priority    string             `gorm:"size:10;not null;default:medium" json:"priority"`
	Status      string             `gorm:"size:20;not null;default:open;index" json:"status"`
	SLABreach   bool               `gorm:"default:false" json:"sla_breach"`
	ResolvedAt  *time.Time         `json:"resolved_at,omitempty"`
	Responses   []HelpdeskResponse `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE" json:"responses,omitempty"`
	CreatedAt   time.Time          `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *HelpdeskTicket) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID, err = uuid.NewV7()
	}
	return
}

type HelpdeskResponse struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TicketID  uuid.UUID `gorm:"type:uuid;not null;index" json:"ticket_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsStaff   bool      `gorm:"default:false" json:"is_staff"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *HelpdeskResponse) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
