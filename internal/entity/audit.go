package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	AuditImpersonationStart = "impersonation.start"
	AuditImpersonationStop  = "impersonation.stop"
	AuditRoleGranted        = "role.granted"
	AuditRoleRevoked        = "role.revoked"
	AuditReportStatus       = "report.status"
	AuditTicketStatus       = "ticket.status"
)

type ImpersonationSession struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"admin_id"`
	TargetUserID uuid.UUID  `gorm:"type:uuid;not null;index" json:"target_user_id"`
	StartedAt    time.Time  `gorm:"not null" json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
}

func (s *ImpersonationSession) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}

type AuditLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"actor_id"`
	Action    string         `gorm:"size:50;not null;index" json:"action"`
	TargetID  *uuid.UUID     `gorm:"type:uuid;index" json:"target_id,omitempty"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	return
}
