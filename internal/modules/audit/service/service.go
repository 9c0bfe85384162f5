package service

import (
	"context"
	"encoding/json"
	"time"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/audit/dto"
	"anoa.com/livestockhub/internal/modules/audit/repository"
	commonDto "anoa.com/livestockhub/pkg/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type AuditService interface {
	Record(ctx context.Context, actorID uuid.UUID, action string, targetID *uuid.UUID, metadata map[string]any) error
	List(ctx context.Context, filter dto.AuditFilter) (*commonDto.Paginated[entity.AuditLog], error)
}

type auditService struct {
	repo      repository.AuditRepository
	publisher Publisher
	log       *zap.Logger
}

func NewAuditService(repo repository.AuditRepository, publisher Publisher, log *zap.Logger) AuditService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &auditService{repo: repo, publisher: publisher, log: log}
}

// Record persists the entry and then publishes it. Publishing is best effort:
// the stored row is the record of truth.
func (s *auditService) Record(ctx context.Context, actorID uuid.UUID, action string, targetID *uuid.UUID, metadata map[string]any) error {
	entry := &entity.AuditLog{ActorID: actorID, Action: action, TargetID: targetID}
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		entry.Metadata = datatypes.JSON(raw)
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return err
	}

	event := dto.Event{
		ID:         entry.ID,
		ActorID:    actorID,
		Action:     action,
		TargetID:   targetID,
		Metadata:   metadata,
		OccurredAt: entry.CreatedAt,
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("audit publish failed", zap.String("action", action), zap.String("audit_id", entry.ID.String()), zap.Error(err))
	}

	s.log.Info("audit", zap.String("action", action), zap.String("actor_id", actorID.String()))
	return nil
}

func (s *auditService) List(ctx context.Context, filter dto.AuditFilter) (*commonDto.Paginated[entity.AuditLog], error) {
	filter.Normalize()
	logs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &commonDto.Paginated[entity.AuditLog]{
		Data: logs,
		Meta: commonDto.NewPaginationMeta(filter.PageQuery, total),
	}, nil
}
