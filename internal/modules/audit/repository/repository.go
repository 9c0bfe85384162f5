package repository

import (
	"context"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/audit/dto"
	"anoa.com/livestockhub/pkg/database"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, filter dto.AuditFilter) ([]entity.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return database.Conn(ctx, r.db).Create(log).Error
}

func (r *auditRepository) List(ctx context.Context, filter dto.AuditFilter) ([]entity.AuditLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.AuditLog{})
	if filter.ActorID != "" {
		q = q.Where("actor_id = ?", filter.ActorID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []entity.AuditLog
	err := q.Order("created_at DESC").Offset(filter.Offset()).Limit(filter.Limit).Find(&logs).Error
	return logs, total, err
}
