package repository

import (
	"context"
	"time"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImpersonationRepository interface {
	Create(ctx context.Context, s *entity.ImpersonationSession) error
	FindActive(ctx context.Context, adminID, targetID uuid.UUID) (*entity.ImpersonationSession, error)
	End(ctx context.Context, id uuid.UUID, endedAt time.Time) error
	// InTx runs fn in one transaction shared by every repository that
	// resolves its connection from the context.
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type impersonationRepository struct {
	db *gorm.DB
}

func NewImpersonationRepository(db *gorm.DB) ImpersonationRepository {
	return &impersonationRepository{db: db}
}

func (r *impersonationRepository) Create(ctx context.Context, s *entity.ImpersonationSession) error {
	return database.Conn(ctx, r.db).Create(s).Error
}

func (r *impersonationRepository) FindActive(ctx context.Context, adminID, targetID uuid.UUID) (*entity.ImpersonationSession, error) {
	var s entity.ImpersonationSession
	err := database.Conn(ctx, r.db).
		Where("admin_id = ? AND target_user_id = ? AND ended_at IS NULL", adminID, targetID).
		Order("started_at DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *impersonationRepository) End(ctx context.Context, id uuid.UUID, endedAt time.Time) error {
	return database.Conn(ctx, r.db).
		Model(&entity.ImpersonationSession{}).
		Where("id = ?", id).
		Update("ended_at", endedAt).Error
}

func (r *impersonationRepository) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return database.Transaction(ctx, r.db, fn)
}
