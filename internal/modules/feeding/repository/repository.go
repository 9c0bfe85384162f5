package repository

import (
	"context"

	"anoa.com/livestockhub/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedingRepository interface {
	CreateSchedule(ctx context.Context, s *entity.FeedingSchedule) error
	UpdateSchedule(ctx context.Context, s *entity.FeedingSchedule) error
	DeleteSchedule(ctx context.Context, id, ownerID uuid.UUID) error
	FindSchedule(ctx context.Context, id, ownerID uuid.UUID) (*entity.FeedingSchedule, error)
	ListSchedules(ctx context.Context, ownerID uuid.UUID, animalID *uuid.UUID) ([]entity.FeedingSchedule, error)

	CreateInventory(ctx context.Context, item *entity.FeedInventory) error
	UpdateInventory(ctx context.Context, item *entity.FeedInventory) error
	DeleteInventory(ctx context.Context, id, ownerID uuid.UUID) error
	FindInventory(ctx context.Context, id, ownerID uuid.UUID) (*entity.FeedInventory, error)
	ListInventory(ctx context.Context, ownerID uuid.UUID) ([]entity.FeedInventory, error)
}

type feedingRepository struct {
	db *gorm.DB
}

func NewFeedingRepository(db *gorm.DB) FeedingRepository {
	return &feedingRepository{db: db}
}

func (r *feedingRepository) CreateSchedule(ctx context.Context, s *entity.FeedingSchedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *feedingRepository) UpdateSchedule(ctx context.Context, s *entity.FeedingSchedule) error {
	return r.db.WithContext(ctx).Omit("Animal").Save(s).Error
}

func deleteOwned(db *gorm.DB, model any, id, ownerID uuid.UUID) error {
	res := db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *feedingRepository) DeleteSchedule(ctx context.Context, id, ownerID uuid.UUID) error {
	return deleteOwned(r.db.WithContext(ctx), &entity.FeedingSchedule{}, id, ownerID)
}

func (r *feedingRepository) FindSchedule(ctx context.Context, id, ownerID uuid.UUID) (*entity.FeedingSchedule, error) {
	var s entity.FeedingSchedule
	if err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *feedingRepository) ListSchedules(ctx context.Context, ownerID uuid.UUID, animalID *uuid.UUID) ([]entity.FeedingSchedule, error) {
	q := r.db.WithContext(ctx).Preload("Animal").Where("owner_id = ?", ownerID)
	if animalID != nil {
		q = q.Where("animal_id = ?", *animalID)
	}
	var schedules []entity.FeedingSchedule
	err := q.Order("feeding_time ASC").Find(&schedules).Error
	return schedules, err
}

func (r *feedingRepository) CreateInventory(ctx context.Context, item *entity.FeedInventory) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *feedingRepository) UpdateInventory(ctx context.Context, item *entity.FeedInventory) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *feedingRepository) DeleteInventory(ctx context.Context, id, ownerID uuid.UUID) error {
	return deleteOwned(r.db.WithContext(ctx), &entity.FeedInventory{}, id, ownerID)
}

func (r *feedingRepository) FindInventory(ctx context.Context, id, ownerID uuid.UUID) (*entity.FeedInventory, error) {
	var item entity.FeedInventory
	if err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *feedingRepository) ListInventory(ctx context.Context, ownerID uuid.UUID) ([]entity.FeedInventory, error) {
	var items []entity.FeedInventory
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("feed_name ASC").Find(&items).Error
	return items, err
}
