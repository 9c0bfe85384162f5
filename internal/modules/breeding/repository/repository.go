package repository

import (
	"context"
	"time"

	"anoa.com/livestockhub/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BreedingRepository interface {
	Create(ctx context.Context, record *entity.BreedingRecord) error
	Update(ctx context.Context, record *entity.BreedingRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BreedingRecord, error)
	ListByAnimal(ctx context.Context, animalID uuid.UUID) ([]entity.BreedingRecord, error)
	ListExpectedBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]entity.BreedingRecord, error)
}

type breedingRepository struct {
	db *gorm.DB
}

func NewBreedingRepository(db *gorm.DB) BreedingRepository {
	return &breedingRepository{db: db}
}

func (r *breedingRepository) Create(ctx context.Context, record *entity.BreedingRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *breedingRepository) Update(ctx context.Context, record *entity.BreedingRecord) error {
	return r.db.WithContext(ctx).Omit("Animal").Save(record).Error
}

func (r *breedingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BreedingRecord, error) {
	var record entity.BreedingRecord
	if err := r.db.WithContext(ctx).Preload("Animal").Where("id = ?", id).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *breedingRepository) ListByAnimal(ctx context.Context, animalID uuid.UUID) ([]entity.BreedingRecord, error) {
	var records []entity.BreedingRecord
	err := r.db.WithContext(ctx).Where("animal_id = ?", animalID).Order("breeding_date DESC").Find(&records).Error
	return records, err
}

// ListExpectedBetween returns pending deliveries of one farm in [from, to].
func (r *breedingRepository) ListExpectedBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]entity.BreedingRecord, error) {
	var records []entity.BreedingRecord
	err := r.db.WithContext(ctx).
		Joins("JOIN animals ON animals.id = breeding_records.animal_id").
		Where("animals.owner_id = ?", ownerID).
		Where("breeding_records.outcome IS NULL").
		Where("breeding_records.expected_delivery_date BETWEEN ? AND ?", from, to).
		Preload("Animal").
		Order("breeding_records.expected_delivery_date ASC").
		Find(&records).Error
	return records, err
}
