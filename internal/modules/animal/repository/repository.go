package repository

import (
	"context"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/animal/dto"
	"anoa.com/livestockhub/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnimalRepository interface {
	Create(ctx context.Context, animal *entity.Animal) error
	Update(ctx context.Context, animal *entity.Animal) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Animal, error)
	FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*entity.Animal, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter dto.AnimalFilter) ([]entity.Animal, int64, error)
	CountBy(ctx context.Context, ownerID *uuid.UUID, column string) (map[string]int64, error)
}

type animalRepository struct {
	db *gorm.DB
}

func NewAnimalRepository(db *gorm.DB) AnimalRepository {
	return &animalRepository{db: db}
}

func (r *animalRepository) Create(ctx context.Context, animal *entity.Animal) error {
	return r.db.WithContext(ctx).Create(animal).Error
}

func (r *animalRepository) Update(ctx context.Context, animal *entity.Animal) error {
	return r.db.WithContext(ctx).Omit("Owner").Save(animal).Error
}

// Delete removes the row for good. Dependent records go with it through the
// foreign key cascade.
func (r *animalRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&entity.Animal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *animalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Animal, error) {
	var animal entity.Animal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&animal).Error; err != nil {
		return nil, err
	}
	return &animal, nil
}

func (r *animalRepository) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*entity.Animal, error) {
	var animal entity.Animal
	if err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&animal).Error; err != nil {
		return nil, err
	}
	return &animal, nil
}

func (r *animalRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter dto.AnimalFilter) ([]entity.Animal, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.Animal{}).Where("owner_id = ?", ownerID)
	if filter.Species != "" {
		q = q.Where("species = ?", filter.Species)
	}
	if filter.HealthStatus != "" {
		q = q.Where("health_status = ?", filter.HealthStatus)
	}
	if filter.Search != "" {
		like := database.ContainsPattern(filter.Search)
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(identification_number) LIKE ? ESCAPE '\' OR LOWER(breed) LIKE ? ESCAPE '\'`, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var animals []entity.Animal
	err := q.Order("created_at DESC").Offset(filter.Offset()).Limit(filter.Limit).Find(&animals).Error
	return animals, total, err
}

var countableColumns = map[string]bool{"species": true, "health_status": true}

// CountBy groups animals by column, optionally for one owner.
func (r *animalRepository) CountBy(ctx context.Context, ownerID *uuid.UUID, column string) (map[string]int64, error) {
	if !countableColumns[column] {
		return nil, gorm.ErrInvalidField
	}

	q := r.db.WithContext(ctx).Model(&entity.Animal{})
	if ownerID != nil {
		q = q.Where("owner_id = ?", *ownerID)
	}

	var rows []struct {
		GroupKey string
		Count    int64
	}
	if err := q.Select(column + " AS group_key, COUNT(*) AS count").Group(column).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.GroupKey] = row.Count
	}
	return out, nil
}
