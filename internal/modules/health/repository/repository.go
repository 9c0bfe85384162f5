package repository

import (
	"context"
	"time"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/health/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HealthRepository interface {
	CreateRecord(ctx context.Context, record *entity.HealthRecord) error
	UpdateRecord(ctx context.Context, record *entity.HealthRecord) error
	FindRecord(ctx context.Context, id uuid.UUID) (*entity.HealthRecord, error)
	ListRecordsByAnimal(ctx context.Context, animalID uuid.UUID) ([]entity.HealthRecord, error)
	ListCases(ctx context.Context, filter dto.CaseFilter) ([]entity.HealthRecord, int64, error)
	CountCasesByStatus(ctx context.Context) (map[string]int64, error)

	CreateVaccination(ctx context.Context, v *entity.Vaccination) error
	ListVaccinationsByAnimal(ctx context.Context, animalID uuid.UUID) ([]entity.Vaccination, error)
	ListDue(ctx context.Context, until time.Time, ownerID *uuid.UUID, filter dto.DueFilter) ([]dto.DueVaccination, error)
}

type healthRepository struct {
	db *gorm.DB
}

func NewHealthRepository(db *gorm.DB) HealthRepository {
	return &healthRepository{db: db}
}

func (r *healthRepository) CreateRecord(ctx context.Context, record *entity.HealthRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *healthRepository) UpdateRecord(ctx context.Context, record *entity.HealthRecord) error {
	return r.db.WithContext(ctx).Omit("Animal").Save(record).Error
}

func (r *healthRepository) FindRecord(ctx context.Context, id uuid.UUID) (*entity.HealthRecord, error) {
	var record entity.HealthRecord
	if err := r.db.WithContext(ctx).Preload("Animal").Where("id = ?", id).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *healthRepository) ListRecordsByAnimal(ctx context.Context, animalID uuid.UUID) ([]entity.HealthRecord, error) {
	var records []entity.HealthRecord
	err := r.db.WithContext(ctx).
		Where("animal_id = ?", animalID).
		Order("record_date DESC, created_at DESC").
		Find(&records).Error
	return records, err
}

// ListCases returns open and under-treatment records across all farms.
func (r *healthRepository) ListCases(ctx context.Context, filter dto.CaseFilter) ([]entity.HealthRecord, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.HealthRecord{}).
		Joins("JOIN animals ON animals.id = health_records.animal_id").
		Joins("JOIN profiles ON profiles.id = animals.owner_id")

	if filter.Status != "" {
		q = q.Where("health_records.status = ?", filter.Status)
	} else {
		q = q.Where("health_records.status IN ?", []string{entity.CaseStatusOpen, entity.CaseStatusUnderTreatment})
	}
	if filter.Species != "" {
		q = q.Where("animals.species = ?", filter.Species)
	}
	if filter.State != "" {
		q = q.Where("profiles.state = ?", filter.State)
	}
	if filter.District != "" {
		q = q.Where("profiles.district = ?", filter.District)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []entity.HealthRecord
	err := q.Preload("Animal").Preload("Animal.Owner").
		Order("health_records.record_date DESC").
		Offset(filter.Offset()).Limit(filter.Limit).
		Find(&records).Error
	return records, total, err
}

func (r *healthRepository) CountCasesByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&entity.HealthRecord{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *healthRepository) CreateVaccination(ctx context.Context, v *entity.Vaccination) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *healthRepository) ListVaccinationsByAnimal(ctx context.Context, animalID uuid.UUID) ([]entity.Vaccination, error) {
	var vaccinations []entity.Vaccination
	err := r.db.WithContext(ctx).
		Where("animal_id = ?", animalID).
		Order("date_given DESC").
		Find(&vaccinations).Error
	return vaccinations, err
}

// ListDue returns vaccinations with a next dose on or before until, overdue
// ones included. ownerID narrows the list to one farm.
func (r *healthRepository) ListDue(ctx context.Context, until time.Time, ownerID *uuid.UUID, filter dto.DueFilter) ([]dto.DueVaccination, error) {
	q := r.db.WithContext(ctx).Table("vaccinations").
		Select(`vaccinations.id AS vaccination_id, vaccinations.animal_id, animals.name AS animal_name,
			animals.species, animals.owner_id, profiles.full_name AS owner_name,
			vaccinations.vaccine_name, vaccinations.next_due_date`).
		Joins("JOIN animals ON animals.id = vaccinations.animal_id").
		Joins("JOIN profiles ON profiles.id = animals.owner_id").
		Where("vaccinations.next_due_date IS NOT NULL AND vaccinations.next_due_date <= ?", until)

	if ownerID != nil {
		q = q.Where("animals.owner_id = ?", *ownerID)
	}
	if filter.State != "" {
		q = q.Where("profiles.state = ?", filter.State)
	}
	if filter.District != "" {
		q = q.Where("profiles.district = ?", filter.District)
	}

	var due []dto.DueVaccination
	err := q.Order("vaccinations.next_due_date ASC").Scan(&due).Error
	return due, err
}
