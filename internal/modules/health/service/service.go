package service

import (
	"context"
	"errors"
	"time"

	"anoa.com/livestockhub/internal/entity"
	animalRepo "anoa.com/livestockhub/internal/modules/animal/repository"
	animalService "anoa.com/livestockhub/internal/modules/animal/service"
	"anoa.com/livestockhub/internal/modules/health/dto"
	"anoa.com/livestockhub/internal/modules/health/repository"
	"anoa.com/livestockhub/pkg/apperror"
	commonDto "anoa.com/livestockhub/pkg/dto"
	"anoa.com/livestockhub/pkg/sanitize"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultDueWindowDays = 30

var ErrRecordNotFound = apperror.NotFound("health record not found")

type HealthService interface {
	ListRecords(ctx context.Context, ownerID, animalID uuid.UUID) ([]entity.HealthRecord, error)
	AddRecord(ctx context.Context, ownerID, animalID uuid.UUID, input dto.HealthRecordInput) (*entity.HealthRecord, error)
	ListVaccinations(ctx context.Context, ownerID, animalID uuid.UUID) ([]entity.Vaccination, error)
	AddVaccination(ctx context.Context, ownerID, animalID uuid.UUID, input dto.VaccinationInput) (*entity.Vaccination, error)

	// Staff variants work on any animal.
	RecordForAnimal(ctx context.Context, actorID, animalID uuid.UUID, input dto.HealthRecordInput) (*entity.HealthRecord, error)
	VaccinateAnimal(ctx context.Context, actorID, animalID uuid.UUID, input dto.VaccinationInput) (*entity.Vaccination, error)
	UpdateCaseStatus(ctx context.Context, id uuid.UUID, input dto.CaseStatusInput) (*entity.HealthRecord, error)
	ListCases(ctx context.Context, filter dto.CaseFilter) (*commonDto.Paginated[entity.HealthRecord], error)
	DueVaccinations(ctx context.Context, ownerID *uuid.UUID, filter dto.DueFilter) ([]dto.DueVaccination, error)
}

type healthService struct {
	repo    repository.HealthRepository
	animals animalRepo.AnimalRepository
	log     *zap.Logger
	now     func() time.Time
}

func NewHealthService(repo repository.HealthRepository, animals animalRepo.AnimalRepository, log *zap.Logger) HealthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &healthService{repo: repo, animals: animals, log: log, now: time.Now}
}

func (s *healthService) ownedAnimal(ctx context.Context, ownerID, animalID uuid.UUID) (*entity.Animal, error) {
	animal, err := s.animals.FindOwned(ctx, animalID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, animalService.ErrAnimalNotFound
		}
		return nil, err
	}
	return animal, nil
}

func (s *healthService) anyAnimal(ctx context.Context, animalID uuid.UUID) (*entity.Animal, error) {
	animal, err := s.animals.FindByID(ctx, animalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, animalService.ErrAnimalNotFound
		}
		return nil, err
	}
	return animal, nil
}

func (s *healthService) ListRecords(ctx context.Context, ownerID, animalID uuid.UUID) ([]entity.HealthRecord, error) {
	if _, err := s.ownedAnimal(ctx, ownerID, animalID); err != nil {
		return nil, err
	}
	return s.repo.ListRecordsByAnimal(ctx, animalID)
}

func (s *healthService) AddRecord(ctx context.Context, ownerID, animalID uuid.UUID, input dto.HealthRecordInput) (*entity.HealthRecord, error) {
	animal, err := s.ownedAnimal(ctx, ownerID, animalID)
	if err != nil {
		return nil, err
	}
	return s.addRecord(ctx, ownerID, animal, input)
}

func (s *healthService) RecordForAnimal(ctx context.Context, actorID, animalID uuid.UUID, input dto.HealthRecordInput) (*entity.HealthRecord, error) {
	animal, err := s.anyAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}
	return s.addRecord(ctx, actorID, animal, input)
}

func (s *healthService) addRecord(ctx context.Context, actorID uuid.UUID, animal *entity.Animal, input dto.HealthRecordInput) (*entity.HealthRecord, error) {
	date, err := commonDto.ParseDate(input.RecordDate)
	if err != nil {
		return nil, apperror.BadRequest("record_date must be YYYY-MM-DD")
	}
	status := input.Status
	if status == "" {
		status = entity.CaseStatusOpen
	}

	record := &entity.HealthRecord{
		AnimalID:   animal.ID,
		RecordedBy: actorID,
		RecordDate: date,
		Condition:  sanitize.Text(input.Condition),
		Diagnosis:  sanitize.Optional(input.Diagnosis),
		Treatment:  sanitize.Optional(input.Treatment),
		Status:     status,
		Notes:      sanitize.Optional(input.Notes),
	}
	if err := s.repo.CreateRecord(ctx, record); err != nil {
		return nil, err
	}

	s.syncAnimalStatus(ctx, animal, status)
	return record, nil
}

// AnimalStatusFor maps a case status onto the animal's health status.
func AnimalStatusFor(caseStatus string) string {
	switch caseStatus {
	case entity.CaseStatusOpen:
		return entity.HealthStatusSick
	case entity.CaseStatusUnderTreatment:
		return entity.HealthStatusUnderTreatment
	default:
		return entity.HealthStatusRecovering
	}
}

func (s *healthService) syncAnimalStatus(ctx context.Context, animal *entity.Animal, caseStatus string) {
	status := AnimalStatusFor(caseStatus)
	if animal.HealthStatus == status {
		return
	}
	animal.HealthStatus = status
	if err := s.animals.Update(ctx, animal); err != nil {
		s.log.Warn("failed to update animal health status", zap.String("animal_id", animal.ID.String()), zap.Error(err))
	}
}

func (s *healthService) UpdateCaseStatus(ctx context.Context, id uuid.UUID, input dto.CaseStatusInput) (*entity.HealthRecord, error) {
	record, err := s.repo.FindRecord(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	record.Status = input.Status
	if input.Treatment != nil {
		record.Treatment = sanitize.Optional(input.Treatment)
	}
	if input.Notes != nil {
		record.Notes = sanitize.Optional(input.Notes)
	}
	if err := s.repo.UpdateRecord(ctx, record); err != nil {
		return nil, err
	}

	if record.Animal != nil {
		s.syncAnimalStatus(ctx, record.Animal, record.Status)
	}
	return record, nil
}

func (s *healthService) ListVaccinations(ctx context.Context, ownerID, animalID uuid.UUID) ([]entity.Vaccination, error) {
	if _, err := s.ownedAnimal(ctx, ownerID, animalID); err != nil {
		return nil, err
	}
	return s.repo.ListVaccinationsByAnimal(ctx, animalID)
}

func (s *healthService) AddVaccination(ctx context.Context, ownerID, animalID uuid.UUID, input dto.VaccinationInput) (*entity.Vaccination, error) {
	if _, err := s.ownedAnimal(ctx, ownerID, animalID); err != nil {
		return nil, err
	}
	return s.addVaccination(ctx, ownerID, animalID, input)
}

func (s *healthService) VaccinateAnimal(ctx context.Context, actorID, animalID uuid.UUID, input dto.VaccinationInput) (*entity.Vaccination, error) {
	if _, err := s.anyAnimal(ctx, animalID); err != nil {
		return nil, err
	}
	return s.addVaccination(ctx, actorID, animalID, input)
}

func (s *healthService) addVaccination(ctx context.Context, actorID, animalID uuid.UUID, input dto.VaccinationInput) (*entity.Vaccination, error) {
	given, err := commonDto.ParseDate(input.DateGiven)
	if err != nil {
		return nil, apperror.BadRequest("date_given must be YYYY-MM-DD")
	}
	next, err := commonDto.ParseOptionalDate(input.NextDueDate)
	if err != nil {
		return nil, apperror.BadRequest("next_due_date must be YYYY-MM-DD")
	}
	if next != nil && next.Before(given) {
		return nil, apperror.BadRequest("next_due_date must not be before date_given")
	}

	v := &entity.Vaccination{
		AnimalID:       animalID,
		AdministeredBy: actorID,
		VaccineName:    sanitize.Text(input.VaccineName),
		DateGiven:      given,
		NextDueDate:    next,
		Notes:          sanitize.Optional(input.Notes),
	}
	if err := s.repo.CreateVaccination(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *healthService) ListCases(ctx context.Context, filter dto.CaseFilter) (*commonDto.Paginated[entity.HealthRecord], error) {
	filter.Normalize()
	records, total, err := s.repo.ListCases(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &commonDto.Paginated[entity.HealthRecord]{Data: records, Meta: commonDto.NewPaginationMeta(filter.PageQuery, total)}, nil
}

// DueVaccinations lists doses due within the window, overdue ones first.
func (s *healthService) DueVaccinations(ctx context.Context, ownerID *uuid.UUID, filter dto.DueFilter) ([]dto.DueVaccination, error) {
	window := filter.WindowDays
	if window == 0 {
		window = DefaultDueWindowDays
	}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	until := today.AddDate(0, 0, window+1).Add(-time.Nanosecond)

	due, err := s.repo.ListDue(ctx, until, ownerID, filter)
	if err != nil {
		return nil, err
	}
	for i := range due {
		due[i].Overdue = due[i].NextDueDate.Before(today)
	}
	return due, nil
}
