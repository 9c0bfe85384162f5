package service

import (
	"context"
	"errors"
	"time"

	"anoa.com/livestockhub/internal/entity"
	animalRepo "anoa.com/livestockhub/internal/modules/animal/repository"
	animalService "anoa.com/livestockhub/internal/modules/animal/service"
	"anoa.com/livestockhub/internal/modules/breeding/dto"
	"anoa.com/livestockhub/internal/modules/breeding/repository"
	"anoa.com/livestockhub/pkg/apperror"
	commonDto "anoa.com/livestockhub/pkg/dto"
	"anoa.com/livestockhub/pkg/sanitize"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gestationDays is the mean gestation length per species.
var gestationDays = map[string]int{
	"cattle":  283,
	"buffalo": 310,
	"goat":    150,
	"sheep":   147,
	"pig":     114,
}

// ExpectedDelivery estimates the delivery date from the breeding date. ok is
// false for species without a known gestation length.
func ExpectedDelivery(species string, bred time.Time) (time.Time, bool) {
	days, ok := gestationDays[species]
	if !ok {
		return time.Time{}, false
	}
	return bred.AddDate(0, 0, days), true
}

var ErrBreedingNotFound = apperror.NotFound("breeding record not found")

type BreedingService interface {
	List(ctx context.Context, ownerID, animalID uuid.UUID) ([]entity.BreedingRecord, error)
	Add(ctx context.Context, ownerID, animalID uuid.UUID, input dto.BreedingInput) (*entity.BreedingRecord, error)
	RecordOutcome(ctx context.Context, ownerID, id uuid.UUID, input dto.OutcomeInput) (*entity.BreedingRecord, error)
	Upcoming(ctx context.Context, ownerID uuid.UUID, days int) ([]entity.BreedingRecord, error)
}

type breedingService struct {
	repo    repository.BreedingRepository
	animals animalRepo.AnimalRepository
	now     func() time.Time
}

func NewBreedingService(repo repository.BreedingRepository, animals animalRepo.AnimalRepository) BreedingService {
	return &breedingService{repo: repo, animals: animals, now: time.Now}
}

func (s *breedingService) owned(ctx context.Context, ownerID, animalID uuid.UUID) (*entity.Animal, error) {
	animal, err := s.animals.FindOwned(ctx, animalID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, animalService.ErrAnimalNotFound
		}
		return nil, err
	}
	return animal, nil
}

func (s *breedingService) List(ctx context.Context, ownerID, animalID uuid.UUID) ([]entity.BreedingRecord, error) {
	if _, err := s.owned(ctx, ownerID, animalID); err != nil {
		return nil, err
	}
	return s.repo.ListByAnimal(ctx, animalID)
}

func (s *breedingService) Add(ctx context.Context, ownerID, animalID uuid.UUID, input dto.BreedingInput) (*entity.BreedingRecord, error) {
	animal, err := s.owned(ctx, ownerID, animalID)
	if err != nil {
		return nil, err
	}
	if animal.Gender != "female" {
		return nil, apperror.BadRequest("breeding records can only be added for female animals")
	}

	bred, err := commonDto.ParseDate(input.BreedingDate)
	if err != nil {
		return nil, apperror.BadRequest("breeding_date must be YYYY-MM-DD")
	}
	expected, err := commonDto.ParseOptionalDate(input.ExpectedDeliveryDate)
	if err != nil {
		return nil, apperror.BadRequest("expected_delivery_date must be YYYY-MM-DD")
	}
	if expected == nil {
		if est, ok := ExpectedDelivery(animal.Species, bred); ok {
			expected = &est
		}
	} else if expected.Before(bred) {
		return nil, apperror.BadRequest("expected_delivery_date must be after breeding_date")
	}

	record := &entity.BreedingRecord{
		AnimalID:             animalID,
		BreedingDate:         bred,
		Method:               input.Method,
		SireDetails:          sanitize.Optional(input.SireDetails),
		ExpectedDeliveryDate: expected,
		Outcome:              sanitize.Optional(input.Outcome),
		Notes:                sanitize.Optional(input.Notes),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *breedingService) RecordOutcome(ctx context.Context, ownerID, id uuid.UUID, input dto.OutcomeInput) (*entity.BreedingRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBreedingNotFound
		}
		return nil, err
	}
	if record.Animal == nil || record.Animal.OwnerID != ownerID {
		return nil, ErrBreedingNotFound
	}

	outcome := sanitize.Text(input.Outcome)
	record.Outcome = &outcome
	if input.Notes != nil {
		record.Notes = sanitize.Optional(input.Notes)
	}
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Upcoming lists pending deliveries expected within the next days.
func (s *breedingService) Upcoming(ctx context.Context, ownerID uuid.UUID, days int) ([]entity.BreedingRecord, error) {
	if days <= 0 {
		days = 30
	}
	now := s.now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.repo.ListExpectedBetween(ctx, ownerID, from, from.AddDate(0, 0, days))
}
