package service

import (
	"context"
	"errors"
	"time"

	"anoa.com/livestockhub/internal/entity"
	animalRepo "anoa.com/livestockhub/internal/modules/animal/repository"
	animalService "anoa.com/livestockhub/internal/modules/animal/service"
	"anoa.com/livestockhub/internal/modules/feeding/dto"
	"anoa.com/livestockhub/internal/modules/feeding/repository"
	"anoa.com/livestockhub/pkg/apperror"
	commonDto "anoa.com/livestockhub/pkg/dto"
	"anoa.com/livestockhub/pkg/sanitize"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound  = apperror.NotFound("feeding schedule not found")
	ErrInventoryNotFound = apperror.NotFound("inventory item not found")
)

type FeedingService interface {
	ListSchedules(ctx context.Context, ownerID uuid.UUID, animalID *uuid.UUID) ([]entity.FeedingSchedule, error)
	CreateSchedule(ctx context.Context, ownerID uuid.UUID, input dto.ScheduleInput) (*entity.FeedingSchedule, error)
	UpdateSchedule(ctx context.Context, ownerID, id uuid.UUID, input dto.UpdateScheduleInput) (*entity.FeedingSchedule, error)
	DeleteSchedule(ctx context.Context, ownerID, id uuid.UUID) error

	Inventory(ctx context.Context, ownerID uuid.UUID) (*dto.InventoryResponse, error)
	CreateInventory(ctx context.Context, ownerID uuid.UUID, input dto.InventoryInput) (*entity.FeedInventory, error)
	UpdateInventory(ctx context.Context, ownerID, id uuid.UUID, input dto.UpdateInventoryInput) (*entity.FeedInventory, error)
	DeleteInventory(ctx context.Context, ownerID, id uuid.UUID) error
}

type feedingService struct {
	repo    repository.FeedingRepository
	animals animalRepo.AnimalRepository
	now     func() time.Time
}

func NewFeedingService(repo repository.FeedingRepository, animals animalRepo.AnimalRepository) FeedingService {
	return &feedingService{repo: repo, animals: animals, now: time.Now}
}

func (s *feedingService) ListSchedules(ctx context.Context, ownerID uuid.UUID, animalID *uuid.UUID) ([]entity.FeedingSchedule, error) {
	return s.repo.ListSchedules(ctx, ownerID, animalID)
}

func (s *feedingService) CreateSchedule(ctx context.Context, ownerID uuid.UUID, input dto.ScheduleInput) (*entity.FeedingSchedule, error) {
	animalID, err := uuid.Parse(input.AnimalID)
	if err != nil {
		return nil, apperror.BadRequest("animal_id must be a valid id")
	}
	if _, err := s.animals.FindOwned(ctx, animalID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, animalService.ErrAnimalNotFound
		}
		return nil, err
	}

	schedule := &entity.FeedingSchedule{
		AnimalID:    animalID,
		OwnerID:     ownerID,
		FeedType:    sanitize.Text(input.FeedType),
		Quantity:    input.Quantity,
		Unit:        input.Unit,
		FeedingTime: input.FeedingTime,
		Frequency:   input.Frequency,
		Notes:       sanitize.Optional(input.Notes),
	}
	if err := s.repo.CreateSchedule(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *feedingService) UpdateSchedule(ctx context.Context, ownerID, id uuid.UUID, input dto.UpdateScheduleInput) (*entity.FeedingSchedule, error) {
	schedule, err := s.repo.FindSchedule(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	if input.FeedType != nil {
		schedule.FeedType = sanitize.Text(*input.FeedType)
	}
	if input.Quantity != nil {
		schedule.Quantity = *input.Quantity
	}
	if input.Unit != nil {
		schedule.Unit = *input.Unit
	}
	if input.FeedingTime != nil {
		schedule.FeedingTime = *input.FeedingTime
	}
	if input.Frequency != nil {
		schedule.Frequency = *input.Frequency
	}
	if input.Notes != nil {
		schedule.Notes = sanitize.Optional(input.Notes)
	}

	if err := s.repo.UpdateSchedule(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *feedingService) DeleteSchedule(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.DeleteSchedule(ctx, id, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	return nil
}

func (s *feedingService) Inventory(ctx context.Context, ownerID uuid.UUID) (*dto.InventoryResponse, error) {
	items, err := s.repo.ListInventory(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	res := Summarize(items, s.now())
	return &res, nil
}

func (s *feedingService) CreateInventory(ctx context.Context, ownerID uuid.UUID, input dto.InventoryInput) (*entity.FeedInventory, error) {
	expiry, err := commonDto.ParseOptionalDate(input.ExpiryDate)
	if err != nil {
		return nil, apperror.BadRequest("expiry_date must be YYYY-MM-DD")
	}

	item := &entity.FeedInventory{
		OwnerID:    ownerID,
		FeedName:   sanitize.Text(input.FeedName),
		Quantity:   input.Quantity,
		Unit:       input.Unit,
		ExpiryDate: expiry,
		Supplier:   sanitize.Optional(input.Supplier),
	}
	if err := s.repo.CreateInventory(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *feedingService) UpdateInventory(ctx context.Context, ownerID, id uuid.UUID, input dto.UpdateInventoryInput) (*entity.FeedInventory, error) {
	item, err := s.repo.FindInventory(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}

	if input.ExpiryDate != nil {
		expiry, err := commonDto.ParseOptionalDate(input.ExpiryDate)
		if err != nil {
			return nil, apperror.BadRequest("expiry_date must be YYYY-MM-DD")
		}
		item.ExpiryDate = expiry
	}
	if input.FeedName != nil {
		item.FeedName = sanitize.Text(*input.FeedName)
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.Supplier != nil {
		item.Supplier = sanitize.Optional(input.Supplier)
	}

	if err := s.repo.UpdateInventory(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *feedingService) DeleteInventory(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.DeleteInventory(ctx, id, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInventoryNotFound
		}
		return err
	}
	return nil
}
