package service

import (
	"context"
	"errors"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/animal/dto"
	"anoa.com/livestockhub/internal/modules/animal/repository"
	"anoa.com/livestockhub/pkg/apperror"
	commonDto "anoa.com/livestockhub/pkg/dto"
	"anoa.com/livestockhub/pkg/sanitize"
	"anoa.com/livestockhub/pkg/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrAnimalNotFound = apperror.NotFound("animal not found")

type AnimalService interface {
	List(ctx context.Context, ownerID uuid.UUID, filter dto.AnimalFilter) (*commonDto.Paginated[entity.Animal], error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*entity.Animal, error)
	Create(ctx context.Context, ownerID uuid.UUID, input dto.CreateAnimalInput) (*entity.Animal, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, input dto.UpdateAnimalInput) (*entity.Animal, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	UploadPhoto(ctx context.Context, ownerID, id uuid.UUID, file commonDto.UploadFile) (*entity.Animal, error)
}

type animalService struct {
	repo         repository.AnimalRepository
	imageStorage storage.ImageStorage
	log          *zap.Logger
}

func NewAnimalService(repo repository.AnimalRepository, imageStorage storage.ImageStorage, log *zap.Logger) AnimalService {
	if log == nil {
		log = zap.NewNop()
	}
	return &animalService{repo: repo, imageStorage: imageStorage, log: log}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAnimalNotFound
	}
	return err
}

func (s *animalService) List(ctx context.Context, ownerID uuid.UUID, filter dto.AnimalFilter) (*commonDto.Paginated[entity.Animal], error) {
	filter.Normalize()
	animals, total, err := s.repo.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	return &commonDto.Paginated[entity.Animal]{Data: animals, Meta: commonDto.NewPaginationMeta(filter.PageQuery, total)}, nil
}

func (s *animalService) Get(ctx context.Context, ownerID, id uuid.UUID) (*entity.Animal, error) {
	animal, err := s.repo.FindOwned(ctx, id, ownerID)
	if err != nil {
		return nil, notFound(err)
	}
	return animal, nil
}

func (s *animalService) Create(ctx context.Context, ownerID uuid.UUID, input dto.CreateAnimalInput) (*entity.Animal, error) {
	dob, err := commonDto.ParseOptionalDate(input.DateOfBirth)
	if err != nil {
		return nil, apperror.BadRequest("date_of_birth must be YYYY-MM-DD")
	}

	status := input.HealthStatus
	if status == "" {
		status = entity.HealthStatusHealthy
	}

	animal := &entity.Animal{
		OwnerID:              ownerID,
		Name:                 sanitize.Optional(input.Name),
		Species:              input.Species,
		Breed:                sanitize.Optional(input.Breed),
		Gender:               input.Gender,
		DateOfBirth:          dob,
		HealthStatus:         status,
		IdentificationNumber: sanitize.Optional(input.IdentificationNumber),
		Location:             sanitize.Optional(input.Location),
	}
	if err := s.repo.Create(ctx, animal); err != nil {
		return nil, err
	}
	return animal, nil
}

func (s *animalService) Update(ctx context.Context, ownerID, id uuid.UUID, input dto.UpdateAnimalInput) (*entity.Animal, error) {
	animal, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.DateOfBirth != nil {
		dob, err := commonDto.ParseOptionalDate(input.DateOfBirth)
		if err != nil {
			return nil, apperror.BadRequest("date_of_birth must be YYYY-MM-DD")
		}
		animal.DateOfBirth = dob
	}
	if input.Name != nil {
		animal.Name = sanitize.Optional(input.Name)
	}
	if input.Species != nil {
		animal.Species = *input.Species
	}
	if input.Breed != nil {
		animal.Breed = sanitize.Optional(input.Breed)
	}
	if input.Gender != nil {
		animal.Gender = *input.Gender
	}
	if input.HealthStatus != nil {
		animal.HealthStatus = *input.HealthStatus
	}
	if input.IdentificationNumber != nil {
		animal.IdentificationNumber = sanitize.Optional(input.IdentificationNumber)
	}
	if input.Location != nil {
		animal.Location = sanitize.Optional(input.Location)
	}

	if err := s.repo.Update(ctx, animal); err != nil {
		return nil, err
	}
	return animal, nil
}

func (s *animalService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	animal, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return notFound(err)
	}

	if animal.PhotoURL != nil && s.imageStorage != nil {
		if err := s.imageStorage.DeleteImage(ctx, *animal.PhotoURL); err != nil {
			s.log.Warn("failed to delete animal photo", zap.String("animal_id", id.String()), zap.Error(err))
		}
	}
	return nil
}

func (s *animalService) UploadPhoto(ctx context.Context, ownerID, id uuid.UUID, file commonDto.UploadFile) (*entity.Animal, error) {
	if s.imageStorage == nil {
		return nil, storage.ErrNotConfigured
	}
	animal, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	url, err := s.imageStorage.UploadImage(ctx, file.Reader, "animals", file.FileName)
	if err != nil {
		return nil, err
	}
	previous := animal.PhotoURL
	animal.PhotoURL = &url
	if err := s.repo.Update(ctx, animal); err != nil {
		return nil, err
	}

	if previous != nil {
		if err := s.imageStorage.DeleteImage(ctx, *previous); err != nil {
			s.log.Warn("failed to delete old animal photo", zap.String("animal_id", id.String()), zap.Error(err))
		}
	}
	return animal, nil
}
