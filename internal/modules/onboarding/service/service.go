package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/onboarding/dto"
	profileRepo "anoa.com/livestockhub/internal/modules/profile/repository"
	"anoa.com/livestockhub/pkg/apperror"
	"anoa.com/livestockhub/pkg/sanitize"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const TotalSteps = 3

type OnboardingService interface {
	Progress(ctx context.Context, userID uuid.UUID) (*dto.ProgressResponse, error)
	SubmitPersonal(ctx context.Context, userID uuid.UUID, input dto.PersonalStepInput) (*dto.ProgressResponse, error)
	SubmitLocation(ctx context.Context, userID uuid.UUID, input dto.LocationStepInput) (*dto.ProgressResponse, error)
	SubmitFarm(ctx context.Context, userID uuid.UUID, input dto.FarmStepInput) (*dto.ProgressResponse, error)
}

type onboardingService struct {
	profiles profileRepo.ProfileRepository
	log      *zap.Logger
}

func NewOnboardingService(profiles profileRepo.ProfileRepository, log *zap.Logger) OnboardingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &onboardingService{profiles: profiles, log: log}
}

func progressOf(p *entity.Profile) *dto.ProgressResponse {
	res := &dto.ProgressResponse{
		CurrentStep: p.OnboardingStep,
		TotalSteps:  TotalSteps,
		Completed:   p.OnboardingCompleted,
	}
	if !p.OnboardingCompleted && p.OnboardingStep < TotalSteps {
		res.NextStep = p.OnboardingStep + 1
	}
	return res
}

func (s *onboardingService) load(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("profile not found")
		}
		return nil, err
	}
	return p, nil
}

func (s *onboardingService) Progress(ctx context.Context, userID uuid.UUID) (*dto.ProgressResponse, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return progressOf(p), nil
}

// submit loads the profile, checks that step follows the last completed one,
// applies the step and persists it.
func (s *onboardingService) submit(ctx context.Context, userID uuid.UUID, step int, apply func(*entity.Profile)) (*dto.ProgressResponse, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if step > p.OnboardingStep+1 {
		return nil, apperror.BadRequest(fmt.Sprintf("complete step %d first", p.OnboardingStep+1))
	}

	apply(p)
	if step > p.OnboardingStep {
		p.OnboardingStep = step
	}
	if step == TotalSteps && !p.OnboardingCompleted {
		p.OnboardingCompleted = true
		s.log.Info("onboarding completed", zap.String("user_id", userID.String()))
	}

	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return progressOf(p), nil
}

func (s *onboardingService) SubmitPersonal(ctx context.Context, userID uuid.UUID, input dto.PersonalStepInput) (*dto.ProgressResponse, error) {
	return s.submit(ctx, userID, 1, func(p *entity.Profile) {
		p.FullName = sanitize.Text(input.FullName)
		phone := input.Phone
		p.Phone = &phone
		p.PreferredLanguage = input.PreferredLanguage
	})
}

func (s *onboardingService) SubmitLocation(ctx context.Context, userID uuid.UUID, input dto.LocationStepInput) (*dto.ProgressResponse, error) {
	return s.submit(ctx, userID, 2, func(p *entity.Profile) {
		state, district := sanitize.Text(input.State), sanitize.Text(input.District)
		p.State = &state
		p.District = &district
		p.Village = sanitize.Optional(input.Village)
	})
}

func (s *onboardingService) SubmitFarm(ctx context.Context, userID uuid.UUID, input dto.FarmStepInput) (*dto.ProgressResponse, error) {
	return s.submit(ctx, userID, 3, func(p *entity.Profile) {
		size := input.FarmSize
		species := input.PrimarySpecies
		p.FarmSize = &size
		p.PrimarySpecies = &species
	})
}
