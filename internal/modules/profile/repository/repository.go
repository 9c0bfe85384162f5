package repository

import (
	"context"

	"anoa.com/livestockhub/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	Save(ctx context.Context, profile *entity.Profile) error
	UpdateAvatar(ctx context.Context, userID uuid.UUID, url string) error
	OnboardingCompleted(ctx context.Context, userID uuid.UUID) (bool, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Save(ctx context.Context, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) UpdateAvatar(ctx context.Context, userID uuid.UUID, url string) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).Update("avatar_url", url).Error
}

// OnboardingCompleted returns gorm.ErrRecordNotFound when the profile is missing.
func (r *profileRepository) OnboardingCompleted(ctx context.Context, userID uuid.UUID) (bool, error) {
	var profile entity.Profile
	err := r.db.WithContext(ctx).Select("onboarding_completed").Where("id = ?", userID).First(&profile).Error
	if err != nil {
		return false, err
	}
	return profile.OnboardingCompleted, nil
}
