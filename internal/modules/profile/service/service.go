package service

import (
	"context"
	"errors"
	"strings"

	"anoa.com/livestockhub/internal/entity"
	profileDto "anoa.com/livestockhub/internal/modules/profile/dto"
	profileRepo "anoa.com/livestockhub/internal/modules/profile/repository"
	userRepo "anoa.com/livestockhub/internal/modules/user/repository"
	"anoa.com/livestockhub/pkg/apperror"
	commonDto "anoa.com/livestockhub/pkg/dto"
	"anoa.com/livestockhub/pkg/sanitize"
	"anoa.com/livestockhub/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetCurrentProfile(ctx context.Context, userID uuid.UUID) (*profileDto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input profileDto.UpdateProfileInput) (*profileDto.ProfileResponse, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, file commonDto.UploadFile) (*profileDto.ProfileResponse, error)
}

type profileService struct {
	users        userRepo.UserRepository
	profiles     profileRepo.ProfileRepository
	imageStorage storage.ImageStorage
}

func NewProfileService(users userRepo.UserRepository, profiles profileRepo.ProfileRepository, imageStorage storage.ImageStorage) ProfileService {
	return &profileService{users: users, profiles: profiles, imageStorage: imageStorage}
}

func (s *profileService) GetCurrentProfile(ctx context.Context, userID uuid.UUID) (*profileDto.ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return toResponse(user), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input profileDto.UpdateProfileInput) (*profileDto.ProfileResponse, error) {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("profile not found")
		}
		return nil, err
	}

	ApplyUpdate(profile, input)
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return s.GetCurrentProfile(ctx, userID)
}

func (s *profileService) UploadAvatar(ctx context.Context, userID uuid.UUID, file commonDto.UploadFile) (*profileDto.ProfileResponse, error) {
	if s.imageStorage == nil {
		return nil, storage.ErrNotConfigured
	}

	url, err := s.imageStorage.UploadImage(ctx, file.Reader, "avatars", file.FileName)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.UpdateAvatar(ctx, userID, url); err != nil {
		return nil, err
	}
	return s.GetCurrentProfile(ctx, userID)
}

// ApplyUpdate copies the set fields of input onto profile.
func ApplyUpdate(profile *entity.Profile, input profileDto.UpdateProfileInput) {
	if input.FullName != nil {
		profile.FullName = sanitize.Text(*input.FullName)
	}
	if input.Phone != nil {
		profile.Phone = input.Phone
	}
	if input.State != nil {
		profile.State = sanitize.Optional(input.State)
	}
	if input.District != nil {
		profile.District = sanitize.Optional(input.District)
	}
	if input.Village != nil {
		profile.Village = sanitize.Optional(input.Village)
	}
	if input.PreferredLanguage != nil {
		profile.PreferredLanguage = strings.ToLower(*input.PreferredLanguage)
	}
	if input.FarmSize != nil {
		profile.FarmSize = input.FarmSize
	}
	if input.PrimarySpecies != nil {
		profile.PrimarySpecies = input.PrimarySpecies
	}
}

func toResponse(user *entity.User) *profileDto.ProfileResponse {
	return &profileDto.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		Profile:   user.Profile,
		Roles:     user.RoleNames(),
	}
}
