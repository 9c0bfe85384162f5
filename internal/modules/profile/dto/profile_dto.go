package dto

import (
	"anoa.com/livestockhub/internal/entity"
	"github.com/google/uuid"
)

type UpdateProfileInput struct {
	FullName          *string  `json:"full_name" binding:"omitempty,min=2,max=100"`
	Phone             *string  `json:"phone" binding:"omitempty,phone10"`
	State             *string  `json:"state" binding:"omitempty,max=100"`
	District          *string  `json:"district" binding:"omitempty,max=100"`
	Village           *string  `json:"village" binding:"omitempty,max=100"`
	PreferredLanguage *string  `json:"preferred_language" binding:"omitempty,oneof=en hi mr ta te kn bn gu pa"`
	FarmSize          *float64 `json:"farm_size" binding:"omitempty,min=0,max=100000"`
	PrimarySpecies    *string  `json:"primary_species" binding:"omitempty,oneof=cattle buffalo goat sheep pig poultry other"`
}

type ProfileResponse struct {
	ID        uuid.UUID       `json:"id"`
	Email     string          `json:"email"`
	AvatarURL *string         `json:"avatar_url,omitempty"`
	Profile   *entity.Profile `json:"profile"`
	Roles     []entity.Role   `json:"roles"`
}
