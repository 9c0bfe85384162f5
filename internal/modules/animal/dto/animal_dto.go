package dto

import commonDto "anoa.com/livestockhub/pkg/dto"

type CreateAnimalInput struct {
	Name                 *string `json:"name" binding:"omitempty,max=100"`
	Species              string  `json:"species" binding:"required,oneof=cattle buffalo goat sheep pig poultry other"`
	Breed                *string `json:"breed" binding:"omitempty,max=100"`
	Gender               string  `json:"gender" binding:"required,oneof=male female"`
	DateOfBirth          *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	HealthStatus         string  `json:"health_status" binding:"omitempty,oneof=healthy sick under_treatment recovering"`
	IdentificationNumber *string `json:"identification_number" binding:"omitempty,max=50"`
	Location             *string `json:"location" binding:"omitempty,max=200"`
}

type UpdateAnimalInput struct {
	Name                 *string `json:"name" binding:"omitempty,max=100"`
	Species              *string `json:"species" binding:"omitempty,oneof=cattle buffalo goat sheep pig poultry other"`
	Breed                *string `json:"breed" binding:"omitempty,max=100"`
	Gender               *string `json:"gender" binding:"omitempty,oneof=male female"`
	DateOfBirth          *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	HealthStatus         *string `json:"health_status" binding:"omitempty,oneof=healthy sick under_treatment recovering"`
	IdentificationNumber *string `json:"identification_number" binding:"omitempty,max=50"`
	Location             *string `json:"location" binding:"omitempty,max=200"`
}

type AnimalFilter struct {
	commonDto.PageQuery
	Species      string `form:"species" binding:"omitempty,oneof=cattle buffalo goat sheep pig poultry other"`
	HealthStatus string `form:"health_status" binding:"omitempty,oneof=healthy sick under_treatment recovering"`
	Search       string `form:"search" binding:"omitempty,max=100"`
}
