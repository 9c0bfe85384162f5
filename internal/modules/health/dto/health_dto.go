package dto

import (
	"time"

	commonDto "anoa.com/livestockhub/pkg/dto"
	"github.com/google/uuid"
)

type HealthRecordInput struct {
	RecordDate string  `json:"record_date" binding:"required,datetime=2006-01-02"`
	Condition  string  `json:"condition" binding:"required,min=2,max=200"`
	Diagnosis  *string `json:"diagnosis" binding:"omitempty,max=2000"`
	Treatment  *string `json:"treatment" binding:"omitempty,max=2000"`
	Status     string  `json:"status" binding:"omitempty,oneof=open under_treatment recovered"`
	Notes      *string `json:"notes" binding:"omitempty,max=2000"`
}

type CaseStatusInput struct {
	Status    string  `json:"status" binding:"required,oneof=open under_treatment recovered"`
	Treatment *string `json:"treatment" binding:"omitempty,max=2000"`
	Notes     *string `json:"notes" binding:"omitempty,max=2000"`
}

type VaccinationInput struct {
	VaccineName string  `json:"vaccine_name" binding:"required,min=2,max=100"`
	DateGiven   string  `json:"date_given" binding:"required,datetime=2006-01-02"`
	NextDueDate *string `json:"next_due_date" binding:"omitempty,datetime=2006-01-02"`
	Notes       *string `json:"notes" binding:"omitempty,max=2000"`
}

type CaseFilter struct {
	commonDto.PageQuery
	Status   string `form:"status" binding:"omitempty,oneof=open under_treatment"`
	Species  string `form:"species" binding:"omitempty,max=30"`
	State    string `form:"state" binding:"omitempty,max=100"`
	District string `form:"district" binding:"omitempty,max=100"`
}

type DueFilter struct {
	WindowDays int    `form:"window_days" binding:"omitempty,min=1,max=365"`
	State      string `form:"state" binding:"omitempty,max=100"`
	District   string `form:"district" binding:"omitempty,max=100"`
}

// DueVaccination is a vaccination whose next dose falls inside a window.
type DueVaccination struct {
	VaccinationID uuid.UUID `json:"vaccination_id"`
	AnimalID      uuid.UUID `json:"animal_id"`
	AnimalName    *string   `json:"animal_name,omitempty"`
	Species       string    `json:"species"`
	OwnerID       uuid.UUID `json:"owner_id"`
	OwnerName     string    `json:"owner_name"`
	VaccineName   string    `json:"vaccine_name"`
	NextDueDate   time.Time `json:"next_due_date"`
	Overdue       bool      `json:"overdue"`
}
