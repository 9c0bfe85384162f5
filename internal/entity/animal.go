package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	HealthStatusHealthy        = "healthy"
	HealthStatusSick           = "sick"
	HealthStatusUnderTreatment = "under_treatment"
	HealthStatusRecovering     = "recovering"
)

type Animal struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID              uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner                *Profile   `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Name                 *string    `gorm:"size:100" json:"name,omitempty"`
	Species              string     `gorm:"size:30;not null;index" json:"species"`
	Breed                *string    `gorm:"size:100" json:"breed,omitempty"`
	Gender               string     `gorm:"size:10;not null" json:"gender"`
	DateOfBirth          *time.Time `json:"date_of_birth,omitempty"`
	HealthStatus         string     `gorm:"size:30;not null;default:healthy" json:"health_status"`
	IdentificationNumber *string    `gorm:"size:50;index" json:"identification_number,omitempty"`
	Location             *string    `gorm:"size:200" json:"location,omitempty"`
	PhotoURL             *string    `gorm:"type:text" json:"photo_url,omitempty"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Animal) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	return
}

const (
	CaseStatusOpen           = "open"
	CaseStatusUnderTreatment = "under_treatment"
	CaseStatusRecovered      = "recovered"
)

type HealthRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AnimalID   uuid.UUID `gorm:"type:uuid;not null;index" json:"animal_id"`
	Animal     *Animal   `gorm:"constraint:OnDelete:CASCADE" json:"animal,omitempty"`
	RecordedBy uuid.UUID `gorm:"type:uuid;not null" json:"recorded_by"`
	RecordDate time.Time `gorm:"not null;index" json:"record_date"`
	Condition  string    `gorm:"size:200;not null" json:"condition"`
	Diagnosis  *string   `gorm:"type:text" json:"diagnosis,omitempty"`
	Treatment  *string   `gorm:"type:text" json:"treatment,omitempty"`
	Status     string    `gorm:"size:30;not null;default:open;index" json:"status"`
	Notes      *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (h *HealthRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == uuid.Nil {
		h.ID, err = uuid.NewV7()
	}
	return
}

type Vaccination struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AnimalID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"animal_id"`
	Animal         *Animal    `gorm:"constraint:OnDelete:CASCADE" json:"animal,omitempty"`
	AdministeredBy uuid.UUID  `gorm:"type:uuid;not null" json:"administered_by"`
	VaccineName    string     `gorm:"size:100;not null" json:"vaccine_name"`
	DateGiven      time.Time  `gorm:"not null" json:"date_given"`
	NextDueDate    *time.Time `gorm:"index" json:"next_due_date,omitempty"`
	Notes          *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (v *Vaccination) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID, err = uuid.NewV7()
	}
	return
}

type BreedingRecord struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AnimalID             uuid.UUID  `gorm:"type:uuid;not null;index" json:"animal_id"`
	Animal               *Animal    `gorm:"constraint:OnDelete:CASCADE" json:"animal,omitempty"`
	BreedingDate         time.Time  `gorm:"not null" json:"breeding_date"`
	Method               string     `gorm:"size:30;not null" json:"method"`
	SireDetails          *string    `gorm:"size:200" json:"sire_details,omitempty"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date,omitempty"`
	Outcome              *string    `gorm:"size:100" json:"outcome,omitempty"`
	Notes                *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (b *BreedingRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID, err = uuid.NewV7()
	}
	return
}

type FeedingSchedule struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AnimalID    uuid.UUID `gorm:"type:uuid;not null;index" json:"animal_id"`
	Animal      *Animal   `gorm:"constraint:OnDelete:CASCADE" json:"animal,omitempty"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	FeedType    string    `gorm:"size:100;not null" json:"feed_type"`
	Quantity    float64   `gorm:"not null" json:"quantity"`
	Unit        string    `gorm:"size:20;not null" json:"unit"`
	FeedingTime string    `gorm:"size:5;not null" json:"feeding_time"`
	Frequency   string    `gorm:"size:20;not null" json:"frequency"`
	Notes       *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (f *FeedingSchedule) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID, err = uuid.NewV7()
	}
	return
}

type FeedInventory struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	FeedName   string     `gorm:"size:100;not null" json:"feed_name"`
	Quantity   float64    `gorm:"not null" json:"quantity"`
	Unit       string     `gorm:"size:20;not null" json:"unit"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Supplier   *string    `gorm:"size:100" json:"supplier,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (f *FeedInventory) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID, err = uuid.NewV7()
	}
	return
}
