package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ListingStatusActive   = "active"
	ListingStatusSold     = "sold"
	ListingStatusInactive = "inactive"
)

type MarketplaceListing struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SellerID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller        *Profile   `gorm:"foreignKey:SellerID;references:ID;constraint:OnDelete:CASCADE" json:"seller,omitempty"`
	AnimalID      *uuid.UUID `gorm:"type:uuid;index" json:"animal_id,omitempty"`
	Title         string     `gorm:"size:150;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	Category      string     `gorm:"size:30;not null;index" json:"category"`
	Price         float64    `gorm:"not null" json:"price"`
	Location      string     `gorm:"size:200;not null" json:"location"`
	ContactNumber string     `gorm:"size:10;not null" json:"contact_number"`
	ImageURL      *string    `gorm:"type:text" json:"image_url,omitempty"`
	Status        string     `gorm:"size:20;not null;default:active;index" json:"status"`
	ViewsCount    int        `gorm:"default:0" json:"views_count"`
	RatingAvg     float64    `gorm:"default:0" json:"rating_avg"`
	RatingCount   int        `gorm:"default:0" json:"rating_count"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (l *MarketplaceListing) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID, err = uuid.NewV7()
	}
	return
}

type MarketplaceEnquiry struct {
	ID        uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	ListingID uuid.UUID           `gorm:"type:uuid;not null;index" json:"listing_id"`
	Listing   *MarketplaceListing `gorm:"constraint:OnDelete:CASCADE" json:"listing,omitempty"`
	BuyerID   uuid.UUID           `gorm:"type:uuid;not null;index" json:"buyer_id"`
	Message   string              `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

func (e *MarketplaceEnquiry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID, err = uuid.NewV7()
	}
	return
}

type MarketplaceReview struct {
	ID         uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	ListingID  uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_review_listing_reviewer" json:"listing_id"`
	Listing    *MarketplaceListing `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ReviewerID uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_review_listing_reviewer" json:"reviewer_id"`
	Rating     int                 `gorm:"not null" json:"rating"`
	Comment    *string             `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt  time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

func (r *MarketplaceReview) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}

const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

type ListingReport struct {
	ID         uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	ListingID  uuid.UUID           `gorm:"type:uuid;not null;index" json:"listing_id"`
	Listing    *MarketplaceListing `gorm:"constraint:OnDelete:CASCADE" json:"listing,omitempty"`
	ReporterID uuid.UUID           `gorm:"type:uuid;not null" json:"reporter_id"`
	Reason     string              `gorm:"type:text;not null" json:"reason"`
	Status     string              `gorm:"size:20;not null;default:pending;index" json:"status"`
	CreatedAt  time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *ListingReport) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
