package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Category  string    `gorm:"size:50;not null;index" json:"category"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Language  string    `gorm:"size:10;not null;default:en" json:"language"`
	MediaURL  *string   `gorm:"type:text" json:"media_url,omitempty"`
	Published bool      `gorm:"default:false;index" json:"published"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *ContentItem) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

// Scheme is a government or program support scheme shown to farmers.
type Scheme struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:200;not null" json:"name"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Eligibility *string    `gorm:"type:text" json:"eligibility,omitempty"`
	Benefits    *string    `gorm:"type:text" json:"benefits,omitempty"`
	State       *string    `gorm:"size:100;index" json:"state,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Active      bool       `gorm:"default:true;index" json:"active"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Scheme) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}
