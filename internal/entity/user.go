package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleFarmer             Role = "farmer"
	RoleVeterinaryOfficer  Role = "veterinary_officer"
	RoleProgramCoordinator Role = "program_coordinator"
	RoleAdmin              Role = "admin"
)

var allRoles = []Role{RoleFarmer, RoleVeterinaryOfficer, RoleProgramCoordinator, RoleAdmin}

// AllRoles returns every known role in a stable order.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

func (r Role) Valid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	GoogleID     *string    `gorm:"size:100;uniqueIndex" json:"-"`
	AvatarURL    *string    `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	Profile      *Profile   `gorm:"foreignKey:ID;references:ID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Roles        []UserRole `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"roles,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// RoleNames flattens the loaded role rows.
func (u *User) RoleNames() []Role {
	roles := make([]Role, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Role)
	}
	return roles
}

// Profile shares its primary key with the auth user.
type Profile struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName            string    `gorm:"size:100;not null" json:"full_name"`
	Phone               *string   `gorm:"size:15" json:"phone,omitempty"`
	State               *string   `gorm:"size:100;index" json:"state,omitempty"`
	District            *string   `gorm:"size:100;index" json:"district,omitempty"`
	Village             *string   `gorm:"size:100" json:"village,omitempty"`
	PreferredLanguage   string    `gorm:"size:10;default:en" json:"preferred_language"`
	FarmSize            *float64  `json:"farm_size,omitempty"`
	PrimarySpecies      *string   `gorm:"size:30" json:"primary_species,omitempty"`
	OnboardingStep      int       `gorm:"default:0" json:"onboarding_step"`
	OnboardingCompleted bool      `gorm:"default:false" json:"onboarding_completed"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type UserRole struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_role" json:"user_id"`
	Role      Role      `gorm:"size:30;not null;uniqueIndex:idx_user_role" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
