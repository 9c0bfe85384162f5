package dto

import (
	"time"

	"anoa.com/livestockhub/internal/entity"
	userDto "anoa.com/livestockhub/internal/modules/user/dto"
	commonDto "anoa.com/livestockhub/pkg/dto"
	"github.com/google/uuid"
)

type UserListFilter struct {
	commonDto.PageQuery
	userDto.UserFilter
}

type RoleInput struct {
	Role entity.Role `json:"role" binding:"required,oneof=farmer veterinary_officer program_coordinator admin"`
}

// UserWithRoles is one row of the admin user list.
type UserWithRoles struct {
	ID        uuid.UUID       `json:"id"`
	Email     string          `json:"email"`
	Profile   *entity.Profile `json:"profile,omitempty"`
	Roles     []entity.Role   `json:"roles"`
	CreatedAt time.Time       `json:"created_at"`
}

type RolesResponse struct {
	UserID uuid.UUID     `json:"user_id"`
	Roles  []entity.Role `json:"roles"`
}
