package dto

import (
	"anoa.com/livestockhub/internal/entity"
	"github.com/google/uuid"
)

type SignUpInput struct {
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type DemoLoginInput struct {
	Role entity.Role `json:"role" binding:"required,oneof=farmer veterinary_officer program_coordinator admin"`
}

type GoogleCallbackInput struct {
	Code  string `form:"code" binding:"required"`
	State string `form:"state"`
}

type AuthResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int64           `json:"expires_in"`
	User        *entity.User    `json:"user"`
	Profile     *entity.Profile `json:"profile"`
	Roles       []entity.Role   `json:"roles"`
}

// SessionResponse describes the caller of GET /api/auth/session.
type SessionResponse struct {
	User            *entity.User    `json:"user"`
	Profile         *entity.Profile `json:"profile"`
	Roles           []entity.Role   `json:"roles"`
	IsImpersonating bool            `json:"is_impersonating"`
	ImpersonatorID  *uuid.UUID      `json:"impersonator_id,omitempty"`
	ExpiresAt       int64           `json:"expires_at"`
}

type UserFilter struct {
	Search string      `form:"search" binding:"omitempty,max=100"`
	Role   entity.Role `form:"role" binding:"omitempty,oneof=farmer veterinary_officer program_coordinator admin"`
}
