package dto

import (
	userDto "anoa.com/livestockhub/internal/modules/user/dto"
	"github.com/google/uuid"
)

type StartInput struct {
	TargetUserID string `json:"target_user_id" binding:"required,uuid"`
}

type ImpersonationResponse struct {
	*userDto.AuthResponse
	ImpersonationID uuid.UUID  `json:"impersonation_id"`
	IsImpersonating bool       `json:"is_impersonating"`
	TargetUserID    *uuid.UUID `json:"target_user_id,omitempty"`
}
