package client

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Profile struct {
	ID                  uuid.UUID `json:"id"`
	FullName            string    `json:"full_name"`
	Phone               *string   `json:"phone,omitempty"`
	State               *string   `json:"state,omitempty"`
	District            *string   `json:"district,omitempty"`
	Village             *string   `json:"village,omitempty"`
	PreferredLanguage   string    `json:"preferred_language"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
}

// AuthResponse is returned by every endpoint that issues a token.
type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int64    `json:"expires_in"`
	User        *User    `json:"user"`
	Profile     *Profile `json:"profile"`
	Roles       []string `json:"roles"`
}

type impersonationResponse struct {
	AuthResponse
	IsImpersonating bool       `json:"is_impersonating"`
	TargetUserID    *uuid.UUID `json:"target_user_id,omitempty"`
}

type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RouteDecision is the server's answer for a page path.
type RouteDecision struct {
	Path     string   `json:"path"`
	Outcome  string   `json:"outcome"`
	Redirect string   `json:"redirect,omitempty"`
	Roles    []string `json:"roles"`
}
