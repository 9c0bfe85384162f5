package access

import (
	"context"
	"strings"

	"anoa.com/livestockhub/internal/entity"
	"github.com/google/uuid"
)

type OnboardingState string

const (
	OnboardingChecking OnboardingState = "checking"
	OnboardingBlocked  OnboardingState = "blocked"
	OnboardingClear    OnboardingState = "clear"
)

// OnboardingLookup reads the persisted completion flag of a profile.
type OnboardingLookup interface {
	OnboardingCompleted(ctx context.Context, userID uuid.UUID) (bool, error)
}

type OnboardingInput struct {
	UserID       uuid.UUID
	Present      bool
	RolesLoading bool
	Roles        RoleSet
	Path         string
}

// EvaluateOnboarding runs the onboarding gate for one navigation. The flag is
// only read for farmers away from the onboarding flow. A missing profile or a
// failed read counts as not completed.
func EvaluateOnboarding(ctx context.Context, in OnboardingInput, lookup OnboardingLookup) OnboardingState {
	if !in.Present || in.RolesLoading {
		return OnboardingChecking
	}
	if !in.Roles.Has(entity.RoleFarmer) {
		return OnboardingClear
	}
	if p := normalize(in.Path); p == PathOnboarding || strings.HasPrefix(p, PathOnboarding+"/") {
		return OnboardingClear
	}
	if lookup == nil {
		return OnboardingBlocked
	}

	completed, err := lookup.OnboardingCompleted(ctx, in.UserID)
	if err != nil || !completed {
		return OnboardingBlocked
	}
	return OnboardingClear
}
