package access

import (
	"context"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeAllow    Outcome = "allow"
	OutcomeRedirect Outcome = "redirect"
	OutcomeLoading  Outcome = "loading"
)

type Decision struct {
	Outcome  Outcome `json:"outcome"`
	Redirect string  `json:"redirect,omitempty"`
}

func allow() Decision { return Decision{Outcome: OutcomeAllow} }

func loading() Decision { return Decision{Outcome: OutcomeLoading} }

func redirect(path string) Decision {
	return Decision{Outcome: OutcomeRedirect, Redirect: path}
}

// Subject is who is navigating. RolesLoading is set while the role set is
// still being resolved.
type Subject struct {
	Authenticated bool
	UserID        uuid.UUID
	Roles         RoleSet
	RolesLoading  bool
}

// Gate combines the authentication check, the role gate and the onboarding
// gate, in that order.
type Gate struct {
	Production bool
	Onboarding OnboardingLookup
}

func NewGate(production bool, onboarding OnboardingLookup) *Gate {
	return &Gate{Production: production, Onboarding: onboarding}
}

func (g *Gate) Decide(ctx context.Context, path string, subj Subject) Decision {
	route := Match(path)

	if route.Path == PathDemoLogin && g.Production {
		return redirect(PathAuth)
	}
	if route.Public {
		return allow()
	}
	if !subj.Authenticated {
		return redirect(PathAuth)
	}
	if subj.RolesLoading {
		return loading()
	}
	if route.Feature != "" && !subj.Roles.Intersects(AllowedRoles(route.Feature)) {
		return redirect(route.fallback())
	}

	switch EvaluateOnboarding(ctx, OnboardingInput{
		UserID:  subj.UserID,
		Present: true,
		Roles:   subj.Roles,
		Path:    route.Path,
	}, g.Onboarding) {
	case OnboardingBlocked:
		return redirect(PathOnboarding)
	case OnboardingChecking:
		return loading()
	}
	return allow()
}
