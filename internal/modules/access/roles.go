// Package access decides who may see what: the static route table, the
// role gate, the onboarding gate and their gin middleware.
package access

import (
	"sort"

	"anoa.com/livestockhub/internal/entity"
)

// RoleSet is the resolved set of roles of a user.
type RoleSet map[entity.Role]struct{}

func NewRoleSet(roles ...entity.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		if r.Valid() {
			set[r] = struct{}{}
		}
	}
	return set
}

func (s RoleSet) Has(r entity.Role) bool {
	_, ok := s[r]
	return ok
}

// Intersects reports whether any of allowed is in the set. An empty allowed
// list never matches.
func (s RoleSet) Intersects(allowed []entity.Role) bool {
	for _, r := range allowed {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// Slice returns the roles in a stable order.
func (s RoleSet) Slice() []entity.Role {
	out := make([]entity.Role, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Feature names a group of pages and API endpoints sharing one role policy.
type Feature string

const (
	FeatureFarm        Feature = "farm"
	FeatureVet         Feature = "vet"
	FeatureCoordinator Feature = "coordinator"
	FeatureAdmin       Feature = "admin"
)

var policy = map[Feature][]entity.Role{
	FeatureFarm:        {entity.RoleFarmer, entity.RoleAdmin},
	FeatureVet:         {entity.RoleVeterinaryOfficer, entity.RoleAdmin},
	FeatureCoordinator: {entity.RoleProgramCoordinator, entity.RoleAdmin},
	FeatureAdmin:       {entity.RoleAdmin},
}

// AllowedRoles returns the roles that may use f.
func AllowedRoles(f Feature) []entity.Role {
	return policy[f]
}
