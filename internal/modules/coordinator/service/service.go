package service

import (
	"context"
	"sort"

	animalRepo "anoa.com/livestockhub/internal/modules/animal/repository"
	"anoa.com/livestockhub/internal/modules/coordinator/dto"
	"anoa.com/livestockhub/internal/modules/coordinator/repository"
	healthDto "anoa.com/livestockhub/internal/modules/health/dto"
	healthRepo "anoa.com/livestockhub/internal/modules/health/repository"
	healthService "anoa.com/livestockhub/internal/modules/health/service"
	userRepo "anoa.com/livestockhub/internal/modules/user/repository"
)

type CoordinatorService interface {
	Overview(ctx context.Context) (*dto.Overview, error)
	Regions(ctx context.Context, filter dto.RegionFilter) ([]dto.RegionRow, error)
}

type coordinatorService struct {
	stats   repository.StatsRepository
	users   userRepo.UserRepository
	animals animalRepo.AnimalRepository
	health  healthRepo.HealthRepository
	vaccine healthService.HealthService
}

func NewCoordinatorService(
	stats repository.StatsRepository,
	users userRepo.UserRepository,
	animals animalRepo.AnimalRepository,
	health healthRepo.HealthRepository,
	vaccine healthService.HealthService,
) CoordinatorService {
	return &coordinatorService{stats: stats, users: users, animals: animals, health: health, vaccine: vaccine}
}

func (s *coordinatorService) Overview(ctx context.Context) (*dto.Overview, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.Overview{UsersByRole: make(map[string]int64, len(byRole))}
	for role, n := range byRole {
		out.UsersByRole[string(role)] = n
	}

	if out.AnimalsBySpecies, err = s.animals.CountBy(ctx, nil, "species"); err != nil {
		return nil, err
	}
	if out.AnimalsByHealth, err = s.animals.CountBy(ctx, nil, "health_status"); err != nil {
		return nil, err
	}
	if out.CasesByStatus, err = s.health.CountCasesByStatus(ctx); err != nil {
		return nil, err
	}

	due, err := s.vaccine.DueVaccinations(ctx, nil, healthDto.DueFilter{})
	if err != nil {
		return nil, err
	}
	for _, d := range due {
		if d.Overdue {
			out.VaccinationsOverdue++
		} else {
			out.VaccinationsDue++
		}
	}

	if out.ActiveListings, err = s.stats.CountActiveListings(ctx); err != nil {
		return nil, err
	}
	if out.OpenTickets, err = s.stats.CountOpenTickets(ctx); err != nil {
		return nil, err
	}
	if out.OnboardedFarmers, err = s.stats.CountOnboardedFarmers(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

type regionKey struct{ state, district string }

// Regions merges the per-region counts into one row per state, or per
// district of filter.State. Rows are sorted by farmer count, then name.
func (s *coordinatorService) Regions(ctx context.Context, filter dto.RegionFilter) ([]dto.RegionRow, error) {
	rows := map[regionKey]*dto.RegionRow{}
	row := func(c repository.RegionCount) *dto.RegionRow {
		k := regionKey{c.State, c.District}
		r, ok := rows[k]
		if !ok {
			r = &dto.RegionRow{State: c.State, District: c.District}
			rows[k] = r
		}
		return r
	}

	farmers, err := s.stats.FarmersByRegion(ctx, filter.State)
	if err != nil {
		return nil, err
	}
	for _, c := range farmers {
		row(c).Farmers = c.Count
	}

	animals, err := s.stats.AnimalsByRegion(ctx, filter.State)
	if err != nil {
		return nil, err
	}
	for _, c := range animals {
		row(c).Animals = c.Count
	}

	cases, err := s.stats.OpenCasesByRegion(ctx, filter.State)
	if err != nil {
		return nil, err
	}
	for _, c := range cases {
		row(c).OpenCases = c.Count
	}

	out := make([]dto.RegionRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Farmers != out[j].Farmers {
			return out[i].Farmers > out[j].Farmers
		}
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		return out[i].District < out[j].District
	})
	return out, nil
}
