package service

import (
	"context"

	animalRepo "anoa.com/livestockhub/internal/modules/animal/repository"
	breedingService "anoa.com/livestockhub/internal/modules/breeding/service"
	"anoa.com/livestockhub/internal/modules/dashboard/dto"
	feedingDto "anoa.com/livestockhub/internal/modules/feeding/dto"
	feedingService "anoa.com/livestockhub/internal/modules/feeding/service"
	healthDto "anoa.com/livestockhub/internal/modules/health/dto"
	healthService "anoa.com/livestockhub/internal/modules/health/service"
	"github.com/google/uuid"
)

// UpcomingDays is the look-ahead window for vaccinations and deliveries.
const UpcomingDays = 30

type DashboardService interface {
	Summary(ctx context.Context, ownerID uuid.UUID) (*dto.Summary, error)
}

type dashboardService struct {
	animals  animalRepo.AnimalRepository
	health   healthService.HealthService
	feeding  feedingService.FeedingService
	breeding breedingService.BreedingService
}

func NewDashboardService(
	animals animalRepo.AnimalRepository,
	health healthService.HealthService,
	feeding feedingService.FeedingService,
	breeding breedingService.BreedingService,
) DashboardService {
	return &dashboardService{animals: animals, health: health, feeding: feeding, breeding: breeding}
}

func (s *dashboardService) Summary(ctx context.Context, ownerID uuid.UUID) (*dto.Summary, error) {
	bySpecies, err := s.animals.CountBy(ctx, &ownerID, "species")
	if err != nil {
		return nil, err
	}
	byHealth, err := s.animals.CountBy(ctx, &ownerID, "health_status")
	if err != nil {
		return nil, err
	}
	out := &dto.Summary{AnimalsBySpecies: bySpecies, AnimalsByHealth: byHealth}
	for _, n := range bySpecies {
		out.TotalAnimals += n
	}

	if out.UpcomingVaccines, err = s.health.DueVaccinations(ctx, &ownerID, healthDto.DueFilter{WindowDays: UpcomingDays}); err != nil {
		return nil, err
	}

	inv, err := s.feeding.Inventory(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out.FeedSummary = inv.Summary
	out.FeedAlerts = make([]feedingDto.InventoryItem, 0)
	for _, item := range inv.Items {
		if item.Status != feedingService.StatusInStock {
			out.FeedAlerts = append(out.FeedAlerts, item)
		}
	}

	if out.UpcomingDeliveries, err = s.breeding.Upcoming(ctx, ownerID, UpcomingDays); err != nil {
		return nil, err
	}
	return out, nil
}
