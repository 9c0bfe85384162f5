package dto

import (
	"anoa.com/livestockhub/internal/entity"
	feedingDto "anoa.com/livestockhub/internal/modules/feeding/dto"
	healthDto "anoa.com/livestockhub/internal/modules/health/dto"
)

// Summary is the farmer landing page payload.
type Summary struct {
	TotalAnimals       int64                       `json:"total_animals"`
	AnimalsBySpecies   map[string]int64            `json:"animals_by_species"`
	AnimalsByHealth    map[string]int64            `json:"animals_by_health"`
	UpcomingVaccines   []healthDto.DueVaccination  `json:"upcoming_vaccinations"`
	FeedSummary        feedingDto.InventorySummary `json:"feed_summary"`
	FeedAlerts         []feedingDto.InventoryItem  `json:"feed_alerts"`
	UpcomingDeliveries []entity.BreedingRecord     `json:"upcoming_deliveries"`
}
