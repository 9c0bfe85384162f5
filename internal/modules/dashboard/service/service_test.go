package service

import (
	"context"
	"testing"
	"time"

	"anoa.com/livestockhub/internal/entity"
	animalRepo "anoa.com/livestockhub/internal/modules/animal/repository"
	breedingRepo "anoa.com/livestockhub/internal/modules/breeding/repository"
	breedingService "anoa.com/livestockhub/internal/modules/breeding/service"
	feedingDto "anoa.com/livestockhub/internal/modules/feeding/dto"
	feedingRepo "anoa.com/livestockhub/internal/modules/feeding/repository"
	feedingService "anoa.com/livestockhub/internal/modules/feeding/service"
	healthRepo "anoa.com/livestockhub/internal/modules/health/repository"
	healthService "anoa.com/livestockhub/internal/modules/health/service"
	"anoa.com/livestockhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	now := time.Now()

	owner := testutil.CreateUser(t, db, "owner@example.com", true, entity.RoleFarmer)
	other := testutil.CreateUser(t, db, "other@example.com", true, entity.RoleFarmer)
	cow := testutil.CreateAnimal(t, db, owner.ID, "cattle")
	testutil.CreateAnimal(t, db, owner.ID, "cattle")
	testutil.CreateAnimal(t, db, owner.ID, "goat")
	theirs := testutil.CreateAnimal(t, db, other.ID, "cattle")

	soon := testutil.Day(now, 10)
	later := testutil.Day(now, 90)
	require.NoError(t, db.Create(&entity.Vaccination{AnimalID: cow.ID, VaccineName: "FMD", DateGiven: testutil.Day(now, -170), NextDueDate: &soon}).Error)
	require.NoError(t, db.Create(&entity.Vaccination{AnimalID: cow.ID, VaccineName: "HS", DateGiven: testutil.Day(now, -10), NextDueDate: &later}).Error)
	require.NoError(t, db.Create(&entity.Vaccination{AnimalID: theirs.ID, VaccineName: "FMD", DateGiven: testutil.Day(now, -170), NextDueDate: &soon}).Error)

	delivery := testutil.Day(now, 20)
	require.NoError(t, db.Create(&entity.BreedingRecord{AnimalID: cow.ID, BreedingDate: testutil.Day(now, -263), Method: "natural", ExpectedDeliveryDate: &delivery}).Error)

	animals := animalRepo.NewAnimalRepository(db)
	health := healthRepo.NewHealthRepository(db)
	feeding := feedingService.NewFeedingService(feedingRepo.NewFeedingRepository(db), animals)
	_, err := feeding.CreateInventory(ctx, owner.ID, feedingDto.InventoryInput{FeedName: "Maize", Quantity: 4, Unit: "kg"})
	require.NoError(t, err)
	_, err = feeding.CreateInventory(ctx, owner.ID, feedingDto.InventoryInput{FeedName: "Silage", Quantity: 400, Unit: "kg"})
	require.NoError(t, err)

	svc := NewDashboardService(
		animals,
		healthService.NewHealthService(health, animals, nil),
		feeding,
		breedingService.NewBreedingService(breedingRepo.NewBreedingRepository(db), animals),
	)

	sum, err := svc.Summary(ctx, owner.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), sum.TotalAnimals)
	assert.Equal(t, int64(2), sum.AnimalsBySpecies["cattle"])
	assert.Equal(t, int64(3), sum.AnimalsByHealth[entity.HealthStatusHealthy])

	require.Len(t, sum.UpcomingVaccines, 1)
	assert.Equal(t, "FMD", sum.UpcomingVaccines[0].VaccineName)
	assert.Equal(t, owner.ID, sum.UpcomingVaccines[0].OwnerID)

	assert.Equal(t, 2, sum.FeedSummary.TotalItems)
	require.Len(t, sum.FeedAlerts, 1)
	assert.Equal(t, "Maize", sum.FeedAlerts[0].FeedName)

	require.Len(t, sum.UpcomingDeliveries, 1)
	assert.Equal(t, cow.ID, sum.UpcomingDeliveries[0].AnimalID)
}
