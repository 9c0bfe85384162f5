package service

import (
	"context"
	"testing"

	"anoa.com/livestockhub/internal/entity"
	animalRepo "anoa.com/livestockhub/internal/modules/animal/repository"
	"anoa.com/livestockhub/internal/modules/coordinator/dto"
	"anoa.com/livestockhub/internal/modules/coordinator/repository"
	healthRepo "anoa.com/livestockhub/internal/modules/health/repository"
	healthService "anoa.com/livestockhub/internal/modules/health/service"
	userRepo "anoa.com/livestockhub/internal/modules/user/repository"
	"anoa.com/livestockhub/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func place(t *testing.T, db *gorm.DB, userID uuid.UUID, state, district string) {
	t.Helper()
	require.NoError(t, db.Model(&entity.Profile{}).Where("id = ?", userID).
		Updates(map[string]any{"state": state, "district": district}).Error)
}

func newService(db *gorm.DB) CoordinatorService {
	animals := animalRepo.NewAnimalRepository(db)
	health := healthRepo.NewHealthRepository(db)
	return NewCoordinatorService(
		repository.NewStatsRepository(db),
		userRepo.NewUserRepository(db),
		animals,
		health,
		healthService.NewHealthService(health, animals, nil),
	)
}

func TestOverviewAndRegions(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	a := testutil.CreateUser(t, db, "a@example.com", true, entity.RoleFarmer)
	b := testutil.CreateUser(t, db, "b@example.com", false, entity.RoleFarmer)
	c := testutil.CreateUser(t, db, "c@example.com", true, entity.RoleFarmer)
	testutil.CreateUser(t, db, "vet@example.com", true, entity.RoleVeterinaryOfficer)
	place(t, db, a.ID, "Maharashtra", "Pune")
	place(t, db, b.ID, "Maharashtra", "Nashik")
	place(t, db, c.ID, "Punjab", "Ludhiana")

	sick := testutil.CreateAnimal(t, db, a.ID, "cattle")
	testutil.CreateAnimal(t, db, a.ID, "goat")
	testutil.CreateAnimal(t, db, c.ID, "buffalo")
	require.NoError(t, db.Create(&entity.HealthRecord{
		AnimalID: sick.ID, RecordDate: testutil.Day(sick.CreatedAt, 0), Condition: "mastitis", Status: entity.CaseStatusOpen,
	}).Error)

	svc := newService(db)

	overview, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), overview.UsersByRole[string(entity.RoleFarmer)])
	assert.Equal(t, int64(1), overview.UsersByRole[string(entity.RoleVeterinaryOfficer)])
	assert.Equal(t, int64(1), overview.AnimalsBySpecies["goat"])
	assert.Equal(t, int64(1), overview.CasesByStatus[entity.CaseStatusOpen])
	assert.Equal(t, int64(2), overview.OnboardedFarmers)

	states, err := svc.Regions(ctx, dto.RegionFilter{})
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, dto.RegionRow{State: "Maharashtra", Farmers: 2, Animals: 2, OpenCases: 1}, states[0])
	assert.Equal(t, dto.RegionRow{State: "Punjab", Farmers: 1, Animals: 1}, states[1])

	districts, err := svc.Regions(ctx, dto.RegionFilter{State: "Maharashtra"})
	require.NoError(t, err)
	require.Len(t, districts, 2)
	assert.Equal(t, "Nashik", districts[0].District)
	assert.Equal(t, dto.RegionRow{State: "Maharashtra", District: "Pune", Farmers: 1, Animals: 2, OpenCases: 1}, districts[1])
}
