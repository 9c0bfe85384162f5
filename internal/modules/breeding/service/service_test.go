package service

import (
	"context"
	"testing"
	"time"

	"anoa.com/livestockhub/internal/entity"
	animalRepo "anoa.com/livestockhub/internal/modules/animal/repository"
	"anoa.com/livestockhub/internal/modules/breeding/dto"
	"anoa.com/livestockhub/internal/modules/breeding/repository"
	"anoa.com/livestockhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedDelivery(t *testing.T) {
	bred := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	got, ok := ExpectedDelivery("cattle", bred)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC), got)

	_, ok = ExpectedDelivery("poultry", bred)
	assert.False(t, ok)
}

func TestAdd_EstimatesDeliveryAndListsUpcoming(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "owner@example.com", true, entity.RoleFarmer)
	goat := testutil.CreateAnimal(t, db, owner.ID, "goat")

	svc := NewBreedingService(repository.NewBreedingRepository(db), animalRepo.NewAnimalRepository(db)).(*breedingService)
	svc.now = func() time.Time { return time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC) }

	record, err := svc.Add(ctx, owner.ID, goat.ID, dto.BreedingInput{BreedingDate: "2026-01-01", Method: "natural"})
	require.NoError(t, err)
	require.NotNil(t, record.ExpectedDeliveryDate)
	assert.Equal(t, "2026-05-31", record.ExpectedDeliveryDate.Format("2006-01-02"))

	upcoming, err := svc.Upcoming(ctx, owner.ID, 30)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)

	_, err = svc.RecordOutcome(ctx, owner.ID, record.ID, dto.OutcomeInput{Outcome: "twins"})
	require.NoError(t, err)

	upcoming, err = svc.Upcoming(ctx, owner.ID, 30)
	require.NoError(t, err)
	assert.Empty(t, upcoming)
}

func TestAdd_RejectsMaleAnimal(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", true, entity.RoleFarmer)
	bull := &entity.Animal{OwnerID: owner.ID, Species: "cattle", Gender: "male", HealthStatus: entity.HealthStatusHealthy}
	require.NoError(t, db.Create(bull).Error)

	svc := NewBreedingService(repository.NewBreedingRepository(db), animalRepo.NewAnimalRepository(db))
	_, err := svc.Add(context.Background(), owner.ID, bull.ID, dto.BreedingInput{BreedingDate: "2026-01-01", Method: "natural"})
	assert.Error(t, err)
}
