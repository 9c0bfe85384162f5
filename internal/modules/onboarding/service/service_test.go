package service

import (
	"context"
	"testing"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/onboarding/dto"
	profileRepo "anoa.com/livestockhub/internal/modules/profile/repository"
	"anoa.com/livestockhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboarding_StepsInOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "kiran@example.com", false, entity.RoleFarmer)
	repo := profileRepo.NewProfileRepository(db)
	svc := NewOnboardingService(repo, nil)
	ctx := context.Background()

	progress, err := svc.Progress(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.NextStep)
	assert.False(t, progress.Completed)

	_, err = svc.SubmitFarm(ctx, user.ID, dto.FarmStepInput{FarmSize: 2, PrimarySpecies: "cattle"})
	assert.Error(t, err, "step 3 before step 1")

	_, err = svc.SubmitPersonal(ctx, user.ID, dto.PersonalStepInput{FullName: "Kiran", Phone: "9876543210", PreferredLanguage: "hi"})
	require.NoError(t, err)
	progress, err = svc.SubmitLocation(ctx, user.ID, dto.LocationStepInput{State: "Maharashtra", District: "Pune"})
	require.NoError(t, err)
	assert.Equal(t, 3, progress.NextStep)

	done, err := repo.OnboardingCompleted(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, done)

	progress, err = svc.SubmitFarm(ctx, user.ID, dto.FarmStepInput{FarmSize: 2.5, PrimarySpecies: "cattle"})
	require.NoError(t, err)
	assert.True(t, progress.Completed)
	assert.Zero(t, progress.NextStep)

	done, err = repo.OnboardingCompleted(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, done)

	p, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pune", *p.District)
	assert.Equal(t, "hi", p.PreferredLanguage)
}
