package service

import (
	"context"
	"testing"
	"time"

	"anoa.com/livestockhub/internal/entity"
	animalRepo "anoa.com/livestockhub/internal/modules/animal/repository"
	animalService "anoa.com/livestockhub/internal/modules/animal/service"
	"anoa.com/livestockhub/internal/modules/health/dto"
	"anoa.com/livestockhub/internal/modules/health/repository"
	"anoa.com/livestockhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAddRecord_OwnershipAndStatusSync(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "owner@example.com", true, entity.RoleFarmer)
	other := testutil.CreateUser(t, db, "other@example.com", true, entity.RoleFarmer)
	animal := testutil.CreateAnimal(t, db, owner.ID, "cattle")

	animals := animalRepo.NewAnimalRepository(db)
	svc := NewHealthService(repository.NewHealthRepository(db), animals, nil)

	_, err := svc.AddRecord(ctx, other.ID, animal.ID, dto.HealthRecordInput{RecordDate: "2026-01-02", Condition: "fever"})
	assert.ErrorIs(t, err, animalService.ErrAnimalNotFound)

	record, err := svc.AddRecord(ctx, owner.ID, animal.ID, dto.HealthRecordInput{RecordDate: "2026-01-02", Condition: "fever"})
	require.NoError(t, err)
	assert.Equal(t, entity.CaseStatusOpen, record.Status)

	reloaded, err := animals.FindByID(ctx, animal.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.HealthStatusSick, reloaded.HealthStatus)

	updated, err := svc.UpdateCaseStatus(ctx, record.ID, dto.CaseStatusInput{Status: entity.CaseStatusRecovered, Treatment: strPtr("antibiotics")})
	require.NoError(t, err)
	assert.Equal(t, "antibiotics", *updated.Treatment)

	reloaded, err = animals.FindByID(ctx, animal.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.HealthStatusRecovering, reloaded.HealthStatus)

	records, err := svc.ListRecords(ctx, owner.ID, animal.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestListCases_OnlyActive(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "owner@example.com", true, entity.RoleFarmer)
	vet := testutil.CreateUser(t, db, "vet@example.com", true, entity.RoleVeterinaryOfficer)
	animal := testutil.CreateAnimal(t, db, owner.ID, "goat")
	svc := NewHealthService(repository.NewHealthRepository(db), animalRepo.NewAnimalRepository(db), nil)

	_, err := svc.RecordForAnimal(ctx, vet.ID, animal.ID, dto.HealthRecordInput{RecordDate: "2026-03-01", Condition: "bloat"})
	require.NoError(t, err)
	_, err = svc.RecordForAnimal(ctx, vet.ID, animal.ID, dto.HealthRecordInput{RecordDate: "2026-03-02", Condition: "limp", Status: entity.CaseStatusRecovered})
	require.NoError(t, err)

	page, err := svc.ListCases(ctx, dto.CaseFilter{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "bloat", page.Data[0].Condition)
	require.NotNil(t, page.Data[0].Animal)
	assert.Equal(t, "goat", page.Data[0].Animal.Species)
}

func TestDueVaccinations_Window(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "owner@example.com", true, entity.RoleFarmer)
	animal := testutil.CreateAnimal(t, db, owner.ID, "cattle")

	fixed := time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)
	svc := NewHealthService(repository.NewHealthRepository(db), animalRepo.NewAnimalRepository(db), nil).(*healthService)
	svc.now = func() time.Time { return fixed }

	for _, v := range []struct{ name, given, next string }{
		{"FMD", "2026-01-01", "2026-06-01"},
		{"HS", "2026-01-01", "2026-06-20"},
		{"BQ", "2026-01-01", "2026-09-01"},
	} {
		_, err := svc.AddVaccination(ctx, owner.ID, animal.ID, dto.VaccinationInput{VaccineName: v.name, DateGiven: v.given, NextDueDate: strPtr(v.next)})
		require.NoError(t, err)
	}

	due, err := svc.DueVaccinations(ctx, &owner.ID, dto.DueFilter{WindowDays: 30})
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "FMD", due[0].VaccineName)
	assert.True(t, due[0].Overdue)
	assert.Equal(t, "HS", due[1].VaccineName)
	assert.False(t, due[1].Overdue)

	_, err = svc.AddVaccination(ctx, owner.ID, animal.ID, dto.VaccinationInput{VaccineName: "Bad", DateGiven: "2026-02-01", NextDueDate: strPtr("2026-01-01")})
	assert.Error(t, err)
}
