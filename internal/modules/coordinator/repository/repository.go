package repository

import (
	"context"

	"anoa.com/livestockhub/internal/entity"
	"gorm.io/gorm"
)

// RegionCount is one grouped count keyed by state and district.
type RegionCount struct {
	State    string
	District string
	Count    int64
}

type StatsRepository interface {
	FarmersByRegion(ctx context.Context, state string) ([]RegionCount, error)
	AnimalsByRegion(ctx context.Context, state string) ([]RegionCount, error)
	OpenCasesByRegion(ctx context.Context, state string) ([]RegionCount, error)
	CountActiveListings(ctx context.Context) (int64, error)
	CountOpenTickets(ctx context.Context) (int64, error)
	CountOnboardedFarmers(ctx context.Context) (int64, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

const unknownRegion = "Unknown"

// grouped groups q by profile state, or by state and district when state is
// set. q must already join profiles.
func grouped(q *gorm.DB, state string) ([]RegionCount, error) {
	stateCol := "COALESCE(NULLIF(profiles.state, ''), '" + unknownRegion + "')"
	districtCol := "COALESCE(NULLIF(profiles.district, ''), '" + unknownRegion + "')"

	var rows []RegionCount
	if state != "" {
		err := q.Where("profiles.state = ?", state).
			Select(stateCol + " AS state, " + districtCol + " AS district, COUNT(*) AS count").
			Group(stateCol + ", " + districtCol).
			Scan(&rows).Error
		return rows, err
	}
	err := q.Select(stateCol + " AS state, COUNT(*) AS count").
		Group(stateCol).
		Scan(&rows).Error
	return rows, err
}

func (r *statsRepository) FarmersByRegion(ctx context.Context, state string) ([]RegionCount, error) {
	q := r.db.WithContext(ctx).Table("profiles").
		Where("profiles.id IN (?)", r.db.Model(&entity.UserRole{}).Select("user_id").Where("role = ?", entity.RoleFarmer))
	return grouped(q, state)
}

func (r *statsRepository) AnimalsByRegion(ctx context.Context, state string) ([]RegionCount, error) {
	q := r.db.WithContext(ctx).Table("animals").
		Joins("JOIN profiles ON profiles.id = animals.owner_id")
	return grouped(q, state)
}

func (r *statsRepository) OpenCasesByRegion(ctx context.Context, state string) ([]RegionCount, error) {
	q := r.db.WithContext(ctx).Table("health_records").
		Joins("JOIN animals ON animals.id = health_records.animal_id").
		Joins("JOIN profiles ON profiles.id = animals.owner_id").
		Where("health_records.status IN ?", []string{entity.CaseStatusOpen, entity.CaseStatusUnderTreatment})
	return grouped(q, state)
}

func (r *statsRepository) CountActiveListings(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.MarketplaceListing{}).
		Where("status = ?", entity.ListingStatusActive).
		Count(&count).Error
	return count, err
}

func (r *statsRepository) CountOpenTickets(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.HelpdeskTicket{}).
		Where("status IN ?", []string{entity.TicketStatusOpen, entity.TicketStatusInProgress}).
		Count(&count).Error
	return count, err
}

func (r *statsRepository) CountOnboardedFarmers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Profile{}).
		Where("onboarding_completed = ?", true).
		Where("id IN (?)", r.db.Model(&entity.UserRole{}).Select("user_id").Where("role = ?", entity.RoleFarmer)).
		Count(&count).Error
	return count, err
}
