package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/livestockhub/internal/entity"
	animalRepo "anoa.com/livestockhub/internal/modules/animal/repository"
	auditRepo "anoa.com/livestockhub/internal/modules/audit/repository"
	auditService "anoa.com/livestockhub/internal/modules/audit/service"
	"anoa.com/livestockhub/internal/modules/marketplace/dto"
	"anoa.com/livestockhub/internal/modules/marketplace/repository"
	"anoa.com/livestockhub/internal/testutil"
	"anoa.com/livestockhub/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeIndex struct {
	indexed map[uuid.UUID]bool
	hits    []uuid.UUID
	err     error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{indexed: map[uuid.UUID]bool{}}
}

func (f *fakeIndex) IndexListing(l *entity.MarketplaceListing) error {
	f.indexed[l.ID] = true
	return nil
}

func (f *fakeIndex) DeleteListing(id uuid.UUID) error {
	delete(f.indexed, id)
	return nil
}

func (f *fakeIndex) Search(ctx context.Context, filter dto.ListingFilter) (*dto.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SearchResult{IDs: f.hits, Total: int64(len(f.hits))}, nil
}

type fixture struct {
	db     *gorm.DB
	svc    MarketplaceService
	index  *fakeIndex
	seller *entity.User
	buyer  *entity.User
}

func newFixture(t *testing.T, rdb *redis.Client, opts Options) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	index := newFakeIndex()
	audit := auditService.NewAuditService(auditRepo.NewAuditRepository(db), nil, nil)
	svc := NewMarketplaceService(repository.NewMarketplaceRepository(db), animalRepo.NewAnimalRepository(db), index, nil, audit, rdb, opts, nil)
	return &fixture{
		db:     db,
		svc:    svc,
		index:  index,
		seller: testutil.CreateUser(t, db, "seller@example.com", true, entity.RoleFarmer),
		buyer:  testutil.CreateUser(t, db, "buyer@example.com", true, entity.RoleFarmer),
	}
}

func (f *fixture) listing(t *testing.T, title string) *entity.MarketplaceListing {
	t.Helper()
	l, err := f.svc.Create(context.Background(), f.seller.ID, dto.ListingInput{
		Title:         title,
		Category:      "goat",
		Price:         12000,
		Location:      "Nashik",
		ContactNumber: "9876543210",
	})
	require.NoError(t, err)
	return l
}

func TestGet_IncrementsViews(t *testing.T) {
	f := newFixture(t, nil, Options{})
	ctx := context.Background()
	l := f.listing(t, "Sirohi goat pair")

	first, err := f.svc.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ViewsCount)

	second, err := f.svc.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, second.ViewsCount)
}

func TestReview_RecomputesAggregates(t *testing.T) {
	f := newFixture(t, nil, Options{})
	ctx := context.Background()
	l := f.listing(t, "Sirohi goat pair")
	other := testutil.CreateUser(t, f.db, "other@example.com", true, entity.RoleFarmer)

	_, err := f.svc.Review(ctx, f.buyer.ID, l.ID, dto.ReviewInput{Rating: 5})
	require.NoError(t, err)
	_, err = f.svc.Review(ctx, other.ID, l.ID, dto.ReviewInput{Rating: 2})
	require.NoError(t, err)

	var stored entity.MarketplaceListing
	require.NoError(t, f.db.First(&stored, "id = ?", l.ID).Error)
	assert.Equal(t, 2, stored.RatingCount)
	assert.InDelta(t, 3.5, stored.RatingAvg, 0.001)

	_, err = f.svc.Review(ctx, f.buyer.ID, l.ID, dto.ReviewInput{Rating: 1})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	_, err = f.svc.Review(ctx, f.seller.ID, l.ID, dto.ReviewInput{Rating: 5})
	assert.ErrorIs(t, err, ErrOwnListing)
}

func TestDelete_RemovesFromListAndIndex(t *testing.T) {
	f := newFixture(t, nil, Options{})
	ctx := context.Background()
	l := f.listing(t, "Sirohi goat pair")
	require.True(t, f.index.indexed[l.ID])

	assert.ErrorIs(t, f.svc.Delete(ctx, f.buyer.ID, l.ID), ErrListingNotFound)
	require.NoError(t, f.svc.Delete(ctx, f.seller.ID, l.ID))

	page, err := f.svc.Browse(ctx, f.buyer.ID, dto.ListingFilter{})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.False(t, f.index.indexed[l.ID])
}

func TestBrowse_SearchUsesIndexThenFallsBack(t *testing.T) {
	f := newFixture(t, nil, Options{})
	ctx := context.Background()
	a := f.listing(t, "Sirohi goat pair")
	b := f.listing(t, "Osmanabadi doe")

	f.index.hits = []uuid.UUID{b.ID, a.ID}
	page, err := f.svc.Browse(ctx, f.buyer.ID, dto.ListingFilter{Search: "goat"})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, b.ID, page.Data[0].ID)

	f.index.err = errors.New("index unavailable")
	page, err = f.svc.Browse(ctx, f.buyer.ID, dto.ListingFilter{Search: "sirohi"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, a.ID, page.Data[0].ID)
}

func TestBrowse_DatabaseSearchTreatsWildcardsLiterally(t *testing.T) {
	f := newFixture(t, nil, Options{})
	ctx := context.Background()
	f.index.err = errors.New("index unavailable")
	f.listing(t, "Sirohi goat pair")
	discounted := f.listing(t, "Cattle feed 20% off")

	page, err := f.svc.Browse(ctx, f.buyer.ID, dto.ListingFilter{Search: "%"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, discounted.ID, page.Data[0].ID)

	page, err = f.svc.Browse(ctx, f.buyer.ID, dto.ListingFilter{Search: "g_at"})
	require.NoError(t, err)
	assert.Empty(t, page.Data)

	page, err = f.svc.Browse(ctx, f.buyer.ID, dto.ListingFilter{Location: "_"})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
}

func TestSoldListingLeavesIndexAndBrowse(t *testing.T) {
	f := newFixture(t, nil, Options{})
	ctx := context.Background()
	l := f.listing(t, "Sirohi goat pair")

	sold := entity.ListingStatusSold
	_, err := f.svc.Update(ctx, f.seller.ID, l.ID, dto.UpdateListingInput{Status: &sold})
	require.NoError(t, err)
	assert.False(t, f.index.indexed[l.ID])

	page, err := f.svc.Browse(ctx, f.buyer.ID, dto.ListingFilter{})
	require.NoError(t, err)
	assert.Empty(t, page.Data)

	mine, err := f.svc.Browse(ctx, f.seller.ID, dto.ListingFilter{Mine: true})
	require.NoError(t, err)
	assert.Len(t, mine.Data, 1)

	_, err = f.svc.Enquire(ctx, f.buyer.ID, l.ID, dto.EnquiryInput{Message: "Still available?"})
	assert.ErrorIs(t, err, ErrListingNotActive)
}

func TestEnquire_RateLimitedAndVisibleToSeller(t *testing.T) {
	rdb, _ := testutil.NewTestRedis(t)
	f := newFixture(t, rdb, Options{EnquiryRateLimit: time.Minute})
	ctx := context.Background()
	l := f.listing(t, "Sirohi goat pair")

	_, err := f.svc.Enquire(ctx, f.buyer.ID, l.ID, dto.EnquiryInput{Message: "Is the price negotiable?"})
	require.NoError(t, err)

	_, err = f.svc.Enquire(ctx, f.buyer.ID, l.ID, dto.EnquiryInput{Message: "Hello again"})
	assert.ErrorIs(t, err, apperror.ErrRateLimitExceeded)

	enquiries, err := f.svc.SellerEnquiries(ctx, f.seller.ID)
	require.NoError(t, err)
	require.Len(t, enquiries, 1)
	assert.Equal(t, f.buyer.ID, enquiries[0].BuyerID)
}

func TestSetReportStatus_AnyTransitionIsAudited(t *testing.T) {
	f := newFixture(t, nil, Options{})
	ctx := context.Background()
	l := f.listing(t, "Sirohi goat pair")
	admin := testutil.CreateUser(t, f.db, "admin@example.com", true, entity.RoleAdmin)

	report, err := f.svc.Report(ctx, f.buyer.ID, l.ID, dto.ReportInput{Reason: "Photos are of a different animal"})
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusPending, report.Status)

	updated, err := f.svc.SetReportStatus(ctx, admin.ID, report.ID, entity.ReportStatusDismissed)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusDismissed, updated.Status)

	var logs []entity.AuditLog
	require.NoError(t, f.db.Where("action = ?", entity.AuditReportStatus).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, admin.ID, logs[0].ActorID)

	_, err = f.svc.SetReportStatus(ctx, admin.ID, uuid.New(), entity.ReportStatusResolved)
	assert.ErrorIs(t, err, ErrReportNotFound)
}
