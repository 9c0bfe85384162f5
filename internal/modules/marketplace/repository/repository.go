package repository

import (
	"context"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/marketplace/dto"
	"anoa.com/livestockhub/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MarketplaceRepository interface {
	CreateListing(ctx context.Context, listing *entity.MarketplaceListing) error
	UpdateListing(ctx context.Context, listing *entity.MarketplaceListing) error
	DeleteListing(ctx context.Context, id, sellerID uuid.UUID) error
	FindListing(ctx context.Context, id uuid.UUID) (*entity.MarketplaceListing, error)
	FindListingsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.MarketplaceListing, error)
	ListListings(ctx context.Context, sellerID *uuid.UUID, filter dto.ListingFilter) ([]entity.MarketplaceListing, int64, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error

	CreateEnquiry(ctx context.Context, enquiry *entity.MarketplaceEnquiry) error
	ListEnquiriesForSeller(ctx context.Context, sellerID uuid.UUID) ([]entity.MarketplaceEnquiry, error)

	// CreateReview inserts the review and recomputes the listing's rating
	// aggregates in one transaction.
	CreateReview(ctx context.Context, review *entity.MarketplaceReview) error
	ReviewExists(ctx context.Context, listingID, reviewerID uuid.UUID) (bool, error)
	ListReviews(ctx context.Context, listingID uuid.UUID) ([]entity.MarketplaceReview, error)

	CreateReport(ctx context.Context, report *entity.ListingReport) error
	FindReport(ctx context.Context, id uuid.UUID) (*entity.ListingReport, error)
	UpdateReportStatus(ctx context.Context, id uuid.UUID, status string) error
	ListReports(ctx context.Context, filter dto.ReportFilter) ([]entity.ListingReport, int64, error)
}

type marketplaceRepository struct {
	db *gorm.DB
}

func NewMarketplaceRepository(db *gorm.DB) MarketplaceRepository {
	return &marketplaceRepository{db: db}
}

func (r *marketplaceRepository) CreateListing(ctx context.Context, listing *entity.MarketplaceListing) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(listing).Error
}

func (r *marketplaceRepository) UpdateListing(ctx context.Context, listing *entity.MarketplaceListing) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(listing).Error
}

func (r *marketplaceRepository) DeleteListing(ctx context.Context, id, sellerID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND seller_id = ?", id, sellerID).Delete(&entity.MarketplaceListing{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *marketplaceRepository) FindListing(ctx context.Context, id uuid.UUID) (*entity.MarketplaceListing, error) {
	var listing entity.MarketplaceListing
	if err := r.db.WithContext(ctx).Preload("Seller").First(&listing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// FindListingsByIDs keeps the order of ids and skips ids that no longer exist.
func (r *marketplaceRepository) FindListingsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.MarketplaceListing, error) {
	if len(ids) == 0 {
		return []entity.MarketplaceListing{}, nil
	}
	var rows []entity.MarketplaceListing
	if err := r.db.WithContext(ctx).Preload("Seller").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]entity.MarketplaceListing, len(rows))
	for _, l := range rows {
		byID[l.ID] = l
	}
	ordered := make([]entity.MarketplaceListing, 0, len(rows))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			ordered = append(ordered, l)
		}
	}
	return ordered, nil
}

func (r *marketplaceRepository) ListListings(ctx context.Context, sellerID *uuid.UUID, filter dto.ListingFilter) ([]entity.MarketplaceListing, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.MarketplaceListing{})
	if sellerID != nil {
		q = q.Where("seller_id = ?", *sellerID)
	} else {
		q = q.Where("status = ?", entity.ListingStatusActive)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Location != "" {
		q = q.Where(`LOWER(location) LIKE ? ESCAPE '\'`, database.ContainsPattern(filter.Location))
	}
	if filter.MinPrice > 0 {
		q = q.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("price <= ?", filter.MaxPrice)
	}
	if filter.Search != "" {
		like := database.ContainsPattern(filter.Search)
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []entity.MarketplaceListing
	err := q.Preload("Seller").Order("created_at DESC").Offset(filter.Offset()).Limit(filter.Limit).Find(&listings).Error
	return listings, total, err
}

func (r *marketplaceRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.MarketplaceListing{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
}

func (r *marketplaceRepository) CreateEnquiry(ctx context.Context, enquiry *entity.MarketplaceEnquiry) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(enquiry).Error
}

func (r *marketplaceRepository) ListEnquiriesForSeller(ctx context.Context, sellerID uuid.UUID) ([]entity.MarketplaceEnquiry, error) {
	var enquiries []entity.MarketplaceEnquiry
	err := r.db.WithContext(ctx).
		Joins("Listing").
		Where("\"Listing\".\"seller_id\" = ?", sellerID).
		Order("marketplace_enquiries.created_at DESC").
		Find(&enquiries).Error
	return enquiries, err
}

func (r *marketplaceRepository) CreateReview(ctx context.Context, review *entity.MarketplaceReview) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(review).Error; err != nil {
			return err
		}

		var agg struct {
			Avg   float64
			Count int
		}
		if err := tx.Model(&entity.MarketplaceReview{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("listing_id = ?", review.ListingID).
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.Model(&entity.MarketplaceListing{}).
			Where("id = ?", review.ListingID).
			UpdateColumns(map[string]any{"rating_avg": agg.Avg, "rating_count": agg.Count}).Error
	})
}

func (r *marketplaceRepository) ReviewExists(ctx context.Context, listingID, reviewerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.MarketplaceReview{}).
		Where("listing_id = ? AND reviewer_id = ?", listingID, reviewerID).
		Count(&count).Error
	return count > 0, err
}

func (r *marketplaceRepository) ListReviews(ctx context.Context, listingID uuid.UUID) ([]entity.MarketplaceReview, error) {
	var reviews []entity.MarketplaceReview
	err := r.db.WithContext(ctx).Where("listing_id = ?", listingID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *marketplaceRepository) CreateReport(ctx context.Context, report *entity.ListingReport) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(report).Error
}

func (r *marketplaceRepository) FindReport(ctx context.Context, id uuid.UUID) (*entity.ListingReport, error) {
	var report entity.ListingReport
	if err := r.db.WithContext(ctx).Preload("Listing").First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *marketplaceRepository) UpdateReportStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).Model(&entity.ListingReport{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *marketplaceRepository) ListReports(ctx context.Context, filter dto.ReportFilter) ([]entity.ListingReport, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.ListingReport{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []entity.ListingReport
	err := q.Preload("Listing").Order("created_at DESC").Offset(filter.Offset()).Limit(filter.Limit).Find(&reports).Error
	return reports, total, err
}
