package service

import (
	"context"
	"errors"
	"time"

	"anoa.com/livestockhub/internal/entity"
	animalRepo "anoa.com/livestockhub/internal/modules/animal/repository"
	animalService "anoa.com/livestockhub/internal/modules/animal/service"
	auditService "anoa.com/livestockhub/internal/modules/audit/service"
	"anoa.com/livestockhub/internal/modules/marketplace/dto"
	"anoa.com/livestockhub/internal/modules/marketplace/repository"
	"anoa.com/livestockhub/pkg/apperror"
	commonDto "anoa.com/livestockhub/pkg/dto"
	"anoa.com/livestockhub/pkg/ratelimiter"
	"anoa.com/livestockhub/pkg/sanitize"
	"anoa.com/livestockhub/pkg/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrListingNotFound  = apperror.NotFound("listing not found")
	ErrReportNotFound   = apperror.NotFound("report not found")
	ErrOwnListing       = apperror.BadRequest("you cannot do that on your own listing")
	ErrListingNotActive = apperror.BadRequest("listing is no longer active")
	ErrAlreadyReviewed  = apperror.Conflict("you have already reviewed this listing")
)

const enquiryAction = "marketplace_enquiry"

type MarketplaceService interface {
	Browse(ctx context.Context, callerID uuid.UUID, filter dto.ListingFilter) (*commonDto.Paginated[entity.MarketplaceListing], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.MarketplaceListing, error)
	Create(ctx context.Context, sellerID uuid.UUID, input dto.ListingInput) (*entity.MarketplaceListing, error)
	Update(ctx context.Context, sellerID, id uuid.UUID, input dto.UpdateListingInput) (*entity.MarketplaceListing, error)
	Delete(ctx context.Context, sellerID, id uuid.UUID) error
	UploadImage(ctx context.Context, sellerID, id uuid.UUID, file commonDto.UploadFile) (*entity.MarketplaceListing, error)

	Enquire(ctx context.Context, buyerID, listingID uuid.UUID, input dto.EnquiryInput) (*entity.MarketplaceEnquiry, error)
	SellerEnquiries(ctx context.Context, sellerID uuid.UUID) ([]entity.MarketplaceEnquiry, error)

	Review(ctx context.Context, reviewerID, listingID uuid.UUID, input dto.ReviewInput) (*entity.MarketplaceReview, error)
	ListReviews(ctx context.Context, listingID uuid.UUID) ([]entity.MarketplaceReview, error)

	Report(ctx context.Context, reporterID, listingID uuid.UUID, input dto.ReportInput) (*entity.ListingReport, error)
	ListReports(ctx context.Context, filter dto.ReportFilter) (*commonDto.Paginated[entity.ListingReport], error)
	SetReportStatus(ctx context.Context, adminID, reportID uuid.UUID, status string) (*entity.ListingReport, error)
}

type Options struct {
	EnquiryRateLimit time.Duration
}

type marketplaceService struct {
	repo         repository.MarketplaceRepository
	animals      animalRepo.AnimalRepository
	index        ListingIndex
	imageStorage storage.ImageStorage
	audit        auditService.AuditService
	redis        *redis.Client
	opts         Options
	log          *zap.Logger
}

// NewMarketplaceService wires the marketplace. index, imageStorage and
// redisClient may be nil.
func NewMarketplaceService(
	repo repository.MarketplaceRepository,
	animals animalRepo.AnimalRepository,
	index ListingIndex,
	imageStorage storage.ImageStorage,
	audit auditService.AuditService,
	redisClient *redis.Client,
	opts Options,
	log *zap.Logger,
) MarketplaceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &marketplaceService{
		repo:         repo,
		animals:      animals,
		index:        index,
		imageStorage: imageStorage,
		audit:        audit,
		redis:        redisClient,
		opts:         opts,
		log:          log,
	}
}

func listingNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrListingNotFound
	}
	return err
}

func (s *marketplaceService) Browse(ctx context.Context, callerID uuid.UUID, filter dto.ListingFilter) (*commonDto.Paginated[entity.MarketplaceListing], error) {
	filter.Normalize()

	if filter.Mine {
		listings, total, err := s.repo.ListListings(ctx, &callerID, filter)
		if err != nil {
			return nil, err
		}
		return &commonDto.Paginated[entity.MarketplaceListing]{Data: listings, Meta: commonDto.NewPaginationMeta(filter.PageQuery, total)}, nil
	}

	if filter.Search != "" && filter.Location == "" && s.index != nil {
		res, err := s.index.Search(ctx, filter)
		if err == nil {
			listings, err := s.repo.FindListingsByIDs(ctx, res.IDs)
			if err != nil {
				return nil, err
			}
			return &commonDto.Paginated[entity.MarketplaceListing]{Data: listings, Meta: commonDto.NewPaginationMeta(filter.PageQuery, res.Total)}, nil
		}
		s.log.Warn("listing search failed, falling back to database", zap.Error(err))
	}

	listings, total, err := s.repo.ListListings(ctx, nil, filter)
	if err != nil {
		return nil, err
	}
	return &commonDto.Paginated[entity.MarketplaceListing]{Data: listings, Meta: commonDto.NewPaginationMeta(filter.PageQuery, total)}, nil
}

func (s *marketplaceService) Get(ctx context.Context, id uuid.UUID) (*entity.MarketplaceListing, error) {
	listing, err := s.repo.FindListing(ctx, id)
	if err != nil {
		return nil, listingNotFound(err)
	}
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	listing.ViewsCount++
	return listing, nil
}

func (s *marketplaceService) Create(ctx context.Context, sellerID uuid.UUID, input dto.ListingInput) (*entity.MarketplaceListing, error) {
	listing := &entity.MarketplaceListing{
		SellerID:      sellerID,
		Title:         sanitize.Text(input.Title),
		Description:   sanitize.Text(input.Description),
		Category:      input.Category,
		Price:         input.Price,
		Location:      sanitize.Text(input.Location),
		ContactNumber: input.ContactNumber,
		Status:        entity.ListingStatusActive,
	}

	if input.AnimalID != nil && *input.AnimalID != "" {
		animalID, err := uuid.Parse(*input.AnimalID)
		if err != nil {
			return nil, apperror.BadRequest("animal_id must be a valid id")
		}
		if _, err := s.animals.FindOwned(ctx, animalID, sellerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, animalService.ErrAnimalNotFound
			}
			return nil, err
		}
		listing.AnimalID = &animalID
	}

	if err := s.repo.CreateListing(ctx, listing); err != nil {
		return nil, err
	}
	s.reindex(listing)
	return listing, nil
}

func (s *marketplaceService) owned(ctx context.Context, sellerID, id uuid.UUID) (*entity.MarketplaceListing, error) {
	listing, err := s.repo.FindListing(ctx, id)
	if err != nil {
		return nil, listingNotFound(err)
	}
	if listing.SellerID != sellerID {
		return nil, ErrListingNotFound
	}
	return listing, nil
}

func (s *marketplaceService) Update(ctx context.Context, sellerID, id uuid.UUID, input dto.UpdateListingInput) (*entity.MarketplaceListing, error) {
	listing, err := s.owned(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		listing.Title = sanitize.Text(*input.Title)
	}
	if input.Description != nil {
		listing.Description = sanitize.Text(*input.Description)
	}
	if input.Category != nil {
		listing.Category = *input.Category
	}
	if input.Price != nil {
		listing.Price = *input.Price
	}
	if input.Location != nil {
		listing.Location = sanitize.Text(*input.Location)
	}
	if input.ContactNumber != nil {
		listing.ContactNumber = *input.ContactNumber
	}
	if input.Status != nil {
		listing.Status = *input.Status
	}

	if err := s.repo.UpdateListing(ctx, listing); err != nil {
		return nil, err
	}
	s.reindex(listing)
	return listing, nil
}

func (s *marketplaceService) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	listing, err := s.owned(ctx, sellerID, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteListing(ctx, id, sellerID); err != nil {
		return listingNotFound(err)
	}

	if s.index != nil {
		if err := s.index.DeleteListing(id); err != nil {
			s.log.Warn("failed to remove listing from index", zap.String("listing_id", id.String()), zap.Error(err))
		}
	}
	if listing.ImageURL != nil && s.imageStorage != nil {
		if err := s.imageStorage.DeleteImage(ctx, *listing.ImageURL); err != nil {
			s.log.Warn("failed to delete listing image", zap.String("listing_id", id.String()), zap.Error(err))
		}
	}
	return nil
}

func (s *marketplaceService) UploadImage(ctx context.Context, sellerID, id uuid.UUID, file commonDto.UploadFile) (*entity.MarketplaceListing, error) {
	if s.imageStorage == nil {
		return nil, storage.ErrNotConfigured
	}
	listing, err := s.owned(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}

	url, err := s.imageStorage.UploadImage(ctx, file.Reader, "listings", file.FileName)
	if err != nil {
		return nil, err
	}
	old := listing.ImageURL
	listing.ImageURL = &url
	if err := s.repo.UpdateListing(ctx, listing); err != nil {
		return nil, err
	}

	if old != nil {
		if err := s.imageStorage.DeleteImage(ctx, *old); err != nil {
			s.log.Warn("failed to delete replaced listing image", zap.String("listing_id", id.String()), zap.Error(err))
		}
	}
	return listing, nil
}

// reindex keeps the search index in step with the row. Sold and inactive
// listings are dropped from it.
func (s *marketplaceService) reindex(listing *entity.MarketplaceListing) {
	if s.index == nil {
		return
	}
	var err error
	if listing.Status == entity.ListingStatusActive {
		err = s.index.IndexListing(listing)
	} else {
		err = s.index.DeleteListing(listing.ID)
	}
	if err != nil {
		s.log.Warn("failed to sync listing index", zap.String("listing_id", listing.ID.String()), zap.Error(err))
	}
}

func (s *marketplaceService) Enquire(ctx context.Context, buyerID, listingID uuid.UUID, input dto.EnquiryInput) (*entity.MarketplaceEnquiry, error) {
	listing, err := s.repo.FindListing(ctx, listingID)
	if err != nil {
		return nil, listingNotFound(err)
	}
	if listing.SellerID == buyerID {
		return nil, ErrOwnListing
	}
	if listing.Status != entity.ListingStatusActive {
		return nil, ErrListingNotActive
	}

	if err := ratelimiter.Enforce(ctx, s.redis, buyerID, enquiryAction, s.opts.EnquiryRateLimit); err != nil {
		return nil, err
	}

	enquiry := &entity.MarketplaceEnquiry{
		ListingID: listingID,
		BuyerID:   buyerID,
		Message:   sanitize.Text(input.Message),
	}
	if err := s.repo.CreateEnquiry(ctx, enquiry); err != nil {
		return nil, err
	}
	return enquiry, nil
}

func (s *marketplaceService) SellerEnquiries(ctx context.Context, sellerID uuid.UUID) ([]entity.MarketplaceEnquiry, error) {
	return s.repo.ListEnquiriesForSeller(ctx, sellerID)
}

func (s *marketplaceService) Review(ctx context.Context, reviewerID, listingID uuid.UUID, input dto.ReviewInput) (*entity.MarketplaceReview, error) {
	listing, err := s.repo.FindListing(ctx, listingID)
	if err != nil {
		return nil, listingNotFound(err)
	}
	if listing.SellerID == reviewerID {
		return nil, ErrOwnListing
	}

	exists, err := s.repo.ReviewExists(ctx, listingID, reviewerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := &entity.MarketplaceReview{
		ListingID:  listingID,
		ReviewerID: reviewerID,
		Rating:     input.Rating,
		Comment:    sanitize.Optional(input.Comment),
	}
	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *marketplaceService) ListReviews(ctx context.Context, listingID uuid.UUID) ([]entity.MarketplaceReview, error) {
	return s.repo.ListReviews(ctx, listingID)
}

func (s *marketplaceService) Report(ctx context.Context, reporterID, listingID uuid.UUID, input dto.ReportInput) (*entity.ListingReport, error) {
	if _, err := s.repo.FindListing(ctx, listingID); err != nil {
		return nil, listingNotFound(err)
	}

	report := &entity.ListingReport{
		ListingID:  listingID,
		ReporterID: reporterID,
		Reason:     sanitize.Text(input.Reason),
		Status:     entity.ReportStatusPending,
	}
	if err := s.repo.CreateReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *marketplaceService) ListReports(ctx context.Context, filter dto.ReportFilter) (*commonDto.Paginated[entity.ListingReport], error) {
	filter.Normalize()
	reports, total, err := s.repo.ListReports(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &commonDto.Paginated[entity.ListingReport]{Data: reports, Meta: commonDto.NewPaginationMeta(filter.PageQuery, total)}, nil
}

// SetReportStatus accepts any valid status regardless of the current one.
func (s *marketplaceService) SetReportStatus(ctx context.Context, adminID, reportID uuid.UUID, status string) (*entity.ListingReport, error) {
	report, err := s.repo.FindReport(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	previous := report.Status
	if err := s.repo.UpdateReportStatus(ctx, reportID, status); err != nil {
		return nil, err
	}
	report.Status = status

	if s.audit != nil {
		if err := s.audit.Record(ctx, adminID, entity.AuditReportStatus, &reportID, map[string]any{
			"from":       previous,
			"to":         status,
			"listing_id": report.ListingID.String(),
		}); err != nil {
			s.log.Error("failed to audit report status change", zap.String("report_id", reportID.String()), zap.Error(err))
		}
	}
	return report, nil
}
