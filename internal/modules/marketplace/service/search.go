package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/marketplace/dto"
	"anoa.com/livestockhub/pkg/sanitize"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

const listingsIndex = "listings"

// ListingIndex is the full-text index over active listings.
type ListingIndex interface {
	IndexListing(listing *entity.MarketplaceListing) error
	DeleteListing(id uuid.UUID) error
	Search(ctx context.Context, filter dto.ListingFilter) (*dto.SearchResult, error)
}

type meiliListingIndex struct {
	client meilisearch.ServiceManager
	log    *zap.Logger
}

// NewMeiliListingIndex configures the listings index and returns an index
// backed by it. Settings failures are logged, search still works without them.
func NewMeiliListingIndex(client meilisearch.ServiceManager, log *zap.Logger) ListingIndex {
	if log == nil {
		log = zap.NewNop()
	}
	idx := &meiliListingIndex{client: client, log: log}
	idx.initIndex()
	return idx
}

func (m *meiliListingIndex) initIndex() {
	filterable := []any{"category", "status", "price"}
	if _, err := m.client.Index(listingsIndex).UpdateFilterableAttributes(&filterable); err != nil {
		m.log.Warn("failed to update listings filterable attributes", zap.Error(err))
	}

	sortable := []string{"created_at", "price"}
	if _, err := m.client.Index(listingsIndex).UpdateSortableAttributes(&sortable); err != nil {
		m.log.Warn("failed to update listings sortable attributes", zap.Error(err))
	}
}

type listingDoc struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
	CreatedAt   int64   `json:"created_at"`
}

func (m *meiliListingIndex) IndexListing(listing *entity.MarketplaceListing) error {
	doc := listingDoc{
		ID:          listing.ID.String(),
		Title:       listing.Title,
		Description: sanitize.Text(listing.Description),
		Category:    listing.Category,
		Location:    listing.Location,
		Price:       listing.Price,
		Status:      listing.Status,
		CreatedAt:   listing.CreatedAt.Unix(),
	}

	task, err := m.client.Index(listingsIndex).AddDocuments([]listingDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	m.log.Debug("indexed listing", zap.String("listing_id", doc.ID), zap.Int64("task_uid", task.TaskUID))
	return nil
}

func (m *meiliListingIndex) DeleteListing(id uuid.UUID) error {
	_, err := m.client.Index(listingsIndex).DeleteDocument(id.String())
	return err
}

type searchHits struct {
	Hits []struct {
		ID string `json:"id"`
	} `json:"hits"`
	EstimatedTotalHits int64 `json:"estimatedTotalHits"`
}

func (m *meiliListingIndex) Search(ctx context.Context, filter dto.ListingFilter) (*dto.SearchResult, error) {
	req := &meilisearch.SearchRequest{
		Filter: searchFilter(filter),
		Limit:  int64(filter.Limit),
		Offset: int64(filter.Offset()),
	}

	raw, err := m.client.Index(listingsIndex).SearchRaw(filter.Search, req)
	if err != nil {
		return nil, err
	}

	var res searchHits
	if err := json.Unmarshal(*raw, &res); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := &dto.SearchResult{IDs: make([]uuid.UUID, 0, len(res.Hits)), Total: res.EstimatedTotalHits}
	for _, h := range res.Hits {
		id, err := uuid.Parse(h.ID)
		if err != nil {
			continue
		}
		out.IDs = append(out.IDs, id)
	}
	return out, nil
}

func searchFilter(filter dto.ListingFilter) string {
	parts := []string{fmt.Sprintf("status = %q", entity.ListingStatusActive)}
	if filter.Category != "" {
		parts = append(parts, fmt.Sprintf("category = %q", filter.Category))
	}
	if filter.MinPrice > 0 {
		parts = append(parts, fmt.Sprintf("price >= %v", filter.MinPrice))
	}
	if filter.MaxPrice > 0 {
		parts = append(parts, fmt.Sprintf("price <= %v", filter.MaxPrice))
	}
	return strings.Join(parts, " AND ")
}

func strPtr(s string) *string {
	return &s
}
