package repository

import (
	"context"
	"strings"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/content/dto"
	"anoa.com/livestockhub/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentRepository interface {
	CreateItem(ctx context.Context, item *entity.ContentItem) error
	UpdateItem(ctx context.Context, item *entity.ContentItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	FindItem(ctx context.Context, id uuid.UUID) (*entity.ContentItem, error)
	ListItems(ctx context.Context, filter dto.ContentFilter) ([]entity.ContentItem, int64, error)

	CreateScheme(ctx context.Context, scheme *entity.Scheme) error
	UpdateScheme(ctx context.Context, scheme *entity.Scheme) error
	DeleteScheme(ctx context.Context, id uuid.UUID) error
	FindScheme(ctx context.Context, id uuid.UUID) (*entity.Scheme, error)
	ListSchemes(ctx context.Context, filter dto.SchemeFilter) ([]entity.Scheme, int64, error)
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func deleteByID(db *gorm.DB, model any, id uuid.UUID) error {
	res := db.Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contentRepository) CreateItem(ctx context.Context, item *entity.ContentItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *contentRepository) UpdateItem(ctx context.Context, item *entity.ContentItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *contentRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &entity.ContentItem{}, id)
}

func (r *contentRepository) FindItem(ctx context.Context, id uuid.UUID) (*entity.ContentItem, error) {
	var item entity.ContentItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) ListItems(ctx context.Context, filter dto.ContentFilter) ([]entity.ContentItem, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.ContentItem{})
	if !filter.IncludeDrafts {
		q = q.Where("published = ?", true)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Language != "" {
		q = q.Where("language = ?", filter.Language)
	}
	if filter.Search != "" {
		like := database.ContainsPattern(filter.Search)
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(body) LIKE ? ESCAPE '\'`, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entity.ContentItem
	err := q.Order("created_at DESC").Offset(filter.Offset()).Limit(filter.Limit).Find(&items).Error
	return items, total, err
}

func (r *contentRepository) CreateScheme(ctx context.Context, scheme *entity.Scheme) error {
	return r.db.WithContext(ctx).Create(scheme).Error
}

func (r *contentRepository) UpdateScheme(ctx context.Context, scheme *entity.Scheme) error {
	return r.db.WithContext(ctx).Save(scheme).Error
}

func (r *contentRepository) DeleteScheme(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &entity.Scheme{}, id)
}

func (r *contentRepository) FindScheme(ctx context.Context, id uuid.UUID) (*entity.Scheme, error) {
	var scheme entity.Scheme
	if err := r.db.WithContext(ctx).First(&scheme, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &scheme, nil
}

// ListSchemes matches the given state and schemes that apply nationwide.
func (r *contentRepository) ListSchemes(ctx context.Context, filter dto.SchemeFilter) ([]entity.Scheme, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.Scheme{})
	if !filter.IncludeInactive {
		q = q.Where("active = ?", true)
	}
	if filter.State != "" {
		q = q.Where("state IS NULL OR LOWER(state) = ?", strings.ToLower(filter.State))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var schemes []entity.Scheme
	err := q.Order("created_at DESC").Offset(filter.Offset()).Limit(filter.Limit).Find(&schemes).Error
	return schemes, total, err
}
