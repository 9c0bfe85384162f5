package service

import (
	"context"
	"errors"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/content/dto"
	"anoa.com/livestockhub/internal/modules/content/repository"
	"anoa.com/livestockhub/pkg/apperror"
	commonDto "anoa.com/livestockhub/pkg/dto"
	"anoa.com/livestockhub/pkg/sanitize"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrContentNotFound = apperror.NotFound("content not found")
	ErrSchemeNotFound  = apperror.NotFound("scheme not found")
)

type ContentService interface {
	ListItems(ctx context.Context, admin bool, filter dto.ContentFilter) (*commonDto.Paginated[entity.ContentItem], error)
	GetItem(ctx context.Context, admin bool, id uuid.UUID) (*entity.ContentItem, error)
	CreateItem(ctx context.Context, authorID uuid.UUID, input dto.ContentInput) (*entity.ContentItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, input dto.UpdateContentInput) (*entity.ContentItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error

	ListSchemes(ctx context.Context, admin bool, filter dto.SchemeFilter) (*commonDto.Paginated[entity.Scheme], error)
	GetScheme(ctx context.Context, admin bool, id uuid.UUID) (*entity.Scheme, error)
	CreateScheme(ctx context.Context, input dto.SchemeInput) (*entity.Scheme, error)
	UpdateScheme(ctx context.Context, id uuid.UUID, input dto.UpdateSchemeInput) (*entity.Scheme, error)
	DeleteScheme(ctx context.Context, id uuid.UUID) error
}

type contentService struct {
	repo repository.ContentRepository
}

func NewContentService(repo repository.ContentRepository) ContentService {
	return &contentService{repo: repo}
}

func (s *contentService) ListItems(ctx context.Context, admin bool, filter dto.ContentFilter) (*commonDto.Paginated[entity.ContentItem], error) {
	filter.Normalize()
	filter.IncludeDrafts = filter.IncludeDrafts && admin
	items, total, err := s.repo.ListItems(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &commonDto.Paginated[entity.ContentItem]{Data: items, Meta: commonDto.NewPaginationMeta(filter.PageQuery, total)}, nil
}

func (s *contentService) GetItem(ctx context.Context, admin bool, id uuid.UUID) (*entity.ContentItem, error) {
	item, err := s.repo.FindItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	if !item.Published && !admin {
		return nil, ErrContentNotFound
	}
	return item, nil
}

func (s *contentService) CreateItem(ctx context.Context, authorID uuid.UUID, input dto.ContentInput) (*entity.ContentItem, error) {
	language := input.Language
	if language == "" {
		language = "en"
	}
	item := &entity.ContentItem{
		Title:     sanitize.Text(input.Title),
		Category:  input.Category,
		Body:      sanitize.Text(input.Body),
		Language:  language,
		MediaURL:  input.MediaURL,
		Published: input.Published,
		AuthorID:  authorID,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *contentService) UpdateItem(ctx context.Context, id uuid.UUID, input dto.UpdateContentInput) (*entity.ContentItem, error) {
	item, err := s.GetItem(ctx, true, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		item.Title = sanitize.Text(*input.Title)
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Body != nil {
		item.Body = sanitize.Text(*input.Body)
	}
	if input.Language != nil {
		item.Language = *input.Language
	}
	if input.MediaURL != nil {
		item.MediaURL = input.MediaURL
	}
	if input.Published != nil {
		item.Published = *input.Published
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *contentService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContentNotFound
		}
		return err
	}
	return nil
}

func (s *contentService) ListSchemes(ctx context.Context, admin bool, filter dto.SchemeFilter) (*commonDto.Paginated[entity.Scheme], error) {
	filter.Normalize()
	filter.IncludeInactive = filter.IncludeInactive && admin
	schemes, total, err := s.repo.ListSchemes(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &commonDto.Paginated[entity.Scheme]{Data: schemes, Meta: commonDto.NewPaginationMeta(filter.PageQuery, total)}, nil
}

func (s *contentService) GetScheme(ctx context.Context, admin bool, id uuid.UUID) (*entity.Scheme, error) {
	scheme, err := s.repo.FindScheme(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchemeNotFound
		}
		return nil, err
	}
	if !scheme.Active && !admin {
		return nil, ErrSchemeNotFound
	}
	return scheme, nil
}

func (s *contentService) CreateScheme(ctx context.Context, input dto.SchemeInput) (*entity.Scheme, error) {
	deadline, err := commonDto.ParseOptionalDate(input.Deadline)
	if err != nil {
		return nil, apperror.BadRequest("deadline must be YYYY-MM-DD")
	}

	scheme := &entity.Scheme{
		Name:        sanitize.Text(input.Name),
		Description: sanitize.Text(input.Description),
		Eligibility: sanitize.Optional(input.Eligibility),
		Benefits:    sanitize.Optional(input.Benefits),
		State:       sanitize.Optional(input.State),
		Deadline:    deadline,
		Active:      true,
	}
	if err := s.repo.CreateScheme(ctx, scheme); err != nil {
		return nil, err
	}

	// Active defaults to true in the table, so an explicit false is a second write.
	if input.Active != nil && !*input.Active {
		scheme.Active = false
		if err := s.repo.UpdateScheme(ctx, scheme); err != nil {
			return nil, err
		}
	}
	return scheme, nil
}

func (s *contentService) UpdateScheme(ctx context.Context, id uuid.UUID, input dto.UpdateSchemeInput) (*entity.Scheme, error) {
	scheme, err := s.GetScheme(ctx, true, id)
	if err != nil {
		return nil, err
	}

	if input.Deadline != nil {
		deadline, err := commonDto.ParseOptionalDate(input.Deadline)
		if err != nil {
			return nil, apperror.BadRequest("deadline must be YYYY-MM-DD")
		}
		scheme.Deadline = deadline
	}
	if input.Name != nil {
		scheme.Name = sanitize.Text(*input.Name)
	}
	if input.Description != nil {
		scheme.Description = sanitize.Text(*input.Description)
	}
	if input.Eligibility != nil {
		scheme.Eligibility = sanitize.Optional(input.Eligibility)
	}
	if input.Benefits != nil {
		scheme.Benefits = sanitize.Optional(input.Benefits)
	}
	if input.State != nil {
		scheme.State = sanitize.Optional(input.State)
	}
	if input.Active != nil {
		scheme.Active = *input.Active
	}

	if err := s.repo.UpdateScheme(ctx, scheme); err != nil {
		return nil, err
	}
	return scheme, nil
}

func (s *contentService) DeleteScheme(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteScheme(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSchemeNotFound
		}
		return err
	}
	return nil
}
