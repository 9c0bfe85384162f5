package repository

import (
	"context"
	"time"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/helpdesk/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HelpdeskRepository interface {
	Create(ctx context.Context, ticket *entity.HelpdeskTicket) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.HelpdeskTicket, error)
	List(ctx context.Context, userID *uuid.UUID, filter dto.TicketFilter) ([]entity.HelpdeskTicket, int64, error)
	AddResponse(ctx context.Context, resp *entity.HelpdeskResponse) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, resolvedAt *time.Time) error
	// MarkBreaches flags unresolved tickets of priority created before cutoff.
	MarkBreaches(ctx context.Context, priority string, cutoff time.Time) (int64, error)
}

type helpdeskRepository struct {
	db *gorm.DB
}

func NewHelpdeskRepository(db *gorm.DB) HelpdeskRepository {
	return &helpdeskRepository{db: db}
}

func (r *helpdeskRepository) Create(ctx context.Context, ticket *entity.HelpdeskTicket) error {
	return r.db.WithContext(ctx).Omit("Responses").Create(ticket).Error
}

func (r *helpdeskRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.HelpdeskTicket, error) {
	var ticket entity.HelpdeskTicket
	err := r.db.WithContext(ctx).
		Preload("Responses", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&ticket, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *helpdeskRepository) List(ctx context.Context, userID *uuid.UUID, filter dto.TicketFilter) ([]entity.HelpdeskTicket, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.HelpdeskTicket{})
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.SLABreach {
		q = q.Where("sla_breach = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tickets []entity.HelpdeskTicket
	err := q.Order("created_at DESC").Offset(filter.Offset()).Limit(filter.Limit).Find(&tickets).Error
	return tickets, total, err
}

func (r *helpdeskRepository) AddResponse(ctx context.Context, resp *entity.HelpdeskResponse) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(resp).Error; err != nil {
			return err
		}
		return tx.Model(&entity.HelpdeskTicket{}).
			Where("id = ?", resp.TicketID).
			UpdateColumn("updated_at", time.Now()).Error
	})
}

func (r *helpdeskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, resolvedAt *time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.HelpdeskTicket{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "resolved_at": resolvedAt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *helpdeskRepository) MarkBreaches(ctx context.Context, priority string, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entity.HelpdeskTicket{}).
		Where("priority = ? AND sla_breach = ? AND created_at < ?", priority, false, cutoff).
		Where("status IN ?", []string{entity.TicketStatusOpen, entity.TicketStatusInProgress}).
		UpdateColumn("sla_breach", true)
	return res.RowsAffected, res.Error
}
