package service

import (
	"context"
	"errors"
	"time"

	"anoa.com/livestockhub/internal/entity"
	auditService "anoa.com/livestockhub/internal/modules/audit/service"
	"anoa.com/livestockhub/internal/modules/helpdesk/dto"
	"anoa.com/livestockhub/internal/modules/helpdesk/repository"
	"anoa.com/livestockhub/pkg/apperror"
	commonDto "anoa.com/livestockhub/pkg/dto"
	"anoa.com/livestockhub/pkg/ratelimiter"
	"anoa.com/livestockhub/pkg/sanitize"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound = apperror.NotFound("ticket not found")
	ErrTicketClosed   = apperror.BadRequest("ticket is closed")
)

const ticketAction = "helpdesk_ticket"

// SLA is the time a ticket of each priority may stay unresolved.
var SLA = map[string]time.Duration{
	entity.PriorityUrgent: 4 * time.Hour,
	entity.PriorityHigh:   24 * time.Hour,
	entity.PriorityMedium: 48 * time.Hour,
	entity.PriorityLow:    72 * time.Hour,
}

type HelpdeskService interface {
	Create(ctx context.Context, userID uuid.UUID, input dto.CreateTicketInput) (*entity.HelpdeskTicket, error)
	ListMine(ctx context.Context, userID uuid.UUID, filter dto.TicketFilter) (*commonDto.Paginated[entity.HelpdeskTicket], error)
	Get(ctx context.Context, userID uuid.UUID, staff bool, id uuid.UUID) (*entity.HelpdeskTicket, error)
	Respond(ctx context.Context, userID uuid.UUID, staff bool, id uuid.UUID, input dto.ResponseInput) (*entity.HelpdeskResponse, error)

	ListAll(ctx context.Context, filter dto.TicketFilter) (*commonDto.Paginated[entity.HelpdeskTicket], error)
	SetStatus(ctx context.Context, adminID, id uuid.UUID, status string) (*entity.HelpdeskTicket, error)
	SweepSLA(ctx context.Context) (int64, error)
}

type Options struct {
	TicketRateLimit time.Duration
}

type helpdeskService struct {
	repo  repository.HelpdeskRepository
	audit auditService.AuditService
	redis *redis.Client
	opts  Options
	log   *zap.Logger
	now   func() time.Time
}

func NewHelpdeskService(repo repository.HelpdeskRepository, audit auditService.AuditService, redisClient *redis.Client, opts Options, log *zap.Logger) HelpdeskService {
	if log == nil {
		log = zap.NewNop()
	}
	return &helpdeskService{repo: repo, audit: audit, redis: redisClient, opts: opts, log: log, now: time.Now}
}

func (s *helpdeskService) Create(ctx context.Context, userID uuid.UUID, input dto.CreateTicketInput) (*entity.HelpdeskTicket, error) {
	if err := ratelimiter.Enforce(ctx, s.redis, userID, ticketAction, s.opts.TicketRateLimit); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	ticket := &entity.HelpdeskTicket{
		UserID:      userID,
		Subject:     sanitize.Text(input.Subject),
		Description: sanitize.Text(input.Description),
		Category:    input.Category,
		Priority:    priority,
		Status:      entity.TicketStatusOpen,
	}
	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *helpdeskService) page(ctx context.Context, userID *uuid.UUID, filter dto.TicketFilter) (*commonDto.Paginated[entity.HelpdeskTicket], error) {
	filter.Normalize()
	tickets, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return &commonDto.Paginated[entity.HelpdeskTicket]{Data: tickets, Meta: commonDto.NewPaginationMeta(filter.PageQuery, total)}, nil
}

func (s *helpdeskService) ListMine(ctx context.Context, userID uuid.UUID, filter dto.TicketFilter) (*commonDto.Paginated[entity.HelpdeskTicket], error) {
	return s.page(ctx, &userID, filter)
}

func (s *helpdeskService) ListAll(ctx context.Context, filter dto.TicketFilter) (*commonDto.Paginated[entity.HelpdeskTicket], error) {
	return s.page(ctx, nil, filter)
}

// Get hides other users' tickets from non-staff callers as not found.
func (s *helpdeskService) Get(ctx context.Context, userID uuid.UUID, staff bool, id uuid.UUID) (*entity.HelpdeskTicket, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	if !staff && ticket.UserID != userID {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

func (s *helpdeskService) Respond(ctx context.Context, userID uuid.UUID, staff bool, id uuid.UUID, input dto.ResponseInput) (*entity.HelpdeskResponse, error) {
	ticket, err := s.Get(ctx, userID, staff, id)
	if err != nil {
		return nil, err
	}
	if ticket.Status == entity.TicketStatusClosed {
		return nil, ErrTicketClosed
	}

	resp := &entity.HelpdeskResponse{
		TicketID: id,
		UserID:   userID,
		Message:  sanitize.Text(input.Message),
		IsStaff:  staff && ticket.UserID != userID,
	}
	if resp.Message == "" {
		return nil, apperror.BadRequest("message must not be empty")
	}
	if err := s.repo.AddResponse(ctx, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SetStatus accepts any valid status regardless of the current one.
// resolved_at is stamped on the first move into resolved or closed and
// cleared when the ticket is reopened.
func (s *helpdeskService) SetStatus(ctx context.Context, adminID, id uuid.UUID, status string) (*entity.HelpdeskTicket, error) {
	ticket, err := s.Get(ctx, adminID, true, id)
	if err != nil {
		return nil, err
	}

	resolvedAt := ticket.ResolvedAt
	switch status {
	case entity.TicketStatusResolved, entity.TicketStatusClosed:
		if resolvedAt == nil {
			now := s.now().UTC()
			resolvedAt = &now
		}
	default:
		resolvedAt = nil
	}

	if err := s.repo.UpdateStatus(ctx, id, status, resolvedAt); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	previous := ticket.Status
	ticket.Status = status
	ticket.ResolvedAt = resolvedAt

	if s.audit != nil {
		if err := s.audit.Record(ctx, adminID, entity.AuditTicketStatus, &id, map[string]any{"from": previous, "to": status}); err != nil {
			s.log.Error("failed to audit ticket status change", zap.String("ticket_id", id.String()), zap.Error(err))
		}
	}
	return ticket, nil
}

// SweepSLA flags every open or in-progress ticket older than its priority's SLA.
func (s *helpdeskService) SweepSLA(ctx context.Context) (int64, error) {
	now := s.now()
	var total int64
	for priority, limit := range SLA {
		n, err := s.repo.MarkBreaches(ctx, priority, now.Add(-limit))
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
