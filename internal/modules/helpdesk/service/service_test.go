package service

import (
	"context"
	"testing"
	"time"

	"anoa.com/livestockhub/internal/entity"
	auditRepo "anoa.com/livestockhub/internal/modules/audit/repository"
	auditService "anoa.com/livestockhub/internal/modules/audit/service"
	"anoa.com/livestockhub/internal/modules/helpdesk/dto"
	"anoa.com/livestockhub/internal/modules/helpdesk/repository"
	"anoa.com/livestockhub/internal/testutil"
	"anoa.com/livestockhub/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T, db *gorm.DB) *helpdeskService {
	t.Helper()
	audit := auditService.NewAuditService(auditRepo.NewAuditRepository(db), nil, nil)
	return NewHelpdeskService(repository.NewHelpdeskRepository(db), audit, nil, Options{}, nil).(*helpdeskService)
}

func ticketInput(priority string) dto.CreateTicketInput {
	return dto.CreateTicketInput{
		Subject:     "Vaccination reminder missing",
		Description: "I did not get the FMD reminder for my buffalo.",
		Category:    "technical",
		Priority:    priority,
	}
}

func TestTicketLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	farmer := testutil.CreateUser(t, db, "farmer@example.com", true, entity.RoleFarmer)
	other := testutil.CreateUser(t, db, "other@example.com", true, entity.RoleFarmer)
	admin := testutil.CreateUser(t, db, "admin@example.com", true, entity.RoleAdmin)
	svc := newService(t, db)

	ticket, err := svc.Create(ctx, farmer.ID, ticketInput(""))
	require.NoError(t, err)
	assert.Equal(t, entity.PriorityMedium, ticket.Priority)
	assert.Equal(t, entity.TicketStatusOpen, ticket.Status)

	_, err = svc.Get(ctx, other.ID, false, ticket.ID)
	assert.ErrorIs(t, err, ErrTicketNotFound)

	resp, err := svc.Respond(ctx, admin.ID, true, ticket.ID, dto.ResponseInput{Message: "Looking into it"})
	require.NoError(t, err)
	assert.True(t, resp.IsStaff)

	_, err = svc.Respond(ctx, farmer.ID, false, ticket.ID, dto.ResponseInput{Message: "Thanks"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, farmer.ID, false, ticket.ID)
	require.NoError(t, err)
	require.Len(t, got.Responses, 2)
	assert.Equal(t, "Looking into it", got.Responses[0].Message)

	closed, err := svc.SetStatus(ctx, admin.ID, ticket.ID, entity.TicketStatusClosed)
	require.NoError(t, err)
	require.NotNil(t, closed.ResolvedAt)

	_, err = svc.Respond(ctx, farmer.ID, false, ticket.ID, dto.ResponseInput{Message: "One more thing"})
	assert.ErrorIs(t, err, ErrTicketClosed)

	reopened, err := svc.SetStatus(ctx, admin.ID, ticket.ID, entity.TicketStatusOpen)
	require.NoError(t, err)
	assert.Nil(t, reopened.ResolvedAt)

	var count int64
	require.NoError(t, db.Model(&entity.AuditLog{}).Where("action = ?", entity.AuditTicketStatus).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestSweepSLA(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	farmer := testutil.CreateUser(t, db, "farmer@example.com", true, entity.RoleFarmer)
	svc := newService(t, db)

	urgent, err := svc.Create(ctx, farmer.ID, ticketInput(entity.PriorityUrgent))
	require.NoError(t, err)
	low, err := svc.Create(ctx, farmer.ID, ticketInput(entity.PriorityLow))
	require.NoError(t, err)
	resolved, err := svc.Create(ctx, farmer.ID, ticketInput(entity.PriorityUrgent))
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, farmer.ID, resolved.ID, entity.TicketStatusResolved)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(5 * time.Hour) }
	n, err := svc.SweepSLA(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var urgentRow, lowRow entity.HelpdeskTicket
	require.NoError(t, db.First(&urgentRow, "id = ?", urgent.ID).Error)
	assert.True(t, urgentRow.SLABreach)
	require.NoError(t, db.First(&lowRow, "id = ?", low.ID).Error)
	assert.False(t, lowRow.SLABreach)

	n, err = svc.SweepSLA(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreate_RateLimited(t *testing.T) {
	db := testutil.NewTestDB(t)
	rdb, _ := testutil.NewTestRedis(t)
	ctx := context.Background()
	farmer := testutil.CreateUser(t, db, "farmer@example.com", true, entity.RoleFarmer)
	svc := NewHelpdeskService(repository.NewHelpdeskRepository(db), nil, rdb, Options{TicketRateLimit: time.Minute}, nil)

	_, err := svc.Create(ctx, farmer.ID, ticketInput(entity.PriorityHigh))
	require.NoError(t, err)
	_, err = svc.Create(ctx, farmer.ID, ticketInput(entity.PriorityHigh))
	assert.ErrorIs(t, err, apperror.ErrRateLimitExceeded)
}
