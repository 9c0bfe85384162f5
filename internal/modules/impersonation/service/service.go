package service

import (
	"context"
	"errors"
	"time"

	"anoa.com/livestockhub/internal/entity"
	auditService "anoa.com/livestockhub/internal/modules/audit/service"
	"anoa.com/livestockhub/internal/modules/impersonation/dto"
	"anoa.com/livestockhub/internal/modules/impersonation/repository"
	"anoa.com/livestockhub/internal/modules/session"
	userService "anoa.com/livestockhub/internal/modules/user/service"
	"anoa.com/livestockhub/pkg/apperror"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrAlreadyImpersonating = apperror.BadRequest("already impersonating a user")
	ErrNotImpersonating     = apperror.BadRequest("not impersonating")
	ErrSelfImpersonation    = apperror.BadRequest("cannot impersonate yourself")
)

type ImpersonationService interface {
	Start(ctx context.Context, caller *session.Session, targetID uuid.UUID) (*dto.ImpersonationResponse, error)
	Stop(ctx context.Context, caller *session.Session) (*dto.ImpersonationResponse, error)
}

type impersonationService struct {
	repo  repository.ImpersonationRepository
	auth  userService.AuthService
	audit auditService.AuditService
	store *session.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewImpersonationService(repo repository.ImpersonationRepository, auth userService.AuthService, audit auditService.AuditService, store *session.Store, log *zap.Logger) ImpersonationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &impersonationService{repo: repo, auth: auth, audit: audit, store: store, log: log, now: time.Now}
}

// Start is admin only; the route guard checks the role. The returned token
// acts as the target and carries the admin as impersonator.
func (s *impersonationService) Start(ctx context.Context, caller *session.Session, targetID uuid.UUID) (*dto.ImpersonationResponse, error) {
	if caller.IsImpersonating() {
		return nil, ErrAlreadyImpersonating
	}
	adminID := caller.UserID
	if adminID == targetID {
		return nil, ErrSelfImpersonation
	}

	auth, err := s.auth.IssueFor(ctx, targetID, &adminID)
	if err != nil {
		return nil, err
	}

	record := &entity.ImpersonationSession{AdminID: adminID, TargetUserID: targetID, StartedAt: s.now().UTC()}
	err = s.repo.InTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, record); err != nil {
			return err
		}
		return s.audit.Record(ctx, adminID, entity.AuditImpersonationStart, &targetID, map[string]any{
			"impersonation_id": record.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.ImpersonationResponse{
		AuthResponse:    auth,
		ImpersonationID: record.ID,
		IsImpersonating: true,
		TargetUserID:    &targetID,
	}, nil
}

// Stop closes the impersonation behind caller and returns a fresh token for
// the admin. The impersonation token is revoked.
func (s *impersonationService) Stop(ctx context.Context, caller *session.Session) (*dto.ImpersonationResponse, error) {
	if !caller.IsImpersonating() {
		return nil, ErrNotImpersonating
	}
	adminID := *caller.ImpersonatorID
	targetID := caller.UserID

	var impersonationID uuid.UUID
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		record, err := s.repo.FindActive(ctx, adminID, targetID)
		switch {
		case err == nil:
			impersonationID = record.ID
			if err := s.repo.End(ctx, record.ID, s.now().UTC()); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			s.log.Warn("no active impersonation record", zap.String("admin_id", adminID.String()), zap.String("target_user_id", targetID.String()))
		default:
			return err
		}

		return s.audit.Record(ctx, adminID, entity.AuditImpersonationStop, &targetID, map[string]any{
			"impersonation_id": impersonationID.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Revoke(ctx, caller); err != nil {
		s.log.Warn("failed to revoke impersonation session", zap.String("session_id", caller.ID), zap.Error(err))
	}

	auth, err := s.auth.IssueFor(ctx, adminID, nil)
	if err != nil {
		return nil, err
	}
	return &dto.ImpersonationResponse{AuthResponse: auth, ImpersonationID: impersonationID}, nil
}
