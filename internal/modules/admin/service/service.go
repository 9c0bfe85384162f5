package service

import (
	"context"
	"errors"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/admin/dto"
	auditService "anoa.com/livestockhub/internal/modules/audit/service"
	userRepo "anoa.com/livestockhub/internal/modules/user/repository"
	"anoa.com/livestockhub/pkg/apperror"
	commonDto "anoa.com/livestockhub/pkg/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound    = apperror.NotFound("user not found")
	ErrRoleNotHeld     = apperror.NotFound("user does not hold this role")
	ErrSelfAdminRevoke = apperror.BadRequest("admins cannot revoke their own admin role")
)

// RoleCache forgets the cached roles of a user.
type RoleCache interface {
	InvalidateUser(ctx context.Context, userID uuid.UUID)
}

type AdminService interface {
	ListUsers(ctx context.Context, filter dto.UserListFilter) (*commonDto.Paginated[dto.UserWithRoles], error)
	GrantRole(ctx context.Context, adminID, userID uuid.UUID, role entity.Role) (*dto.RolesResponse, error)
	RevokeRole(ctx context.Context, adminID, userID uuid.UUID, role entity.Role) (*dto.RolesResponse, error)
}

type adminService struct {
	users userRepo.UserRepository
	audit auditService.AuditService
	cache RoleCache
	log   *zap.Logger
}

func NewAdminService(users userRepo.UserRepository, audit auditService.AuditService, cache RoleCache, log *zap.Logger) AdminService {
	if log == nil {
		log = zap.NewNop()
	}
	return &adminService{users: users, audit: audit, cache: cache, log: log}
}

func (s *adminService) ListUsers(ctx context.Context, filter dto.UserListFilter) (*commonDto.Paginated[dto.UserWithRoles], error) {
	filter.Normalize()
	users, total, err := s.users.List(ctx, filter.UserFilter, filter.PageQuery)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.UserWithRoles, 0, len(users))
	for i := range users {
		u := &users[i]
		rows = append(rows, dto.UserWithRoles{
			ID:        u.ID,
			Email:     u.Email,
			Profile:   u.Profile,
			Roles:     u.RoleNames(),
			CreatedAt: u.CreatedAt,
		})
	}
	return &commonDto.Paginated[dto.UserWithRoles]{Data: rows, Meta: commonDto.NewPaginationMeta(filter.PageQuery, total)}, nil
}

func (s *adminService) GrantRole(ctx context.Context, adminID, userID uuid.UUID, role entity.Role) (*dto.RolesResponse, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.users.AddRole(ctx, userID, role); err != nil {
		return nil, err
	}
	return s.afterRoleChange(ctx, adminID, userID, role, entity.AuditRoleGranted)
}

func (s *adminService) RevokeRole(ctx context.Context, adminID, userID uuid.UUID, role entity.Role) (*dto.RolesResponse, error) {
	if adminID == userID && role == entity.RoleAdmin {
		return nil, ErrSelfAdminRevoke
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.users.RemoveRole(ctx, userID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotHeld
		}
		return nil, err
	}
	return s.afterRoleChange(ctx, adminID, userID, role, entity.AuditRoleRevoked)
}

func (s *adminService) ensureUser(ctx context.Context, userID uuid.UUID) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}

func (s *adminService) afterRoleChange(ctx context.Context, adminID, userID uuid.UUID, role entity.Role, action string) (*dto.RolesResponse, error) {
	if s.cache != nil {
		s.cache.InvalidateUser(ctx, userID)
	}
	if err := s.audit.Record(ctx, adminID, action, &userID, map[string]any{"role": string(role)}); err != nil {
		s.log.Error("failed to audit role change", zap.String("action", action), zap.Error(err))
	}

	roles, err := s.users.FindRolesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.RolesResponse{UserID: userID, Roles: roles}, nil
}
