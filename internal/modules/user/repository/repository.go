package repository

import (
	"context"
	"errors"
	"strings"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/user/dto"
	"anoa.com/livestockhub/pkg/database"
	commonDto "anoa.com/livestockhub/pkg/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User, profile *entity.Profile, roles []entity.Role) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*entity.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	FindRolesByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Role, error)
	AddRole(ctx context.Context, userID uuid.UUID, role entity.Role) error
	RemoveRole(ctx context.Context, userID uuid.UUID, role entity.Role) error
	List(ctx context.Context, filter dto.UserFilter, page commonDto.PageQuery) ([]entity.User, int64, error)
	CountByRole(ctx context.Context) (map[entity.Role]int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User, profile *entity.Profile, roles []entity.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}
		if profile != nil {
			profile.ID = user.ID
			if err := tx.Create(profile).Error; err != nil {
				return err
			}
			user.Profile = profile
		}
		for _, role := range roles {
			row := entity.UserRole{UserID: user.ID, Role: role}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			user.Roles = append(user.Roles, row)
		}
		return nil
	})
}

func (r *userRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Profile").Preload("Roles")
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.preloaded(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.preloaded(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByGoogleID(ctx context.Context, googleID string) (*entity.User, error) {
	var user entity.User
	if err := r.preloaded(ctx).Where("google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

func (r *userRepository) FindRolesByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Role, error) {
	var roles []entity.Role
	err := r.db.WithContext(ctx).
		Model(&entity.UserRole{}).
		Where("user_id = ?", userID).
		Order("role").
		Pluck("role", &roles).Error
	return roles, err
}

// AddRole is idempotent.
func (r *userRepository) AddRole(ctx context.Context, userID uuid.UUID, role entity.Role) error {
	var existing entity.UserRole
	err := r.db.WithContext(ctx).Where("user_id = ? AND role = ?", userID, role).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(&entity.UserRole{UserID: userID, Role: role}).Error
}

func (r *userRepository) RemoveRole(ctx context.Context, userID uuid.UUID, role entity.Role) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND role = ?", userID, role).Delete(&entity.UserRole{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, filter dto.UserFilter, page commonDto.PageQuery) ([]entity.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.User{})

	if filter.Search != "" {
		like := database.ContainsPattern(filter.Search)
		q = q.Where(`LOWER(users.email) LIKE ? ESCAPE '\' OR users.id IN (?)`, like,
			r.db.Model(&entity.Profile{}).Select("id").Where(`LOWER(full_name) LIKE ? ESCAPE '\'`, like))
	}
	if filter.Role != "" {
		q = q.Where("users.id IN (?)", r.db.Model(&entity.UserRole{}).Select("user_id").Where("role = ?", filter.Role))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	err := q.Preload("Profile").Preload("Roles").
		Order("users.created_at DESC").
		Offset(page.Offset()).Limit(page.Limit).
		Find(&users).Error
	return users, total, err
}

func (r *userRepository) CountByRole(ctx context.Context) (map[entity.Role]int64, error) {
	var rows []struct {
		Role  entity.Role
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.UserRole{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[entity.Role]int64, len(rows))
	for _, row := range rows {
		out[row.Role] = row.Count
	}
	return out, nil
}
