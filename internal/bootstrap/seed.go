// Package bootstrap migrates the schema and seeds the first admin account,
// the demo accounts and starter library content.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/livestockhub/internal/entity"
	userRepo "anoa.com/livestockhub/internal/modules/user/repository"
	userService "anoa.com/livestockhub/internal/modules/user/service"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(entity.All()...)
}

// SeedAdmin creates the admin account if no user holds the admin role yet,
// otherwise it returns the oldest admin.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password string, log *zap.Logger) (*entity.User, error) {
	var existing entity.User
	err := db.WithContext(ctx).
		Joins("JOIN user_roles ON user_roles.user_id = users.id AND user_roles.role = ?", entity.RoleAdmin).
		Order("users.created_at").
		First(&existing).Error
	if err == nil {
		log.Info("admin already exists, skipping seed", zap.String("email", existing.Email))
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if email == "" || password == "" {
		return nil, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required to seed the admin")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &entity.User{Email: email, PasswordHash: string(hashed)}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile", "Roles").Create(admin).Error; err != nil {
			return err
		}
		if err := tx.Create(&entity.Profile{
			ID:                  admin.ID,
			FullName:            "Administrator",
			PreferredLanguage:   "en",
			OnboardingCompleted: true,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&entity.UserRole{UserID: admin.ID, Role: entity.RoleAdmin}).Error
	})
	if err != nil {
		return nil, err
	}

	log.Info("admin user seeded", zap.String("email", email))
	return admin, nil
}

// DemoRoles are the roles that get a seeded demo account.
var DemoRoles = []entity.Role{entity.RoleFarmer, entity.RoleVeterinaryOfficer, entity.RoleProgramCoordinator}

// SeedDemoUsers creates the missing demo accounts. Demo login is disabled in
// production, so callers skip this there.
func SeedDemoUsers(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	repo := userRepo.NewUserRepository(db)
	for _, role := range DemoRoles {
		_, err := repo.FindByEmail(ctx, userService.DemoEmail(role))
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		user, profile, err := userService.NewDemoAccount(role)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, user, profile, []entity.Role{role}); err != nil {
			return fmt.Errorf("failed to seed demo %s: %w", role, err)
		}
		log.Info("demo user seeded", zap.String("email", user.Email), zap.String("role", string(role)))
	}
	return nil
}

var starterContent = []entity.ContentItem{
	{
		Title:    "Recognising foot-and-mouth disease",
		Category: "health",
		Body:     "Watch for fever, blisters on the mouth and feet, drooling and lameness. Isolate affected animals and call your veterinary officer.",
	},
	{
		Title:    "Balanced rations for dairy cattle",
		Category: "nutrition",
		Body:     "Combine green fodder, dry fodder and concentrate. A milking cow needs roughly 2.5 percent of body weight in dry matter each day.",
	},
	{
		Title:    "Heat detection and timing of insemination",
		Category: "breeding",
		Body:     "Inseminate 12 to 18 hours after the first signs of standing heat. Record the date to plan the expected calving.",
	},
}

var starterSchemes = []entity.Scheme{
	{
		Name:        "National Livestock Mission",
		Description: "Support for entrepreneurship and breed improvement in poultry, sheep, goat and pig farming.",
		Active:      true,
	},
	{
		Name:        "Livestock Health and Disease Control",
		Description: "Free vaccination against foot-and-mouth disease and brucellosis for cattle and buffalo.",
		Active:      true,
	},
}

// SeedContent publishes a starter library when the library is empty.
func SeedContent(ctx context.Context, db *gorm.DB, author *entity.User, log *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&entity.ContentItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || author == nil {
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range starterContent {
			item.AuthorID = author.ID
			item.Language = "en"
			item.Published = true
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		for _, scheme := range starterSchemes {
			if err := tx.Create(&scheme).Error; err != nil {
				return err
			}
		}
		log.Info("starter content seeded", zap.Int("items", len(starterContent)), zap.Int("schemes", len(starterSchemes)))
		return nil
	})
}
