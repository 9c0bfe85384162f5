package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"anoa.com/livestockhub/internal/bootstrap"
	"anoa.com/livestockhub/internal/config"
	"anoa.com/livestockhub/internal/server"
	"anoa.com/livestockhub/pkg/cache"
	"anoa.com/livestockhub/pkg/database"
	"anoa.com/livestockhub/pkg/logger"
	"anoa.com/livestockhub/pkg/validator"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account, demo accounts and starter content",
	RunE:  runSeed,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not migrate the schema on start")
}

// env holds what every subcommand needs.
type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	// response helpers log through the global logger
	zap.ReplaceGlobals(log)

	db, err := database.Connect(database.Options{
		URL:      cfg.DatabaseURL,
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Name:     cfg.DBName,
		Port:     cfg.DBPort,
		Debug:    cfg.DBDebug,
	})
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, log: log, db: db}, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = e.log.Sync() }()

	if !skipMigrate {
		if err := bootstrap.Migrate(e.db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := cache.Connect(ctx, e.cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient == nil {
		e.log.Warn("REDIS_URL not set: role cache, rate limits and realtime messaging are disabled")
	} else {
		defer redisClient.Close()
	}

	validator.Register()

	srv, err := server.NewServer(ctx, e.cfg, e.db, redisClient, e.log)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func runMigrate(_ *cobra.Command, _ []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	if err := bootstrap.Migrate(e.db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	e.log.Info("schema migrated")
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := bootstrap.Migrate(e.db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	admin, err := bootstrap.SeedAdmin(ctx, e.db, e.cfg.AdminEmail, e.cfg.AdminPassword, e.log)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if !e.cfg.IsProduction() {
		if err := bootstrap.SeedDemoUsers(ctx, e.db, e.log); err != nil {
			return err
		}
	}
	return bootstrap.SeedContent(ctx, e.db, admin, e.log)
}
