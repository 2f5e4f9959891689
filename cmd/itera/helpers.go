package main

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/itera/internal/cli"
	"github.com/at-ishikawa/itera/internal/config"
	"github.com/at-ishikawa/itera/internal/database"
	"github.com/at-ishikawa/itera/internal/review"
	"github.com/at-ishikawa/itera/internal/schedule"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func newPrinter(cmd *cobra.Command) (*cli.Printer, error) {
	format, err := cli.ParseOutputFormat(outputFormat)
	if err != nil {
		return nil, err
	}
	return cli.NewPrinter(cmd.OutOrStdout(), format), nil
}

func openDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	return db, nil
}

// newReviewService builds a Service on db from the schedule and review settings of cfg.
func newReviewService(cfg *config.Config, db *sqlx.DB) (*review.Service, error) {
	anchor, err := schedule.ParseAnchor(cfg.Schedule.Anchor)
	if err != nil {
		return nil, fmt.Errorf("schedule.ParseAnchor() > %w", err)
	}
	return review.NewService(
		review.NewDBStore(db),
		schedule.Schedule{Anchor: anchor},
		review.WithLogger(slog.Default()),
		review.WithRetry(cfg.Review.RetryAttempts, cfg.Review.RetryDelay()),
		review.WithDefaultTimezoneOffset(cfg.Schedule.DefaultTimezoneOffset),
	), nil
}

// withReviewService loads the config, opens the database and runs fn with a Service.
func withReviewService(fn func(svc *review.Service) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	svc, err := newReviewService(cfg, db)
	if err != nil {
		return err
	}
	return fn(svc)
}

func addUserFlag(cmd *cobra.Command, userID *int64) {
	cmd.Flags().Int64Var(userID, "user", 0, "User ID")
	_ = cmd.MarkFlagRequired("user")
}

func validateUserID(userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("--user must be a positive user ID")
	}
	return nil
}
