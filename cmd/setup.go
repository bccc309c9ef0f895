package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/seatify/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the history database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	config := r.config

	if !config.Database.Enabled {
		r.logger.Warn("run history is disabled; set [database] enabled = true to record runs", "config", r.configPath)
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// ConfigInit writes the built-in config template to --config.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("force") {
		if err := os.Remove(r.configPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing config: %w", err)
		}
	}

	if err := shared.CreateConfigFile(r.configPath); err != nil {
		return err
	}

	r.writePlain("✓ Config written to %s\n", r.configPath)
	r.writePlain("Add your Spotify client_id and client_secret, then run: seatify rank\n")
	return nil
}

// ConfigCheck validates the effective configuration (file plus environment).
func (r *Runner) ConfigCheck(ctx context.Context, cmd *cli.Command) error {
	if err := r.config.Validate(); err != nil {
		return err
	}

	spotify := r.config.Credentials.Spotify
	if spotify.ClientID == "" || spotify.ClientSecret == "" {
		r.logger.Warn("spotify credentials are not set; only --fixture runs will work")
	}

	r.writePlain("✓ %s is valid\n", r.configPath)
	r.writePlain("Categories: %v\n", r.config.Source.Categories)
	r.writePlain("Report: %d rows as %s in %s\n", r.config.Report.Rows, r.config.Report.Format, r.config.Report.OutputDir)
	return nil
}
