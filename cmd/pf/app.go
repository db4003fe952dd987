package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/portfolio/internal/config"
	"github.com/zulandar/portfolio/internal/db"
	"github.com/zulandar/portfolio/internal/health"
	"github.com/zulandar/portfolio/internal/logging"
	"github.com/zulandar/portfolio/internal/portfolio"
	"github.com/zulandar/portfolio/internal/store/gormstore"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultConfigPath = "portfolio.yaml"

func addConfigFlag(cmd *cobra.Command, configPath *string) {
	cmd.Flags().StringVarP(configPath, "config", "c", defaultConfigPath, "path to portfolio config file")
}

// loadConfig reads configPath. A missing default file falls back to the
// built-in defaults; a missing file named explicitly is an error.
func loadConfig(cmd *cobra.Command, configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		return config.Default(), nil
	}
	return nil, fmt.Errorf("load config: %w", err)
}

// app bundles what every data command needs.
type app struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
	svc *portfolio.Service
}

func openApp(cmd *cobra.Command, configPath string) (*app, error) {
	cfg, err := loadConfig(cmd, configPath)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	repo, err := gormstore.New(gormDB)
	if err != nil {
		return nil, err
	}
	svc, err := portfolio.New(repo,
		portfolio.WithPolicy(health.Policy{HealthyProgress: cfg.Health.HealthyProgress}),
		portfolio.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, db: gormDB, svc: svc}, nil
}

func (a *app) Close() {
	_ = a.log.Sync()
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(n), nil
}

// parseDate accepts YYYY-MM-DD. An empty string means no date.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.DateOnly)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
