// Package config provides YAML-based configuration loading for the portfolio tracker.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// DefaultAreas seeds the sponsor/area list on first init.
var DefaultAreas = []string{
	"Geral", "TI", "RH", "Financeiro", "Marketing", "Operações", "Comercial", "Logística",
}

// Config is the top-level configuration, loaded from portfolio.yaml.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Health    HealthConfig    `yaml:"health"`
	Areas     []string        `yaml:"areas"`
	Log       LogConfig       `yaml:"log"`
	Notify    NotifyConfig    `yaml:"notify"`
	GitHub    GitHubConfig    `yaml:"github"`
}

// DatabaseConfig selects and addresses the backing database.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// DashboardConfig holds web dashboard settings.
type DashboardConfig struct {
	Port int `yaml:"port"`
	// RefreshSeconds is the gap-alert polling interval of the event stream.
	RefreshSeconds int `yaml:"refresh_seconds"`
}

// HealthConfig holds the health classification thresholds.
type HealthConfig struct {
	HealthyProgress int `yaml:"healthy_progress"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NotifyConfig configures the scheduled health digest.
type NotifyConfig struct {
	Schedule string        `yaml:"schedule"`
	Slack    ChannelConfig `yaml:"slack"`
	Discord  ChannelConfig `yaml:"discord"`
}

// ChannelConfig holds credentials and target channel for one chat platform.
type ChannelConfig struct {
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// Enabled reports whether the platform is configured.
func (c ChannelConfig) Enabled() bool {
	return c.BotToken != "" && c.ChannelID != ""
}

// GitHubConfig points the gap sync at a repository.
type GitHubConfig struct {
	Owner  string   `yaml:"owner"`
	Repo   string   `yaml:"repo"`
	Token  string   `yaml:"token"`
	Labels []string `yaml:"labels"`
}

// Enabled reports whether gap sync has a target repository.
func (g GitHubConfig) Enabled() bool {
	return g.Owner != "" && g.Repo != ""
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse expands ${VAR} references, unmarshals YAML bytes and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			c.Database.Path = "portfolio.db"
		}
	case DriverMySQL:
		if c.Database.Port == 0 {
			c.Database.Port = 3306
		}
	case DriverPostgres:
		if c.Database.Port == 0 {
			c.Database.Port = 5432
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = 8080
	}
	if c.Dashboard.RefreshSeconds == 0 {
		c.Dashboard.RefreshSeconds = 5
	}
	if c.Health.HealthyProgress == 0 {
		c.Health.HealthyProgress = 80
	}
	if len(c.Areas) == 0 {
		c.Areas = append([]string(nil), DefaultAreas...)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if len(c.GitHub.Labels) == 0 {
		c.GitHub.Labels = []string{"gap"}
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string

	switch c.Database.Driver {
	case DriverSQLite:
	case DriverMySQL, DriverPostgres:
		if c.Database.Host == "" {
			errs = append(errs, "database.host is required for "+c.Database.Driver)
		}
		if c.Database.Name == "" {
			errs = append(errs, "database.name is required for "+c.Database.Driver)
		}
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not one of sqlite, mysql, postgres", c.Database.Driver))
	}
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port %d is out of range", c.Database.Port))
	}
	if c.Dashboard.Port < 0 || c.Dashboard.Port > 65535 {
		errs = append(errs, fmt.Sprintf("dashboard.port %d is out of range", c.Dashboard.Port))
	}
	if c.Dashboard.RefreshSeconds < 0 {
		errs = append(errs, "dashboard.refresh_seconds must be positive")
	}
	if c.Health.HealthyProgress < 0 || c.Health.HealthyProgress > 100 {
		errs = append(errs, fmt.Sprintf("health.healthy_progress %d must be within 0..100", c.Health.HealthyProgress))
	}
	for i, a := range c.Areas {
		if strings.TrimSpace(a) == "" {
			errs = append(errs, fmt.Sprintf("areas[%d] is empty", i))
		}
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level %q is invalid", c.Log.Level))
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Sprintf("log.format %q must be console or json", c.Log.Format))
	}
	if c.Notify.Schedule != "" {
		if _, err := cronParser.Parse(c.Notify.Schedule); err != nil {
			errs = append(errs, fmt.Sprintf("notify.schedule %q: %v", c.Notify.Schedule, err))
		}
	}
	if (c.GitHub.Owner == "") != (c.GitHub.Repo == "") {
		errs = append(errs, "github.owner and github.repo must be set together")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// cronParser accepts standard 5-field expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
