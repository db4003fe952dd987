package db

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/zulandar/portfolio/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds the driver-specific data source name for cfg.
func DSN(cfg config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return cfg.Path, nil
	case config.DriverMySQL:
		auth := cfg.User
		if cfg.Password != "" {
			auth += ":" + cfg.Password
		}
		return fmt.Sprintf("%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&clientFoundRows=true", auth, cfg.Host, cfg.Port, cfg.Name), nil
	case config.DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, cfg.Password),
			Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Path:     "/" + cfg.Name,
			RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
		}
		switch {
		case cfg.User == "" && cfg.Password == "":
			u.User = nil
		case cfg.Password == "":
			u.User = url.User(cfg.User)
		}
		return u.String(), nil
	default:
		return "", fmt.Errorf("db: unsupported driver %q", cfg.Driver)
	}
}

// dialector picks the GORM dialector for cfg.Driver.
func dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	switch cfg.Driver {
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return sqlite.Open(dsn), nil
	}
}

// Connect opens a GORM connection to the configured database.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: connect %s: %w", describe(cfg), err)
	}
	return db, nil
}

// describe renders cfg for error messages without the password.
func describe(cfg config.DatabaseConfig) string {
	if cfg.Driver == config.DriverSQLite {
		return "sqlite:" + cfg.Path
	}
	return fmt.Sprintf("%s://%s:%d/%s", cfg.Driver, cfg.Host, cfg.Port, cfg.Name)
}
