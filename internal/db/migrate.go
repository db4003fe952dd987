// Package db opens the portfolio database, migrates its schema and seeds
// reference data.
package db

import (
	"fmt"
	"time"

	"github.com/zulandar/portfolio/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllModels returns every GORM model for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Project{},
		&models.Task{},
		&models.Risk{},
		&models.Note{},
		&models.Sponsor{},
		&models.TeamMember{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// DropAll drops every table managed by AllModels.
func DropAll(db *gorm.DB) error {
	if err := db.Migrator().DropTable(AllModels()...); err != nil {
		return fmt.Errorf("db: drop tables: %w", err)
	}
	return nil
}

// SeedSponsors inserts the given areas, leaving existing ones untouched.
func SeedSponsors(db *gorm.DB, areas []string) error {
	for _, name := range areas {
		result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Sponsor{Name: name})
		if result.Error != nil {
			return fmt.Errorf("db: seed sponsor %q: %w", name, result.Error)
		}
	}
	return nil
}

// SeedExample creates a sample project with one starter task when the
// projects table is empty. It reports whether anything was inserted.
func SeedExample(db *gorm.DB, today time.Time) (bool, error) {
	var count int64
	if err := db.Model(&models.Project{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("db: count projects: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	start := today
	end := today.AddDate(0, 0, 30)
	project := models.Project{
		Name:      "Projeto Exemplo",
		Sponsor:   "Geral",
		Manager:   "Gerente",
		StartDate: &start,
		EndDate:   &end,
		Status:    models.ProjectInProgress,
	}
	if err := db.Create(&project).Error; err != nil {
		return false, fmt.Errorf("db: seed example project: %w", err)
	}

	task := models.Task{
		ProjectID: project.ID,
		Title:     "Tarefa Inicial",
		StartDate: &start,
		EndDate:   &start,
		Status:    models.TaskTodo,
	}
	if err := db.Create(&task).Error; err != nil {
		return false, fmt.Errorf("db: seed example task: %w", err)
	}
	return true, nil
}
