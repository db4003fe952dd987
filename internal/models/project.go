package models

import "time"

// Project status values as stored in the projects table.
const (
	ProjectBacklog    = "Backlog"
	ProjectInProgress = "Em andamento"
	ProjectAtRisk     = "Em Risco"
	ProjectCompleted  = "Concluído"
	ProjectCancelled  = "Cancelado"
)

// ProjectStatuses lists every valid project status in display order.
var ProjectStatuses = []string{
	ProjectBacklog,
	ProjectInProgress,
	ProjectAtRisk,
	ProjectCompleted,
	ProjectCancelled,
}

// ValidProjectStatus reports whether s is one of ProjectStatuses.
func ValidProjectStatus(s string) bool {
	for _, v := range ProjectStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Project is a tracked initiative in the portfolio.
type Project struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:256;not null"`
	Code        string `gorm:"size:64"`
	Sponsor     string `gorm:"size:128;index"`
	Manager     string `gorm:"size:128"`
	StartDate   *time.Time
	EndDate     *time.Time
	Status      string `gorm:"size:32;default:Backlog;index"`
	Priority    string `gorm:"size:16"`
	Scope       string `gorm:"type:text"`
	ResultsText string `gorm:"type:text"`
	Notes       string `gorm:"type:text"`
	Archived    bool   `gorm:"default:false;index"`

	// EndDateRevisions counts how many times the end date was moved.
	EndDateRevisions int `gorm:"column:date_changes;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
