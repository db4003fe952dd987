package models

import "time"

// Task status values. The kanban board renders them in this order.
const (
	TaskTodo    = "A fazer"
	TaskDoing   = "Fazendo"
	TaskBlocked = "Bloqueado"
	TaskDone    = "Feito"
)

// TaskStatuses lists every valid task status in board order.
var TaskStatuses = []string{TaskTodo, TaskDoing, TaskBlocked, TaskDone}

// ValidTaskStatus reports whether s is one of TaskStatuses.
func ValidTaskStatus(s string) bool {
	for _, v := range TaskStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Task is a unit of work attached to a project.
type Task struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	ProjectID uint   `gorm:"index"`
	Title     string `gorm:"size:256;not null"`
	Owner     string `gorm:"size:128"`
	StartDate *time.Time
	EndDate   *time.Time
	Status    string `gorm:"size:16;default:A fazer;index"`
	Priority  string `gorm:"size:16"`
	Effort    int
	Progress  int `gorm:"default:0"`
}

// ClampProgress limits p to the 0..100 range.
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
