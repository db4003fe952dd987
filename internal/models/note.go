package models

import (
	"strings"
	"time"
)

// Note categories offered by the docs & gaps page.
const (
	NoteGap  = "Gap"
	NoteLink = "Link"
)

// Note is a project annotation. Notes whose category mentions "Gap" are
// blocking issues.
type Note struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	ProjectID   uint   `gorm:"index"`
	Category    string `gorm:"size:64"`
	Description string `gorm:"type:text"`
	LinkURL     string `gorm:"size:512"`
	CreatedAt   time.Time
}

// TableName keeps the historical table name.
func (Note) TableName() string { return "project_notes" }

// IsGap reports whether the note is a blocking gap.
func (n Note) IsGap() bool {
	return strings.Contains(n.Category, NoteGap)
}
