package models

// Sponsor is an organizational area that owns projects.
type Sponsor struct {
	Name string `gorm:"primaryKey;size:128"`
}

// TeamMember is a person who can manage projects or own tasks.
type TeamMember struct {
	ID    uint   `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"size:128;not null"`
	Role  string `gorm:"size:64"`
	Area  string `gorm:"size:128"`
	Email string `gorm:"size:256"`
	Phone string `gorm:"size:32"`
}
