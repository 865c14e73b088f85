package models

import "time"

// Goal is a savings target. Completed is set explicitly by the user,
// never derived from CurrentPaise reaching TargetPaise.
type Goal struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index;not null"`
	Name         string `gorm:"size:64;not null"`
	TargetPaise  int64  `gorm:"not null"`
	CurrentPaise int64  `gorm:"not null;default:0"`
	TargetDate   *time.Time
	Completed    bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
