package models

import "time"

// Profile holds per-user preferences and optional personal details.
type Profile struct {
	ID                 uint   `gorm:"primaryKey"`
	UserID             uint   `gorm:"uniqueIndex;not null"`
	FullName           string `gorm:"size:128"`
	Currency           string `gorm:"size:8;default:INR"`
	MonthlyIncomePaise int64  `gorm:"default:0"` // optional hint for savings-rate context
	CreatedAt          time.Time
	UpdatedAt          time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
