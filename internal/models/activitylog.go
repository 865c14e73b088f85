package models

import "time"

// ActivityLog records mutating operations for auditing.
type ActivityLog struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    *uint  `gorm:"index"`
	Method    string `gorm:"size:16"`
	Path      string `gorm:"size:255"`
	Action    string `gorm:"size:2048"`
	IP        string `gorm:"size:64"`
	UserAgent string `gorm:"size:255"`
	CreatedAt time.Time
}
