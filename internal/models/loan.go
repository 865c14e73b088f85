package models

import "time"

// Loan tracks an outstanding borrowing. Interest rate is stored in
// basis points so 8.5% p.a. is 850.
type Loan struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"index;not null"`
	Name            string `gorm:"size:64;not null"`
	PrincipalPaise  int64  `gorm:"not null"`
	RemainingPaise  int64  `gorm:"not null"`
	InterestRateBps int64  `gorm:"default:0"`
	EMIPaise        int64  `gorm:"default:0"`
	StartDate       *time.Time
	EndDate         *time.Time
	AccountID       *uint `gorm:"index"`
	Active          bool  `gorm:"index;not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Account Account `gorm:"constraint:OnDelete:SET NULL"`
}
