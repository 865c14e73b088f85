package models

import "time"

// BillingCycle is the cadence a subscription renews on.
type BillingCycle string

const (
	BillingWeekly    BillingCycle = "weekly"
	BillingMonthly   BillingCycle = "monthly"
	BillingQuarterly BillingCycle = "quarterly"
	BillingYearly    BillingCycle = "yearly"
)

// Valid reports whether c is a known billing cycle.
func (c BillingCycle) Valid() bool {
	switch c {
	case BillingWeekly, BillingMonthly, BillingQuarterly, BillingYearly:
		return true
	}
	return false
}

// Subscription is a recurring charge with a reminder lead time.
type Subscription struct {
	ID            uint         `gorm:"primaryKey"`
	UserID        uint         `gorm:"index;not null"`
	Name          string       `gorm:"size:64;not null"`
	AmountPaise   int64        `gorm:"not null"`
	BillingCycle  BillingCycle `gorm:"size:16;not null;default:monthly"`
	NextBillingAt time.Time    `gorm:"index;not null"`
	RemindDays    int          `gorm:"not null;default:3"`
	CategoryID    *uint        `gorm:"index"`
	AccountID     *uint        `gorm:"index"`
	Active        bool         `gorm:"index;not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Category Category `gorm:"constraint:OnDelete:SET NULL"`
	Account  Account  `gorm:"constraint:OnDelete:SET NULL"`
}
