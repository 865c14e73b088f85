package models

import "time"

// BudgetPeriod is the cadence a budget limit applies to.
type BudgetPeriod string

const (
	BudgetWeekly  BudgetPeriod = "weekly"
	BudgetMonthly BudgetPeriod = "monthly"
	BudgetYearly  BudgetPeriod = "yearly"
)

// Valid reports whether p is a known budget period.
func (p BudgetPeriod) Valid() bool {
	return p == BudgetWeekly || p == BudgetMonthly || p == BudgetYearly
}

// Budget is a spending limit scoped to a category or an account.
// The per-budget AlertAtPercentage is authoritative for alerting.
type Budget struct {
	ID                uint         `gorm:"primaryKey"`
	UserID            uint         `gorm:"index;not null"`
	Name              string       `gorm:"size:64;not null"`
	CategoryID        *uint        `gorm:"index"`
	AccountID         *uint        `gorm:"index"`
	LimitPaise        int64        `gorm:"not null"`
	Period            BudgetPeriod `gorm:"size:16;not null;default:monthly"`
	AlertAtPercentage int          `gorm:"not null;default:80"`
	Active            bool         `gorm:"index;not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Category Category `gorm:"constraint:OnDelete:SET NULL"`
	Account  Account  `gorm:"constraint:OnDelete:SET NULL"`
}
