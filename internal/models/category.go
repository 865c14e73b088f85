package models

import "time"

// Direction classifies money movement for categories and transactions.
type Direction string

const (
	DirectionIncome   Direction = "income"
	DirectionExpense  Direction = "expense"
	DirectionTransfer Direction = "transfer" // transactions only
)

// ValidForCategory reports whether d is allowed on a category.
func (d Direction) ValidForCategory() bool {
	return d == DirectionIncome || d == DirectionExpense
}

// ValidForTransaction reports whether d is allowed on a transaction.
func (d Direction) ValidForTransaction() bool {
	return d == DirectionIncome || d == DirectionExpense || d == DirectionTransfer
}

// Category represents income/expense category. System categories are
// shared presets: UserID is 0 and IsSystem is true, readable by everyone.
type Category struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null;default:0"`
	Name      string    `gorm:"size:64;not null"`
	Direction Direction `gorm:"size:16;index;not null"`
	ParentID  *uint     `gorm:"index"`
	IsSystem  bool      `gorm:"index;not null;default:false"`
	Icon      string    `gorm:"size:32"`
	Color     string    `gorm:"size:16"`
	Keywords  string    `gorm:"size:512"` // comma separated, for future auto-categorization
	CreatedAt time.Time
	UpdatedAt time.Time
}
