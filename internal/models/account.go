package models

import "time"

// AccountType is a closed enumeration of supported account kinds.
type AccountType string

const (
	AccountCash       AccountType = "cash"
	AccountBank       AccountType = "bank"
	AccountCreditCard AccountType = "credit_card"
	AccountUPI        AccountType = "upi"
	AccountInvestment AccountType = "investment"
	AccountLoan       AccountType = "loan"
	AccountOther      AccountType = "other"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountCash, AccountBank, AccountCreditCard, AccountUPI,
		AccountInvestment, AccountLoan, AccountOther:
		return true
	}
	return false
}

// Account represents a money source or destination owned by a user.
// Balance is a stored running total in paise; it is adjusted only as a
// side effect of transaction insertion, never re-derived from history.
type Account struct {
	ID        uint        `gorm:"primaryKey"`
	UserID    uint        `gorm:"index;not null"`
	Name      string      `gorm:"size:64;not null"`
	Type      AccountType `gorm:"size:16;index;not null"`
	Balance   int64       `gorm:"not null;default:0"` // paise
	Currency  string      `gorm:"size:8;default:INR"`
	Active    bool        `gorm:"index;not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
