package models

import "time"

// TransactionSource tags where a transaction came from.
type TransactionSource string

const (
	SourceManual TransactionSource = "manual"
	SourceSMS    TransactionSource = "sms"
	SourceOCR    TransactionSource = "ocr"
	SourceImport TransactionSource = "import"
	SourceAPI    TransactionSource = "api"
)

// Valid reports whether s is a known provenance tag.
func (s TransactionSource) Valid() bool {
	switch s {
	case SourceManual, SourceSMS, SourceOCR, SourceImport, SourceAPI:
		return true
	}
	return false
}

// Transaction represents a single money movement. AmountPaise is always
// non-negative; Direction encodes the sign.
type Transaction struct {
	ID          uint              `gorm:"primaryKey"`
	UserID      uint              `gorm:"index;not null"`
	AccountID   uint              `gorm:"index;not null"`
	CategoryID  *uint             `gorm:"index"`
	Direction   Direction         `gorm:"size:16;index;not null"`
	AmountPaise int64             `gorm:"not null"`
	Currency    string            `gorm:"size:8;default:INR"`
	Note        string            `gorm:"size:255"`
	Source      TransactionSource `gorm:"size:16;not null;default:manual"`
	OccurredAt  time.Time         `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Account  Account  `gorm:"constraint:OnDelete:CASCADE"`
	Category Category `gorm:"constraint:OnDelete:SET NULL"`
}
