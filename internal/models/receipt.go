package models

import "time"

// ReceiptStatus tracks OCR extraction state for an uploaded receipt.
type ReceiptStatus string

const (
	ReceiptPending ReceiptStatus = "pending"
	ReceiptDone    ReceiptStatus = "done"
	ReceiptFailed  ReceiptStatus = "failed"
)

// Receipt stores metadata for an uploaded receipt image. Extraction is
// performed elsewhere; this service only records the outcome.
type Receipt struct {
	ID            uint          `gorm:"primaryKey"`
	UserID        uint          `gorm:"index;not null"`
	FileName      string        `gorm:"size:255;not null"`
	StoredPath    string        `gorm:"size:512;not null"`
	TransactionID *uint         `gorm:"index"`
	Status        ReceiptStatus `gorm:"size:16;not null;default:pending"`
	ExtractedText string        `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Transaction Transaction `gorm:"constraint:OnDelete:SET NULL"`
}
