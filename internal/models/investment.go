package models

import "time"

// InvestmentType is a closed enumeration of supported holdings.
type InvestmentType string

const (
	InvestmentStock      InvestmentType = "stock"
	InvestmentMutualFund InvestmentType = "mutual_fund"
	InvestmentFD         InvestmentType = "fd"
	InvestmentGold       InvestmentType = "gold"
	InvestmentCrypto     InvestmentType = "crypto"
	InvestmentOther      InvestmentType = "other"
)

// Valid reports whether t is a known investment type.
func (t InvestmentType) Valid() bool {
	switch t {
	case InvestmentStock, InvestmentMutualFund, InvestmentFD,
		InvestmentGold, InvestmentCrypto, InvestmentOther:
		return true
	}
	return false
}

// Investment is a manually tracked holding; there is no automated
// price refresh. Quantity is fixed-point with 3 decimals (milli units).
type Investment struct {
	ID                uint           `gorm:"primaryKey"`
	UserID            uint           `gorm:"index;not null"`
	Name              string         `gorm:"size:64;not null"`
	Type              InvestmentType `gorm:"size:16;index;not null;default:other"`
	QuantityMilli     int64          `gorm:"not null;default:0"`
	BuyPricePaise     int64          `gorm:"not null"`
	CurrentPricePaise int64          `gorm:"not null"`
	PurchasedAt       *time.Time
	AccountID         *uint `gorm:"index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Account Account `gorm:"constraint:OnDelete:SET NULL"`
}
