package database

import (
	"fmt"

	"github.com/elizabethangel02241/finance-tracker/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Profile{},
		&models.Account{},
		&models.Category{},
		&models.Transaction{},
		&models.Budget{},
		&models.Goal{},
		&models.Subscription{},
		&models.Loan{},
		&models.Investment{},
		&models.Receipt{},
		&models.ActivityLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
