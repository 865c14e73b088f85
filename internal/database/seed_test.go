package database

import (
	"testing"

	"github.com/elizabethangel02241/finance-tracker/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeedCategories_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := SeedCategories(db); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := SeedCategories(db); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var total, incomeCount, expenseCount int64
	db.Model(&models.Category{}).Where("is_system = ?", true).Count(&total)
	db.Model(&models.Category{}).Where("is_system = ? AND direction = ?", true, models.DirectionIncome).Count(&incomeCount)
	db.Model(&models.Category{}).Where("is_system = ? AND direction = ?", true, models.DirectionExpense).Count(&expenseCount)

	if total != 18 {
		t.Errorf("system categories = %d, want 18", total)
	}
	if incomeCount != 5 {
		t.Errorf("income presets = %d, want 5", incomeCount)
	}
	if expenseCount != 13 {
		t.Errorf("expense presets = %d, want 13", expenseCount)
	}
}
