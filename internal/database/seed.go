package database

import (
	"fmt"

	"github.com/elizabethangel02241/finance-tracker/internal/models"

	"gorm.io/gorm"
)

// systemCategories are the shared presets every user can read: five
// income and thirteen expense categories, with keyword lists reserved
// for auto-categorization.
var systemCategories = []models.Category{
	{Name: "Salary", Direction: models.DirectionIncome, Icon: "briefcase", Color: "#2e7d32", Keywords: "salary,payroll,credited,wages"},
	{Name: "Business", Direction: models.DirectionIncome, Icon: "storefront", Color: "#388e3c", Keywords: "invoice,client,payment received"},
	{Name: "Interest", Direction: models.DirectionIncome, Icon: "percent", Color: "#43a047", Keywords: "interest,fd,deposit"},
	{Name: "Dividends", Direction: models.DirectionIncome, Icon: "trending-up", Color: "#4caf50", Keywords: "dividend,payout"},
	{Name: "Gifts Received", Direction: models.DirectionIncome, Icon: "gift", Color: "#66bb6a", Keywords: "gift,shagun"},

	{Name: "Food & Dining", Direction: models.DirectionExpense, Icon: "utensils", Color: "#e53935", Keywords: "restaurant,swiggy,zomato,cafe"},
	{Name: "Groceries", Direction: models.DirectionExpense, Icon: "shopping-basket", Color: "#d81b60", Keywords: "grocery,bigbasket,blinkit,kirana"},
	{Name: "Transport", Direction: models.DirectionExpense, Icon: "bus", Color: "#8e24aa", Keywords: "uber,ola,metro,fuel,petrol"},
	{Name: "Rent", Direction: models.DirectionExpense, Icon: "home", Color: "#5e35b1", Keywords: "rent,landlord"},
	{Name: "Utilities", Direction: models.DirectionExpense, Icon: "bolt", Color: "#3949ab", Keywords: "electricity,water,gas,broadband,recharge"},
	{Name: "Shopping", Direction: models.DirectionExpense, Icon: "shopping-bag", Color: "#1e88e5", Keywords: "amazon,flipkart,myntra"},
	{Name: "Entertainment", Direction: models.DirectionExpense, Icon: "film", Color: "#039be5", Keywords: "movie,netflix,hotstar,spotify"},
	{Name: "Health", Direction: models.DirectionExpense, Icon: "heart-pulse", Color: "#00897b", Keywords: "pharmacy,hospital,doctor,apollo"},
	{Name: "Education", Direction: models.DirectionExpense, Icon: "graduation-cap", Color: "#43a047", Keywords: "course,tuition,books,fees"},
	{Name: "Travel", Direction: models.DirectionExpense, Icon: "plane", Color: "#fb8c00", Keywords: "flight,hotel,irctc,makemytrip"},
	{Name: "EMI & Loans", Direction: models.DirectionExpense, Icon: "landmark", Color: "#f4511e", Keywords: "emi,loan,repayment"},
	{Name: "Insurance", Direction: models.DirectionExpense, Icon: "shield", Color: "#6d4c41", Keywords: "premium,lic,policy"},
	{Name: "Miscellaneous", Direction: models.DirectionExpense, Icon: "ellipsis", Color: "#757575", Keywords: ""},
}

// SeedCategories inserts the system category presets. It is idempotent:
// a preset already present (by name) is skipped.
func SeedCategories(db *gorm.DB) error {
	for _, c := range systemCategories {
		c.IsSystem = true
		c.UserID = 0

		var count int64
		if err := db.Model(&models.Category{}).
			Where("is_system = ? AND name = ?", true, c.Name).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check system category %q: %w", c.Name, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&c).Error; err != nil {
			return fmt.Errorf("seed system category %q: %w", c.Name, err)
		}
	}
	return nil
}
