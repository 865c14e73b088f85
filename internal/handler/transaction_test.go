package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/elizabethangel02241/finance-tracker/internal/database"
	"github.com/elizabethangel02241/finance-tracker/internal/models"

	"github.com/gin-gonic/gin"
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
		t.Fatalf("open db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUserAccount(t *testing.T, db *gorm.DB, balancePaise int64) (*models.User, *models.Account) {
	t.Helper()
	user := &models.User{Username: "asha", PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	account := &models.Account{
		UserID:   user.ID,
		Name:     "HDFC Savings",
		Type:     models.AccountBank,
		Balance:  balancePaise,
		Currency: "INR",
		Active:   true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("create account: %v", err)
	}
	return user, account
}

// testRouter mounts the transaction routes behind a stub auth layer
// that injects the given user.
func testRouter(db *gorm.DB, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("currentUser", user)
	})
	h := NewTransactionHandler(db)
	r.POST("/api/transactions", h.CreateTransaction)
	r.GET("/api/transactions", h.ListTransactions)
	r.PUT("/api/transactions/:id", h.UpdateTransaction)
	r.DELETE("/api/transactions/:id", h.DeleteTransaction)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func accountBalance(t *testing.T, db *gorm.DB, id uint) int64 {
	t.Helper()
	var account models.Account
	if err := db.First(&account, id).Error; err != nil {
		t.Fatalf("reload account: %v", err)
	}
	return account.Balance
}

func TestCreateExpenseDebitsBalance(t *testing.T) {
	db := openTestDB(t)
	user, account := seedUserAccount(t, db, 100000) // 1000.00

	r := testRouter(db, user)
	w := doJSON(t, r, http.MethodPost, "/api/transactions", gin.H{
		"account_id": account.ID,
		"direction":  "expense",
		"amount":     "150.00",
		"note":       "groceries",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	if got := accountBalance(t, db, account.ID); got != 85000 {
		t.Fatalf("balance = %d, want 85000", got)
	}
}

func TestCreateIncomeCreditsBalance(t *testing.T) {
	db := openTestDB(t)
	user, account := seedUserAccount(t, db, 100000)

	r := testRouter(db, user)
	w := doJSON(t, r, http.MethodPost, "/api/transactions", gin.H{
		"account_id": account.ID,
		"direction":  "income",
		"amount":     "2500",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	if got := accountBalance(t, db, account.ID); got != 350000 {
		t.Fatalf("balance = %d, want 350000", got)
	}
}

func TestCreateTransferLeavesBalance(t *testing.T) {
	db := openTestDB(t)
	user, account := seedUserAccount(t, db, 100000)

	r := testRouter(db, user)
	w := doJSON(t, r, http.MethodPost, "/api/transactions", gin.H{
		"account_id": account.ID,
		"direction":  "transfer",
		"amount":     "400.00",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	if got := accountBalance(t, db, account.ID); got != 100000 {
		t.Fatalf("balance = %d, want 100000", got)
	}
}

func TestCreateRejectsMalformedAmount(t *testing.T) {
	db := openTestDB(t)
	user, account := seedUserAccount(t, db, 100000)
	r := testRouter(db, user)

	for _, amount := range []string{"12.345", "abc", "-5", "0"} {
		w := doJSON(t, r, http.MethodPost, "/api/transactions", gin.H{
			"account_id": account.ID,
			"direction":  "expense",
			"amount":     amount,
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("amount %q: status = %d, want 400", amount, w.Code)
		}
	}

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	if count != 0 {
		t.Fatalf("transactions written = %d, want 0", count)
	}
	if got := accountBalance(t, db, account.ID); got != 100000 {
		t.Fatalf("balance = %d, want untouched 100000", got)
	}
}

func TestCreateRejectsUnknownDirection(t *testing.T) {
	db := openTestDB(t)
	user, account := seedUserAccount(t, db, 100000)
	r := testRouter(db, user)

	w := doJSON(t, r, http.MethodPost, "/api/transactions", gin.H{
		"account_id": account.ID,
		"direction":  "refund",
		"amount":     "10.00",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateRejectsForeignAccount(t *testing.T) {
	db := openTestDB(t)
	_, account := seedUserAccount(t, db, 100000)

	other := &models.User{Username: "ravi", PasswordHash: "x"}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	r := testRouter(db, other)
	w := doJSON(t, r, http.MethodPost, "/api/transactions", gin.H{
		"account_id": account.ID,
		"direction":  "expense",
		"amount":     "10.00",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if got := accountBalance(t, db, account.ID); got != 100000 {
		t.Fatalf("balance = %d, want untouched 100000", got)
	}
}

func TestDeleteDoesNotReadjustBalance(t *testing.T) {
	db := openTestDB(t)
	user, account := seedUserAccount(t, db, 100000)
	r := testRouter(db, user)

	w := doJSON(t, r, http.MethodPost, "/api/transactions", gin.H{
		"account_id": account.ID,
		"direction":  "expense",
		"amount":     "150.00",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d", w.Code)
	}

	var txn models.Transaction
	if err := db.Where("user_id = ?", user.ID).First(&txn).Error; err != nil {
		t.Fatalf("load transaction: %v", err)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/transactions/"+itoa(txn.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	// balance moves only on insertion
	if got := accountBalance(t, db, account.ID); got != 85000 {
		t.Fatalf("balance = %d, want 85000", got)
	}
}

func TestUpdateKeepsCategoryWhenAbsent(t *testing.T) {
	db := openTestDB(t)
	user, account := seedUserAccount(t, db, 100000)

	category := &models.Category{
		UserID:    user.ID,
		Name:      "Groceries",
		Direction: models.DirectionExpense,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}

	r := testRouter(db, user)
	w := doJSON(t, r, http.MethodPost, "/api/transactions", gin.H{
		"account_id":  account.ID,
		"category_id": category.ID,
		"direction":   "expense",
		"amount":      "150.00",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}

	var txn models.Transaction
	if err := db.Where("user_id = ?", user.ID).First(&txn).Error; err != nil {
		t.Fatalf("load transaction: %v", err)
	}

	// editing only the note must not touch the category
	w = doJSON(t, r, http.MethodPut, "/api/transactions/"+itoa(txn.ID), gin.H{
		"note": "weekly shop",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}
	if err := db.First(&txn, txn.ID).Error; err != nil {
		t.Fatalf("reload transaction: %v", err)
	}
	if txn.CategoryID == nil || *txn.CategoryID != category.ID {
		t.Fatalf("category cleared by note-only edit: %v", txn.CategoryID)
	}
	if txn.Note != "weekly shop" {
		t.Fatalf("note = %q", txn.Note)
	}

	// an explicit zero clears it
	w = doJSON(t, r, http.MethodPut, "/api/transactions/"+itoa(txn.ID), gin.H{
		"category_id": 0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("clear status = %d, body %s", w.Code, w.Body.String())
	}
	if err := db.First(&txn, txn.ID).Error; err != nil {
		t.Fatalf("reload transaction: %v", err)
	}
	if txn.CategoryID != nil {
		t.Fatalf("category not cleared: %v", *txn.CategoryID)
	}
}

func TestListSummaryCoversFilteredSet(t *testing.T) {
	db := openTestDB(t)
	user, account := seedUserAccount(t, db, 0)
	r := testRouter(db, user)

	for _, in := range []struct {
		direction string
		amount    string
	}{
		{"income", "8000.00"},
		{"expense", "1500.00"},
		{"expense", "500.00"},
		{"transfer", "9999.00"},
	} {
		w := doJSON(t, r, http.MethodPost, "/api/transactions", gin.H{
			"account_id": account.ID,
			"direction":  in.direction,
			"amount":     in.amount,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("create %s %s: status = %d", in.direction, in.amount, w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/transactions?page_size=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Total   int64 `json:"total"`
			Summary struct {
				IncomePaise  int64 `json:"income_paise"`
				ExpensePaise int64 `json:"expense_paise"`
				NetPaise     int64 `json:"net_paise"`
			} `json:"summary"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Total != 4 {
		t.Fatalf("total = %d, want 4", resp.Data.Total)
	}
	if resp.Data.Summary.IncomePaise != 800000 {
		t.Fatalf("income = %d, want 800000", resp.Data.Summary.IncomePaise)
	}
	if resp.Data.Summary.ExpensePaise != 200000 {
		t.Fatalf("expense = %d, want 200000", resp.Data.Summary.ExpensePaise)
	}
	if resp.Data.Summary.NetPaise != 600000 {
		t.Fatalf("net = %d, want 600000", resp.Data.Summary.NetPaise)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
