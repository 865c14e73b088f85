package handler

import (
	"net/http"
	"strings"

	"github.com/elizabethangel02241/finance-tracker/internal/models"
	"github.com/elizabethangel02241/finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccountHandler serves account CRUD. Balances here are opening values;
// after creation the balance moves only with transaction inserts.
type AccountHandler struct {
	DB              *gorm.DB
	DefaultCurrency string
}

func NewAccountHandler(db *gorm.DB, defaultCurrency string) *AccountHandler {
	if defaultCurrency == "" {
		defaultCurrency = "INR"
	}
	return &AccountHandler{DB: db, DefaultCurrency: defaultCurrency}
}

type accountResp struct {
	ID       uint               `json:"id"`
	Name     string             `json:"name"`
	Type     models.AccountType `json:"type"`
	Balance  string             `json:"balance"`
	Currency string             `json:"currency"`
	Active   bool               `json:"active"`
}

func toAccountResp(a *models.Account) accountResp {
	return accountResp{
		ID:       a.ID,
		Name:     a.Name,
		Type:     a.Type,
		Balance:  util.FormatPaise(a.Balance),
		Currency: a.Currency,
		Active:   a.Active,
	}
}

// ListAccounts returns the user's accounts, optionally filtered by
// active flag and type.
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	q := h.DB.Where("user_id = ?", user.ID)
	switch c.Query("active") {
	case "true", "1":
		q = q.Where("active = ?", true)
	case "false", "0":
		q = q.Where("active = ?", false)
	}
	if t := models.AccountType(c.Query("type")); t != "" {
		if !t.Valid() {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown account type")
			return
		}
		q = q.Where("type = ?", t)
	}

	var accounts []models.Account
	if err := q.Order("created_at ASC").Find(&accounts).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list accounts")
		return
	}

	items := make([]accountResp, 0, len(accounts))
	for i := range accounts {
		items = append(items, toAccountResp(&accounts[i]))
	}

	util.Success(c, util.Response{
		"items": items,
	})
}

type accountReq struct {
	Name     string `json:"name" binding:"required,max=64"`
	Type     string `json:"type" binding:"required"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req accountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	accType := models.AccountType(req.Type)
	if !accType.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown account type")
		return
	}

	var balance int64
	if req.Balance != "" {
		p, err := util.ParsePaise(req.Balance)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid balance")
			return
		}
		balance = p
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = h.DefaultCurrency
	}
	if !util.ValidCurrency(currency) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "currency must be a 3-letter code")
		return
	}

	account := models.Account{
		UserID:   user.ID,
		Name:     strings.TrimSpace(req.Name),
		Type:     accType,
		Balance:  balance,
		Currency: currency,
		Active:   true,
	}

	if err := h.DB.Create(&account).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create account")
		return
	}

	util.Success(c, util.Response{
		"account": toAccountResp(&account),
	})
}

type updateAccountReq struct {
	Name     string `json:"name" binding:"max=64"`
	Type     string `json:"type"`
	Currency string `json:"currency"`
	Active   *bool  `json:"active"`
}

// UpdateAccount edits name, type, currency and the active flag. The
// balance is deliberately not editable here.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var account models.Account
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load account")
		}
		return
	}

	if req.Name != "" {
		account.Name = strings.TrimSpace(req.Name)
	}
	if req.Type != "" {
		accType := models.AccountType(req.Type)
		if !accType.Valid() {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown account type")
			return
		}
		account.Type = accType
	}
	if req.Currency != "" {
		currency := strings.ToUpper(strings.TrimSpace(req.Currency))
		if !util.ValidCurrency(currency) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "currency must be a 3-letter code")
			return
		}
		account.Currency = currency
	}
	if req.Active != nil {
		account.Active = *req.Active
	}

	if err := h.DB.Save(&account).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save account")
		return
	}

	util.Success(c, util.Response{
		"account": toAccountResp(&account),
	})
}

// DeleteAccount soft-deletes by default (clears the active flag).
// ?purge=1 removes the account and cascades its transactions.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var account models.Account
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load account")
		}
		return
	}

	if c.Query("purge") == "1" {
		err := h.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("account_id = ? AND user_id = ?", account.ID, user.ID).
				Delete(&models.Transaction{}).Error; err != nil {
				return err
			}
			return tx.Delete(&account).Error
		})
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete account")
			return
		}
		util.Success(c, util.Response{"message": "account and transactions deleted"})
		return
	}

	if err := h.DB.Model(&account).Update("active", false).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to deactivate account")
		return
	}

	util.Success(c, util.Response{"message": "account deactivated"})
}
