package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/elizabethangel02241/finance-tracker/internal/models"
	"github.com/elizabethangel02241/finance-tracker/internal/stats"
	"github.com/elizabethangel02241/finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BudgetHandler serves budget CRUD and the spend-vs-limit status view.
type BudgetHandler struct {
	DB *gorm.DB
}

func NewBudgetHandler(db *gorm.DB) *BudgetHandler {
	return &BudgetHandler{DB: db}
}

type budgetReq struct {
	Name              string `json:"name" binding:"required,max=64"`
	CategoryID        *uint  `json:"category_id"`
	AccountID         *uint  `json:"account_id"`
	Limit             string `json:"limit" binding:"required"`
	Period            string `json:"period"`
	AlertAtPercentage *int   `json:"alert_at_percentage"`
	Active            *bool  `json:"active"`
}

type budgetResp struct {
	ID                uint                `json:"id"`
	Name              string              `json:"name"`
	CategoryID        *uint               `json:"category_id,omitempty"`
	AccountID         *uint               `json:"account_id,omitempty"`
	Limit             string              `json:"limit"`
	Period            models.BudgetPeriod `json:"period"`
	AlertAtPercentage int                 `json:"alert_at_percentage"`
	Active            bool                `json:"active"`
}

func toBudgetResp(b *models.Budget) budgetResp {
	return budgetResp{
		ID:                b.ID,
		Name:              b.Name,
		CategoryID:        b.CategoryID,
		AccountID:         b.AccountID,
		Limit:             util.FormatPaise(b.LimitPaise),
		Period:            b.Period,
		AlertAtPercentage: b.AlertAtPercentage,
		Active:            b.Active,
	}
}

// validateScope checks the optional category/account links belong to
// the user. A budget scoped to both is accepted but the category wins
// during evaluation.
func (h *BudgetHandler) validateScope(userID uint, categoryID, accountID *uint) (string, bool) {
	if categoryID != nil {
		var category models.Category
		if err := h.DB.Where("id = ? AND (is_system = ? OR user_id = ?)", *categoryID, true, userID).
			First(&category).Error; err != nil {
			return "category not found", false
		}
	}
	if accountID != nil {
		var account models.Account
		if err := h.DB.Where("id = ? AND user_id = ?", *accountID, userID).
			First(&account).Error; err != nil {
			return "account not found", false
		}
	}
	return "", true
}

func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var budgets []models.Budget
	if err := h.DB.Where("user_id = ?", user.ID).Order("created_at ASC").Find(&budgets).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list budgets")
		return
	}

	items := make([]budgetResp, 0, len(budgets))
	for i := range budgets {
		items = append(items, toBudgetResp(&budgets[i]))
	}

	util.Success(c, util.Response{"items": items})
}

func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req budgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	limitPaise, err := util.ParseAmountPaise(req.Limit)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid limit")
		return
	}

	period := models.BudgetPeriod(req.Period)
	if period == "" {
		period = models.BudgetMonthly
	}
	if !period.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown period")
		return
	}

	alertAt := 80
	if req.AlertAtPercentage != nil {
		if *req.AlertAtPercentage < 1 || *req.AlertAtPercentage > 100 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "alert threshold must be 1-100")
			return
		}
		alertAt = *req.AlertAtPercentage
	}

	if msg, ok := h.validateScope(user.ID, req.CategoryID, req.AccountID); !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}

	budget := models.Budget{
		UserID:            user.ID,
		Name:              strings.TrimSpace(req.Name),
		CategoryID:        req.CategoryID,
		AccountID:         req.AccountID,
		LimitPaise:        limitPaise,
		Period:            period,
		AlertAtPercentage: alertAt,
		Active:            true,
	}
	if req.Active != nil {
		budget.Active = *req.Active
	}

	if err := h.DB.Create(&budget).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create budget")
		return
	}

	util.Success(c, util.Response{"budget": toBudgetResp(&budget)})
}

func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req budgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var budget models.Budget
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&budget).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "budget not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load budget")
		}
		return
	}

	limitPaise, err := util.ParseAmountPaise(req.Limit)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid limit")
		return
	}

	period := models.BudgetPeriod(req.Period)
	if period == "" {
		period = budget.Period
	}
	if !period.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown period")
		return
	}

	if req.AlertAtPercentage != nil {
		if *req.AlertAtPercentage < 1 || *req.AlertAtPercentage > 100 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "alert threshold must be 1-100")
			return
		}
		budget.AlertAtPercentage = *req.AlertAtPercentage
	}

	if msg, ok := h.validateScope(user.ID, req.CategoryID, req.AccountID); !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}

	budget.Name = strings.TrimSpace(req.Name)
	budget.CategoryID = req.CategoryID
	budget.AccountID = req.AccountID
	budget.LimitPaise = limitPaise
	budget.Period = period
	if req.Active != nil {
		budget.Active = *req.Active
	}

	if err := h.DB.Save(&budget).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save budget")
		return
	}

	util.Success(c, util.Response{"budget": toBudgetResp(&budget)})
}

func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Budget{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete budget")
		return
	}

	util.Success(c, util.Response{"message": "budget deleted"})
}

// BudgetStatusList evaluates every active budget against the current
// month's expenses. Each budget's own alert threshold is authoritative.
func (h *BudgetHandler) BudgetStatusList(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var budgets []models.Budget
	if err := h.DB.Where("user_id = ? AND active = ?", user.ID, true).Find(&budgets).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list budgets")
		return
	}

	now := time.Now()
	from := stats.MonthStart(now)

	var txns []models.Transaction
	if err := h.DB.Where("user_id = ? AND direction = ? AND occurred_at >= ? AND occurred_at <= ?",
		user.ID, models.DirectionExpense, from, now).
		Find(&txns).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return
	}

	type statusResp struct {
		BudgetID   uint    `json:"budget_id"`
		Name       string  `json:"name"`
		Limit      string  `json:"limit"`
		Spent      string  `json:"spent"`
		Percentage float64 `json:"percentage"`
		Alert      bool    `json:"alert"`
	}

	items := make([]statusResp, 0, len(budgets))
	for _, b := range budgets {
		st := stats.EvaluateBudget(b, txns, from, now)
		items = append(items, statusResp{
			BudgetID:   st.BudgetID,
			Name:       st.Name,
			Limit:      util.FormatPaise(st.LimitPaise),
			Spent:      util.FormatPaise(st.SpentPaise),
			Percentage: st.Percentage,
			Alert:      st.Alert,
		})
	}

	util.Success(c, util.Response{"items": items, "month": now.Format("2006-01")})
}
