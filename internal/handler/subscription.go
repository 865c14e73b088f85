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

// SubscriptionHandler serves recurring-charge CRUD and the upcoming
// reminder view.
type SubscriptionHandler struct {
	DB *gorm.DB
}

func NewSubscriptionHandler(db *gorm.DB) *SubscriptionHandler {
	return &SubscriptionHandler{DB: db}
}

type subscriptionReq struct {
	Name         string `json:"name" binding:"required,max=64"`
	Amount       string `json:"amount" binding:"required"`
	BillingCycle string `json:"billing_cycle"`
	NextBilling  string `json:"next_billing" binding:"required"`
	RemindDays   *int   `json:"remind_days"`
	CategoryID   *uint  `json:"category_id"`
	AccountID    *uint  `json:"account_id"`
	Active       *bool  `json:"active"`
}

type subscriptionResp struct {
	ID           uint                `json:"id"`
	Name         string              `json:"name"`
	Amount       string              `json:"amount"`
	BillingCycle models.BillingCycle `json:"billing_cycle"`
	NextBilling  time.Time           `json:"next_billing"`
	RemindDays   int                 `json:"remind_days"`
	DueInDays    int                 `json:"due_in_days"`
	CategoryID   *uint               `json:"category_id,omitempty"`
	AccountID    *uint               `json:"account_id,omitempty"`
	Active       bool                `json:"active"`
}

func toSubscriptionResp(s *models.Subscription, now time.Time) subscriptionResp {
	return subscriptionResp{
		ID:           s.ID,
		Name:         s.Name,
		Amount:       util.FormatPaise(s.AmountPaise),
		BillingCycle: s.BillingCycle,
		NextBilling:  s.NextBillingAt,
		RemindDays:   s.RemindDays,
		DueInDays:    stats.DueInDays(now, s.NextBillingAt),
		CategoryID:   s.CategoryID,
		AccountID:    s.AccountID,
		Active:       s.Active,
	}
}

func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
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

	var subs []models.Subscription
	if err := q.Order("next_billing_at ASC").Find(&subs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list subscriptions")
		return
	}

	now := time.Now()
	items := make([]subscriptionResp, 0, len(subs))
	for i := range subs {
		items = append(items, toSubscriptionResp(&subs[i], now))
	}

	util.Success(c, util.Response{"items": items})
}

// UpcomingSubscriptions returns active subscriptions inside their
// reminder window, overdue ones included.
func (h *SubscriptionHandler) UpcomingSubscriptions(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var subs []models.Subscription
	if err := h.DB.Where("user_id = ? AND active = ?", user.ID, true).
		Order("next_billing_at ASC").Find(&subs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list subscriptions")
		return
	}

	now := time.Now()
	items := make([]subscriptionResp, 0, len(subs))
	for i := range subs {
		resp := toSubscriptionResp(&subs[i], now)
		if resp.DueInDays <= subs[i].RemindDays {
			items = append(items, resp)
		}
	}

	util.Success(c, util.Response{"items": items})
}

func (h *SubscriptionHandler) parseReq(c *gin.Context, req *subscriptionReq) (*models.Subscription, bool) {
	user := currentUser(c)
	if user == nil {
		return nil, false
	}

	amountPaise, err := util.ParseAmountPaise(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return nil, false
	}

	cycle := models.BillingCycle(req.BillingCycle)
	if cycle == "" {
		cycle = models.BillingMonthly
	}
	if !cycle.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown billing cycle")
		return nil, false
	}

	nextBilling, err := util.ParseDate(req.NextBilling)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid next billing date")
		return nil, false
	}

	remindDays := 3
	if req.RemindDays != nil {
		if *req.RemindDays < 0 || *req.RemindDays > 90 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "remind days must be 0-90")
			return nil, false
		}
		remindDays = *req.RemindDays
	}

	if req.CategoryID != nil {
		var category models.Category
		if err := h.DB.Where("id = ? AND (is_system = ? OR user_id = ?)", *req.CategoryID, true, user.ID).
			First(&category).Error; err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category not found")
			return nil, false
		}
	}
	if req.AccountID != nil {
		var account models.Account
		if err := h.DB.Where("id = ? AND user_id = ?", *req.AccountID, user.ID).
			First(&account).Error; err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "account not found")
			return nil, false
		}
	}

	sub := &models.Subscription{
		UserID:        user.ID,
		Name:          strings.TrimSpace(req.Name),
		AmountPaise:   amountPaise,
		BillingCycle:  cycle,
		NextBillingAt: nextBilling,
		RemindDays:    remindDays,
		CategoryID:    req.CategoryID,
		AccountID:     req.AccountID,
		Active:        true,
	}
	if req.Active != nil {
		sub.Active = *req.Active
	}
	return sub, true
}

func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req subscriptionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	sub, ok := h.parseReq(c, &req)
	if !ok {
		return
	}

	if err := h.DB.Create(sub).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create subscription")
		return
	}

	util.Success(c, util.Response{"subscription": toSubscriptionResp(sub, time.Now())})
}

func (h *SubscriptionHandler) UpdateSubscription(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req subscriptionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var existing models.Subscription
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&existing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "subscription not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load subscription")
		}
		return
	}

	sub, ok := h.parseReq(c, &req)
	if !ok {
		return
	}
	sub.ID = existing.ID
	sub.CreatedAt = existing.CreatedAt

	if err := h.DB.Save(sub).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save subscription")
		return
	}

	util.Success(c, util.Response{"subscription": toSubscriptionResp(sub, time.Now())})
}

func (h *SubscriptionHandler) DeleteSubscription(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Subscription{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete subscription")
		return
	}

	util.Success(c, util.Response{"message": "subscription deleted"})
}
