package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/elizabethangel02241/finance-tracker/internal/models"
	"github.com/elizabethangel02241/finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// InvestmentHandler serves manually tracked holdings. Prices move only
// when the user edits them.
type InvestmentHandler struct {
	DB *gorm.DB
}

func NewInvestmentHandler(db *gorm.DB) *InvestmentHandler {
	return &InvestmentHandler{DB: db}
}

type investmentReq struct {
	Name         string `json:"name" binding:"required,max=64"`
	Type         string `json:"type"`
	Quantity     string `json:"quantity" binding:"required"`
	BuyPrice     string `json:"buy_price" binding:"required"`
	CurrentPrice string `json:"current_price"`
	PurchasedAt  string `json:"purchased_at"`
	AccountID    *uint  `json:"account_id"`
}

type investmentResp struct {
	ID           uint                  `json:"id"`
	Name         string                `json:"name"`
	Type         models.InvestmentType `json:"type"`
	Quantity     string                `json:"quantity"`
	BuyPrice     string                `json:"buy_price"`
	CurrentPrice string                `json:"current_price"`
	Invested     string                `json:"invested"`
	CurrentValue string                `json:"current_value"`
	PurchasedAt  *time.Time            `json:"purchased_at,omitempty"`
	AccountID    *uint                 `json:"account_id,omitempty"`
}

// holdingValue multiplies a paise price by a milli quantity.
func holdingValue(pricePaise, quantityMilli int64) int64 {
	return pricePaise * quantityMilli / 1000
}

func toInvestmentResp(inv *models.Investment) investmentResp {
	return investmentResp{
		ID:           inv.ID,
		Name:         inv.Name,
		Type:         inv.Type,
		Quantity:     util.FormatQuantityMilli(inv.QuantityMilli),
		BuyPrice:     util.FormatPaise(inv.BuyPricePaise),
		CurrentPrice: util.FormatPaise(inv.CurrentPricePaise),
		Invested:     util.FormatPaise(holdingValue(inv.BuyPricePaise, inv.QuantityMilli)),
		CurrentValue: util.FormatPaise(holdingValue(inv.CurrentPricePaise, inv.QuantityMilli)),
		PurchasedAt:  inv.PurchasedAt,
		AccountID:    inv.AccountID,
	}
}

func (h *InvestmentHandler) ListInvestments(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	q := h.DB.Where("user_id = ?", user.ID)
	if t := models.InvestmentType(c.Query("type")); t != "" {
		if !t.Valid() {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown investment type")
			return
		}
		q = q.Where("type = ?", t)
	}

	var investments []models.Investment
	if err := q.Order("created_at ASC").Find(&investments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list investments")
		return
	}

	items := make([]investmentResp, 0, len(investments))
	var investedPaise, currentPaise int64
	for i := range investments {
		resp := toInvestmentResp(&investments[i])
		investedPaise += holdingValue(investments[i].BuyPricePaise, investments[i].QuantityMilli)
		currentPaise += holdingValue(investments[i].CurrentPricePaise, investments[i].QuantityMilli)
		items = append(items, resp)
	}

	util.Success(c, util.Response{
		"items": items,
		"summary": gin.H{
			"invested":      util.FormatPaise(investedPaise),
			"current_value": util.FormatPaise(currentPaise),
			"gain":          util.FormatPaise(currentPaise - investedPaise),
		},
	})
}

func (h *InvestmentHandler) parseReq(c *gin.Context, req *investmentReq) (*models.Investment, bool) {
	user := currentUser(c)
	if user == nil {
		return nil, false
	}

	invType := models.InvestmentType(req.Type)
	if invType == "" {
		invType = models.InvestmentOther
	}
	if !invType.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown investment type")
		return nil, false
	}

	quantityMilli, err := util.ParseQuantityMilli(req.Quantity)
	if err != nil || quantityMilli == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid quantity")
		return nil, false
	}

	buyPaise, err := util.ParseAmountPaise(req.BuyPrice)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid buy price")
		return nil, false
	}

	currentPaise := buyPaise
	if req.CurrentPrice != "" {
		p, err := util.ParseAmountPaise(req.CurrentPrice)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid current price")
			return nil, false
		}
		currentPaise = p
	}

	inv := &models.Investment{
		UserID:            user.ID,
		Name:              strings.TrimSpace(req.Name),
		Type:              invType,
		QuantityMilli:     quantityMilli,
		BuyPricePaise:     buyPaise,
		CurrentPricePaise: currentPaise,
		AccountID:         req.AccountID,
	}

	if req.PurchasedAt != "" {
		t, err := util.ParseDate(req.PurchasedAt)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid purchase date")
			return nil, false
		}
		inv.PurchasedAt = &t
	}
	if req.AccountID != nil {
		var account models.Account
		if err := h.DB.Where("id = ? AND user_id = ?", *req.AccountID, user.ID).
			First(&account).Error; err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "account not found")
			return nil, false
		}
	}
	return inv, true
}

func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	var req investmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	inv, ok := h.parseReq(c, &req)
	if !ok {
		return
	}

	if err := h.DB.Create(inv).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create investment")
		return
	}

	util.Success(c, util.Response{"investment": toInvestmentResp(inv)})
}

func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req investmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var existing models.Investment
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&existing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "investment not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load investment")
		}
		return
	}

	inv, ok := h.parseReq(c, &req)
	if !ok {
		return
	}
	inv.ID = existing.ID
	inv.CreatedAt = existing.CreatedAt

	if err := h.DB.Save(inv).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save investment")
		return
	}

	util.Success(c, util.Response{"investment": toInvestmentResp(inv)})
}

func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Investment{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete investment")
		return
	}

	util.Success(c, util.Response{"message": "investment deleted"})
}
