package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elizabethangel02241/finance-tracker/internal/models"
	"github.com/elizabethangel02241/finance-tracker/internal/stats"
	"github.com/elizabethangel02241/finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LoanHandler serves loan CRUD and the payoff progress view.
type LoanHandler struct {
	DB *gorm.DB
}

func NewLoanHandler(db *gorm.DB) *LoanHandler {
	return &LoanHandler{DB: db}
}

type loanReq struct {
	Name         string `json:"name" binding:"required,max=64"`
	Principal    string `json:"principal" binding:"required"`
	Remaining    string `json:"remaining" binding:"required"`
	InterestRate string `json:"interest_rate"` // percent p.a., e.g. "8.5"
	EMI          string `json:"emi"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	AccountID    *uint  `json:"account_id"`
	Active       *bool  `json:"active"`
}

type loanResp struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Principal    string     `json:"principal"`
	Remaining    string     `json:"remaining"`
	InterestRate string     `json:"interest_rate,omitempty"`
	EMI          string     `json:"emi,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	AccountID    *uint      `json:"account_id,omitempty"`
	Active       bool       `json:"active"`
}

func toLoanResp(l *models.Loan) loanResp {
	resp := loanResp{
		ID:        l.ID,
		Name:      l.Name,
		Principal: util.FormatPaise(l.PrincipalPaise),
		Remaining: util.FormatPaise(l.RemainingPaise),
		StartDate: l.StartDate,
		EndDate:   l.EndDate,
		AccountID: l.AccountID,
		Active:    l.Active,
	}
	if l.InterestRateBps > 0 {
		resp.InterestRate = strconv.FormatFloat(float64(l.InterestRateBps)/100.0, 'f', 2, 64)
	}
	if l.EMIPaise > 0 {
		resp.EMI = util.FormatPaise(l.EMIPaise)
	}
	return resp
}

func (h *LoanHandler) ListLoans(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var loans []models.Loan
	if err := h.DB.Where("user_id = ?", user.ID).Order("created_at ASC").Find(&loans).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list loans")
		return
	}

	items := make([]loanResp, 0, len(loans))
	for i := range loans {
		items = append(items, toLoanResp(&loans[i]))
	}

	util.Success(c, util.Response{"items": items})
}

func (h *LoanHandler) parseReq(c *gin.Context, req *loanReq) (*models.Loan, bool) {
	user := currentUser(c)
	if user == nil {
		return nil, false
	}

	principalPaise, err := util.ParseAmountPaise(req.Principal)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid principal")
		return nil, false
	}
	remainingPaise, err := util.ParsePaise(req.Remaining)
	if err != nil || remainingPaise < 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid remaining amount")
		return nil, false
	}

	loan := &models.Loan{
		UserID:         user.ID,
		Name:           strings.TrimSpace(req.Name),
		PrincipalPaise: principalPaise,
		RemainingPaise: remainingPaise,
		AccountID:      req.AccountID,
		Active:         true,
	}

	if req.InterestRate != "" {
		// percent with two decimals stored as basis points
		p, err := util.ParsePaise(req.InterestRate)
		if err != nil || p < 0 || p > 10000 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid interest rate")
			return nil, false
		}
		loan.InterestRateBps = p
	}
	if req.EMI != "" {
		p, err := util.ParseAmountPaise(req.EMI)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid EMI")
			return nil, false
		}
		loan.EMIPaise = p
	}
	if req.StartDate != "" {
		t, err := util.ParseDate(req.StartDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid start date")
			return nil, false
		}
		loan.StartDate = &t
	}
	if req.EndDate != "" {
		t, err := util.ParseDate(req.EndDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid end date")
			return nil, false
		}
		loan.EndDate = &t
	}
	if req.AccountID != nil {
		var account models.Account
		if err := h.DB.Where("id = ? AND user_id = ?", *req.AccountID, user.ID).
			First(&account).Error; err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "account not found")
			return nil, false
		}
	}
	if req.Active != nil {
		loan.Active = *req.Active
	}
	return loan, true
}

func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req loanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	loan, ok := h.parseReq(c, &req)
	if !ok {
		return
	}

	if err := h.DB.Create(loan).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create loan")
		return
	}

	util.Success(c, util.Response{"loan": toLoanResp(loan)})
}

func (h *LoanHandler) UpdateLoan(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req loanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var existing models.Loan
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&existing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "loan not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load loan")
		}
		return
	}

	loan, ok := h.parseReq(c, &req)
	if !ok {
		return
	}
	loan.ID = existing.ID
	loan.CreatedAt = existing.CreatedAt

	if err := h.DB.Save(loan).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save loan")
		return
	}

	util.Success(c, util.Response{"loan": toLoanResp(loan)})
}

func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Loan{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete loan")
		return
	}

	util.Success(c, util.Response{"message": "loan deleted"})
}

// LoanProgress returns payoff percentage and months remaining for one loan.
func (h *LoanHandler) LoanProgress(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var loan models.Loan
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&loan).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "loan not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load loan")
		}
		return
	}

	now := time.Now()
	monthsRemaining := 0
	if loan.EndDate != nil {
		monthsRemaining = stats.MonthsRemaining(now, *loan.EndDate)
	}

	util.Success(c, util.Response{
		"loan":             toLoanResp(&loan),
		"payoff_percent":   stats.LoanPayoffPercent(loan.PrincipalPaise, loan.RemainingPaise),
		"months_remaining": monthsRemaining,
	})
}
