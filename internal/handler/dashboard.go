package handler

import (
	"net/http"
	"time"

	"github.com/elizabethangel02241/finance-tracker/internal/models"
	"github.com/elizabethangel02241/finance-tracker/internal/stats"
	"github.com/elizabethangel02241/finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardHandler assembles the home-screen summary. Each section is
// fetched independently; a failed section returns the error envelope
// rather than a partial payload.
type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

type dashboardAlert struct {
	BudgetID   uint    `json:"budget_id"`
	Name       string  `json:"name"`
	Limit      string  `json:"limit"`
	Spent      string  `json:"spent"`
	Percentage float64 `json:"percentage"`
}

type dashboardSubscription struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	DueInDays int    `json:"due_in_days"`
}

type dashboardLoan struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Remaining       string  `json:"remaining"`
	PayoffPercent   float64 `json:"payoff_percent"`
	MonthsRemaining *int    `json:"months_remaining,omitempty"`
}

type dashboardGoal struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Target    string  `json:"target"`
	Current   string  `json:"current"`
	Percent   float64 `json:"percent"`
	Completed bool    `json:"completed"`
}

// Dashboard returns total balance, the current month's income and
// expense, savings rate, firing budget alerts, subscriptions inside
// their remind window, loan progress, and goal progress.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	now := time.Now()
	from := stats.MonthStart(now)

	var accounts []models.Account
	if err := h.DB.Where("user_id = ?", user.ID).Find(&accounts).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load accounts")
		return
	}

	var txns []models.Transaction
	if err := h.DB.Where("user_id = ? AND occurred_at >= ? AND occurred_at <= ?",
		user.ID, from, now).Find(&txns).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return
	}
	incomePaise, expensePaise := stats.MonthlyTotals(txns, from, now)

	var budgets []models.Budget
	if err := h.DB.Where("user_id = ? AND active = ?", user.ID, true).Find(&budgets).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load budgets")
		return
	}
	alerts := make([]dashboardAlert, 0)
	for _, b := range budgets {
		st := stats.EvaluateBudget(b, txns, from, now)
		if !st.Alert {
			continue
		}
		alerts = append(alerts, dashboardAlert{
			BudgetID:   st.BudgetID,
			Name:       st.Name,
			Limit:      util.FormatPaise(st.LimitPaise),
			Spent:      util.FormatPaise(st.SpentPaise),
			Percentage: st.Percentage,
		})
	}

	var subscriptions []models.Subscription
	if err := h.DB.Where("user_id = ? AND active = ?", user.ID, true).
		Order("next_billing_at ASC").Find(&subscriptions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load subscriptions")
		return
	}
	upcoming := make([]dashboardSubscription, 0)
	for _, s := range subscriptions {
		due := stats.DueInDays(now, s.NextBillingAt)
		if due > s.RemindDays {
			continue
		}
		upcoming = append(upcoming, dashboardSubscription{
			ID:        s.ID,
			Name:      s.Name,
			Amount:    util.FormatPaise(s.AmountPaise),
			DueInDays: due,
		})
	}

	var loans []models.Loan
	if err := h.DB.Where("user_id = ? AND active = ?", user.ID, true).Find(&loans).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load loans")
		return
	}
	loanItems := make([]dashboardLoan, 0, len(loans))
	for _, l := range loans {
		item := dashboardLoan{
			ID:            l.ID,
			Name:          l.Name,
			Remaining:     util.FormatPaise(l.RemainingPaise),
			PayoffPercent: stats.LoanPayoffPercent(l.PrincipalPaise, l.RemainingPaise),
		}
		if l.EndDate != nil {
			months := stats.MonthsRemaining(now, *l.EndDate)
			item.MonthsRemaining = &months
		}
		loanItems = append(loanItems, item)
	}

	var goals []models.Goal
	if err := h.DB.Where("user_id = ?", user.ID).Find(&goals).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load goals")
		return
	}
	goalItems := make([]dashboardGoal, 0, len(goals))
	for _, g := range goals {
		goalItems = append(goalItems, dashboardGoal{
			ID:        g.ID,
			Name:      g.Name,
			Target:    util.FormatPaise(g.TargetPaise),
			Current:   util.FormatPaise(g.CurrentPaise),
			Percent:   stats.GoalProgressPercent(g.TargetPaise, g.CurrentPaise),
			Completed: g.Completed,
		})
	}

	util.Success(c, util.Response{
		"total_balance":   util.FormatPaise(stats.TotalBalance(accounts)),
		"month":           now.Format("2006-01"),
		"monthly_income":  util.FormatPaise(incomePaise),
		"monthly_expense": util.FormatPaise(expensePaise),
		"savings_rate":    stats.SavingsRate(incomePaise, expensePaise),
		"budget_alerts":   alerts,
		"upcoming":        upcoming,
		"loans":           loanItems,
		"goals":           goalItems,
	})
}
