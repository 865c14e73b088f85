// Package stats derives dashboard statistics from already-fetched
// records. Every function is pure and total: no I/O, and divisions by
// zero are defined to yield 0.
package stats

import (
	"math"
	"time"

	"github.com/elizabethangel02241/finance-tracker/internal/models"
)

// MonthStart returns the first instant of now's calendar month.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// TotalBalance sums balances over active accounts. Mixed currencies are
// summed nominally; there is no conversion.
func TotalBalance(accounts []models.Account) int64 {
	var total int64
	for _, a := range accounts {
		if a.Active {
			total += a.Balance
		}
	}
	return total
}

// MonthlyTotals partitions transactions within [from, to] by direction
// and sums each side. Transfers count toward neither.
func MonthlyTotals(txns []models.Transaction, from, to time.Time) (incomePaise, expensePaise int64) {
	for _, t := range txns {
		if t.OccurredAt.Before(from) || t.OccurredAt.After(to) {
			continue
		}
		switch t.Direction {
		case models.DirectionIncome:
			incomePaise += t.AmountPaise
		case models.DirectionExpense:
			expensePaise += t.AmountPaise
		}
	}
	return incomePaise, expensePaise
}

// SavingsRate is the share of income not spent, as a percentage in
// [0, 100]. Negative cash-flow months clamp to 0 rather than reporting
// a negative rate; zero income is 0.
func SavingsRate(incomePaise, expensePaise int64) float64 {
	if incomePaise <= 0 {
		return 0
	}
	rate := float64(incomePaise-expensePaise) / float64(incomePaise) * 100
	if rate < 0 {
		return 0
	}
	return rate
}

// BudgetStatus is the evaluated state of one budget for a period.
type BudgetStatus struct {
	BudgetID   uint
	Name       string
	LimitPaise int64
	SpentPaise int64
	Percentage float64
	Alert      bool
}

// EvaluateBudget sums expense transactions within [from, to] matching
// the budget's category if set, else its account if set, else all, and
// fires the alert iff the spend percentage reaches the budget's own
// threshold. Inactive budgets never alert.
func EvaluateBudget(b models.Budget, txns []models.Transaction, from, to time.Time) BudgetStatus {
	st := BudgetStatus{
		BudgetID:   b.ID,
		Name:       b.Name,
		LimitPaise: b.LimitPaise,
	}

	for _, t := range txns {
		if t.Direction != models.DirectionExpense {
			continue
		}
		if t.OccurredAt.Before(from) || t.OccurredAt.After(to) {
			continue
		}
		if b.CategoryID != nil {
			if t.CategoryID == nil || *t.CategoryID != *b.CategoryID {
				continue
			}
		} else if b.AccountID != nil && t.AccountID != *b.AccountID {
			continue
		}
		st.SpentPaise += t.AmountPaise
	}

	if b.LimitPaise > 0 {
		st.Percentage = float64(st.SpentPaise) / float64(b.LimitPaise) * 100
	}
	st.Alert = b.Active && st.Percentage >= float64(b.AlertAtPercentage)
	return st
}

// LoanPayoffPercent is the repaid share of principal, clamped to
// [0, 100] for display. Zero principal yields 0.
func LoanPayoffPercent(principalPaise, remainingPaise int64) float64 {
	if principalPaise <= 0 {
		return 0
	}
	pct := float64(principalPaise-remainingPaise) / float64(principalPaise) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// MonthsRemaining is the calendar-month difference from now to end,
// clamped to a minimum of 0.
func MonthsRemaining(now, end time.Time) int {
	months := (end.Year()-now.Year())*12 + int(end.Month()) - int(now.Month())
	if months < 0 {
		return 0
	}
	return months
}

// DueInDays is the ceiling of the interval to the next billing date in
// days. Overdue dates yield negative values; display policy is the
// caller's.
func DueInDays(now, next time.Time) int {
	return int(math.Ceil(next.Sub(now).Hours() / 24))
}

// GoalProgressPercent is current over target, clamped to [0, 100].
// Zero target yields 0.
func GoalProgressPercent(targetPaise, currentPaise int64) float64 {
	if targetPaise <= 0 {
		return 0
	}
	pct := float64(currentPaise) / float64(targetPaise) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
