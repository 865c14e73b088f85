package stats

import (
	"testing"
	"time"

	"github.com/elizabethangel02241/finance-tracker/internal/models"
)

func expense(amount int64, at time.Time) models.Transaction {
	return models.Transaction{Direction: models.DirectionExpense, AmountPaise: amount, OccurredAt: at}
}

func income(amount int64, at time.Time) models.Transaction {
	return models.Transaction{Direction: models.DirectionIncome, AmountPaise: amount, OccurredAt: at}
}

func TestTotalBalance_SumsActiveOnly(t *testing.T) {
	accounts := []models.Account{
		{Balance: 100_000, Active: true},
		{Balance: 250_050, Active: true},
		{Balance: 999_999, Active: false},
		{Balance: -50_000, Active: true},
	}
	want := int64(100_000 + 250_050 - 50_000)
	if got := TotalBalance(accounts); got != want {
		t.Errorf("TotalBalance = %d, want %d", got, want)
	}
}

func TestTotalBalance_OrderIndependent(t *testing.T) {
	a := []models.Account{
		{Balance: 123, Active: true},
		{Balance: 456, Active: true},
		{Balance: 789, Active: true},
	}
	b := []models.Account{a[2], a[0], a[1]}
	if TotalBalance(a) != TotalBalance(b) {
		t.Error("TotalBalance depends on account ordering")
	}
}

func TestMonthlyTotals(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	from := MonthStart(now)

	txns := []models.Transaction{
		income(500_000, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)),
		income(300_000, time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)),
		expense(200_000, time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)),
		// outside the window
		income(999_999, time.Date(2026, 7, 31, 23, 0, 0, 0, time.UTC)),
		expense(999_999, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
		// transfers count toward neither side
		{Direction: models.DirectionTransfer, AmountPaise: 100_000, OccurredAt: now},
	}

	gotIncome, gotExpense := MonthlyTotals(txns, from, now)
	if gotIncome != 800_000 {
		t.Errorf("income = %d, want 800000", gotIncome)
	}
	if gotExpense != 200_000 {
		t.Errorf("expense = %d, want 200000", gotExpense)
	}

	// 8000 income, 2000 expense -> 75% saved
	if rate := SavingsRate(gotIncome, gotExpense); rate != 75.0 {
		t.Errorf("SavingsRate = %f, want 75.0", rate)
	}
}

func TestSavingsRate_Bounds(t *testing.T) {
	cases := []struct {
		name            string
		income, expense int64
		want            float64
	}{
		{"zero income", 0, 50_000, 0},
		{"spent everything", 100_000, 100_000, 0},
		{"overspent clamps to zero", 100_000, 150_000, 0},
		{"nothing spent", 100_000, 0, 100},
		{"half saved", 100_000, 50_000, 50},
	}
	for _, tc := range cases {
		got := SavingsRate(tc.income, tc.expense)
		if got != tc.want {
			t.Errorf("%s: SavingsRate(%d, %d) = %f, want %f", tc.name, tc.income, tc.expense, got, tc.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("%s: SavingsRate out of [0,100]: %f", tc.name, got)
		}
	}
}

func TestEvaluateBudget_AlertThreshold(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	from := MonthStart(now)
	catID := uint(7)

	budget := models.Budget{
		ID:                1,
		Name:              "Food",
		CategoryID:        &catID,
		LimitPaise:        100_000, // 1000 INR
		AlertAtPercentage: 80,
		Active:            true,
	}

	mk := func(amount int64, cat *uint) models.Transaction {
		tx := expense(amount, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC))
		tx.CategoryID = cat
		return tx
	}
	otherCat := uint(9)
	txns := []models.Transaction{
		mk(50_000, &catID),
		mk(35_000, &catID),
		mk(40_000, &otherCat), // different category, ignored
		mk(40_000, nil),       // uncategorized, ignored for category budgets
	}

	st := EvaluateBudget(budget, txns, from, now)
	if st.SpentPaise != 85_000 {
		t.Errorf("SpentPaise = %d, want 85000", st.SpentPaise)
	}
	if st.Percentage != 85.0 {
		t.Errorf("Percentage = %f, want 85.0", st.Percentage)
	}
	if !st.Alert {
		t.Error("Alert = false, want true at 85%% of an 80%% threshold")
	}
}

func TestEvaluateBudget_NoAlertBelowThreshold(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	from := MonthStart(now)

	budget := models.Budget{LimitPaise: 100_000, AlertAtPercentage: 80, Active: true}
	txns := []models.Transaction{expense(79_999, time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC))}

	st := EvaluateBudget(budget, txns, from, now)
	if st.Alert {
		t.Errorf("Alert = true at %.2f%%, want false below threshold", st.Percentage)
	}
}

func TestEvaluateBudget_InactiveNeverAlerts(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	from := MonthStart(now)

	budget := models.Budget{LimitPaise: 100_000, AlertAtPercentage: 80, Active: false}
	txns := []models.Transaction{expense(200_000, time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC))}

	if st := EvaluateBudget(budget, txns, from, now); st.Alert {
		t.Error("inactive budget fired an alert")
	}
}

func TestEvaluateBudget_ZeroLimit(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	from := MonthStart(now)

	budget := models.Budget{LimitPaise: 0, AlertAtPercentage: 80, Active: true}
	txns := []models.Transaction{expense(10_000, time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC))}

	st := EvaluateBudget(budget, txns, from, now)
	if st.Percentage != 0 {
		t.Errorf("Percentage = %f on zero limit, want 0", st.Percentage)
	}
}

func TestEvaluateBudget_AccountScope(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	from := MonthStart(now)
	accID := uint(3)

	budget := models.Budget{AccountID: &accID, LimitPaise: 100_000, AlertAtPercentage: 80, Active: true}

	tx1 := expense(30_000, time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC))
	tx1.AccountID = accID
	tx2 := expense(99_000, time.Date(2026, 8, 6, 0, 0, 0, 0, time.UTC))
	tx2.AccountID = 8

	st := EvaluateBudget(budget, []models.Transaction{tx1, tx2}, from, now)
	if st.SpentPaise != 30_000 {
		t.Errorf("SpentPaise = %d, want 30000 (account-scoped)", st.SpentPaise)
	}
}

func TestLoanPayoffPercent(t *testing.T) {
	// 100000 principal, 40000 remaining -> 60%
	if got := LoanPayoffPercent(10_000_000, 4_000_000); got != 60.0 {
		t.Errorf("LoanPayoffPercent = %f, want 60.0", got)
	}
	if got := LoanPayoffPercent(10_000_000, 0); got != 100.0 {
		t.Errorf("fully repaid = %f, want 100.0", got)
	}
	if got := LoanPayoffPercent(0, 0); got != 0 {
		t.Errorf("zero principal = %f, want 0", got)
	}
	// clamped when remaining exceeds principal or drops below zero
	if got := LoanPayoffPercent(10_000_000, 12_000_000); got != 0 {
		t.Errorf("overdrawn loan = %f, want 0", got)
	}
	if got := LoanPayoffPercent(10_000_000, -500); got != 100.0 {
		t.Errorf("overpaid loan = %f, want 100.0", got)
	}
}

func TestLoanPayoffPercent_Monotonic(t *testing.T) {
	principal := int64(10_000_000)
	prev := -1.0
	for remaining := principal; remaining >= 0; remaining -= 500_000 {
		got := LoanPayoffPercent(principal, remaining)
		if got < prev {
			t.Fatalf("payoff decreased: remaining=%d pct=%f prev=%f", remaining, got, prev)
		}
		prev = got
	}
	if prev != 100.0 {
		t.Errorf("payoff at remaining=0 is %f, want 100.0", prev)
	}
}

func TestMonthsRemaining(t *testing.T) {
	// anchored to the 1st so month addition never normalizes into the
	// following month (Aug 30 + 6 months would land on Mar 2)
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		end  time.Time
		want int
	}{
		{now.AddDate(0, 6, 0), 6},
		{time.Date(2027, 3, 2, 0, 0, 0, 0, time.UTC), 7}, // day of month is ignored
		{now, 0},
		{now.AddDate(0, -3, 0), 0}, // past end dates clamp to 0
		{time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC), 6},
		{time.Date(2028, 8, 1, 0, 0, 0, 0, time.UTC), 24},
	}
	for _, tc := range cases {
		if got := MonthsRemaining(now, tc.end); got != tc.want {
			t.Errorf("MonthsRemaining(now, %s) = %d, want %d", tc.end.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestDueInDays(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		next time.Time
		want int
	}{
		{now.AddDate(0, 0, 5), 5},
		{now.Add(1 * time.Hour), 1}, // partial day rounds up
		{now, 0},
		{now.AddDate(0, 0, -2), -2}, // overdue stays negative
	}
	for _, tc := range cases {
		if got := DueInDays(now, tc.next); got != tc.want {
			t.Errorf("DueInDays(now, %s) = %d, want %d", tc.next.Format(time.RFC3339), got, tc.want)
		}
	}
}

func TestGoalProgressPercent(t *testing.T) {
	if got := GoalProgressPercent(100_000, 25_000); got != 25.0 {
		t.Errorf("GoalProgressPercent = %f, want 25.0", got)
	}
	if got := GoalProgressPercent(100_000, 150_000); got != 100.0 {
		t.Errorf("overfunded goal = %f, want 100.0", got)
	}
	if got := GoalProgressPercent(0, 50_000); got != 0 {
		t.Errorf("zero target = %f, want 0", got)
	}
}
