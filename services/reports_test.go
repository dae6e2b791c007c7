package services

import (
	"testing"
	"time"

	"duitkita/backend/models"

	"github.com/shopspring/decimal"
)

func entry(id, txType, categoryID string, amount int64, date time.Time) models.LedgerEntry {
	return models.LedgerEntry{
		ID:         id,
		BookID:     "book-1",
		Amount:     decimal.NewFromInt(amount),
		Type:       txType,
		CategoryID: categoryID,
		AccountID:  "acct-1",
		MemberID:   "member-1",
		Date:       date,
	}
}

func TestSummarize(t *testing.T) {
	march := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	entries := []models.LedgerEntry{
		entry("t1", models.TransactionTypeIncome, "cat-salary", 5000000, march),
		entry("t2", models.TransactionTypeExpense, "cat-food", 150000, march),
		entry("t3", models.TransactionTypeExpense, "cat-food", 50000, april),
		{
			ID: "tr1", BookID: "book-1", Amount: decimal.NewFromInt(300000),
			Type: models.TransactionTypeTransfer, FromAccountID: "acct-1",
			ToAccountID: "acct-2", MemberID: "member-1", Date: march,
		},
	}

	summary := Summarize(entries, 2026, time.March)

	if !summary.Income.Equal(decimal.NewFromInt(5000000)) {
		t.Errorf("Expected income 5000000, got %s", summary.Income)
	}
	if !summary.Expense.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("Expected expense 150000, got %s", summary.Expense)
	}
	if !summary.Balance.Equal(decimal.NewFromInt(4850000)) {
		t.Errorf("Expected balance 4850000, got %s", summary.Balance)
	}

	// Pure: a second call over the same slice returns the same result
	again := Summarize(entries, 2026, time.March)
	if !again.Income.Equal(summary.Income) || !again.Expense.Equal(summary.Expense) {
		t.Error("Expected Summarize to be stable across calls")
	}
}

func TestBreakdownSortsDescendingWithStableTies(t *testing.T) {
	march := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	entries := []models.LedgerEntry{
		entry("t1", models.TransactionTypeExpense, "cat-x", 30000, march),
		entry("t2", models.TransactionTypeExpense, "cat-y", 30000, march),
	}
	names := map[string]string{"cat-x": "X", "cat-y": "Y"}

	rows := Breakdown(entries, models.TransactionTypeExpense, 2026, time.March, GroupByCategory, names)

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	// Equal totals keep input encounter order
	if rows[0].Name != "X" || rows[1].Name != "Y" {
		t.Errorf("Expected tie order X, Y; got %s, %s", rows[0].Name, rows[1].Name)
	}
	for _, row := range rows {
		if !row.Total.Equal(decimal.NewFromInt(30000)) {
			t.Errorf("Expected total 30000 for %s, got %s", row.Name, row.Total)
		}
		if row.Percent != 50 {
			t.Errorf("Expected percent 50 for %s, got %v", row.Name, row.Percent)
		}
	}
}

func TestBreakdownOrdersByTotalAndFiltersType(t *testing.T) {
	march := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	entries := []models.LedgerEntry{
		entry("t1", models.TransactionTypeExpense, "cat-small", 10000, march),
		entry("t2", models.TransactionTypeExpense, "cat-big", 60000, march),
		entry("t3", models.TransactionTypeExpense, "cat-big", 30000, march),
		entry("t4", models.TransactionTypeIncome, "cat-salary", 500000, march),
	}
	names := map[string]string{"cat-small": "Small", "cat-big": "Big"}

	rows := Breakdown(entries, models.TransactionTypeExpense, 2026, time.March, GroupByCategory, names)

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "Big" {
		t.Errorf("Expected Big first, got %s", rows[0].Name)
	}
	if !rows[0].Total.Equal(decimal.NewFromInt(90000)) {
		t.Errorf("Expected Big total 90000, got %s", rows[0].Total)
	}
	if rows[0].Percent != 90 {
		t.Errorf("Expected Big percent 90, got %v", rows[0].Percent)
	}
}

func TestBreakdownUnknownGroupName(t *testing.T) {
	march := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	entries := []models.LedgerEntry{
		entry("t1", models.TransactionTypeExpense, "cat-gone", 10000, march),
	}

	rows := Breakdown(entries, models.TransactionTypeExpense, 2026, time.March, GroupByCategory, nil)
	if len(rows) != 1 || rows[0].Name != "Unknown" {
		t.Errorf("Expected one row named Unknown, got %+v", rows)
	}
}

func TestCalendarTotals(t *testing.T) {
	entries := []models.LedgerEntry{
		entry("t1", models.TransactionTypeExpense, "cat-food", 25000, time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)),
		entry("t2", models.TransactionTypeIncome, "cat-salary", 100000, time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)),
		{
			ID: "tr1", BookID: "book-1", Amount: decimal.NewFromInt(40000),
			Type: models.TransactionTypeTransfer, FromAccountID: "acct-1",
			ToAccountID: "acct-2", MemberID: "member-1",
			Date: time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
		},
	}

	days := CalendarTotals(entries, 2026, time.February)

	if len(days) != 28 {
		t.Fatalf("Expected 28 days for February 2026, got %d", len(days))
	}
	fifth := days[4]
	if !fifth.Total.Equal(decimal.NewFromInt(75000)) {
		t.Errorf("Expected day 5 total 75000, got %s", fifth.Total)
	}
	if fifth.Count != 2 {
		t.Errorf("Expected day 5 count 2, got %d", fifth.Count)
	}
	// Transfers show activity but net to zero
	fourteenth := days[13]
	if !fourteenth.Total.IsZero() {
		t.Errorf("Expected day 14 total 0, got %s", fourteenth.Total)
	}
	if fourteenth.Count != 1 {
		t.Errorf("Expected day 14 count 1, got %d", fourteenth.Count)
	}
	if days[0].Date != "2026-02-01" {
		t.Errorf("Expected first day 2026-02-01, got %s", days[0].Date)
	}
}

func TestTrendSeries(t *testing.T) {
	now := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	accounts := []models.Account{
		{ID: "acct-1", Name: "Cash", Type: models.AccountTypeCash, Balance: decimal.NewFromInt(800000)},
		{ID: "acct-2", Name: "Card", Type: models.AccountTypeCreditCard, Balance: decimal.NewFromInt(-2000000)},
		{ID: "acct-3", Name: "Bank", Type: models.AccountTypeConventionalBank, Balance: decimal.NewFromInt(5000000)},
	}
	selected := map[string]bool{"acct-1": true, "acct-2": true}

	entries := []models.LedgerEntry{
		entry("t1", models.TransactionTypeExpense, "cat-food", 50000, now.AddDate(0, 0, -1)),
		// Unselected account, must not contribute
		{
			ID: "t2", BookID: "book-1", Amount: decimal.NewFromInt(90000),
			Type: models.TransactionTypeExpense, CategoryID: "cat-food",
			AccountID: "acct-3", MemberID: "member-1", Date: now.AddDate(0, 0, -1),
		},
	}

	points := TrendSeries(accounts, entries, 7, selected, now)

	if len(points) != 7 {
		t.Fatalf("Expected 7 points, got %d", len(points))
	}
	if points[6].Date != "2026-03-20" {
		t.Errorf("Expected last point 2026-03-20, got %s", points[6].Date)
	}
	if points[0].Date != "2026-03-14" {
		t.Errorf("Expected first point 2026-03-14, got %s", points[0].Date)
	}
	for _, p := range points {
		if !p.Assets.Equal(decimal.NewFromInt(800000)) {
			t.Errorf("Expected assets 800000 on %s, got %s", p.Date, p.Assets)
		}
		// Debt accounts contribute their magnitude
		if !p.Debts.Equal(decimal.NewFromInt(2000000)) {
			t.Errorf("Expected debts 2000000 on %s, got %s", p.Date, p.Debts)
		}
	}
	yesterday := points[5]
	if !yesterday.Expense.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("Expected expense 50000 on %s, got %s", yesterday.Date, yesterday.Expense)
	}
}
