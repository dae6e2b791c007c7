package models

import "github.com/shopspring/decimal"

// MonthlySummary totals income and expense for one month. Transfers are
// excluded; Balance is Income minus Expense.
type MonthlySummary struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// BreakdownRow is one group of a monthly breakdown, summed and expressed as
// a percentage of the month's total for the queried transaction type.
type BreakdownRow struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Total   decimal.Decimal `json:"total"`
	Percent float64         `json:"percent"`
}

// CalendarDay is the signed total of one day's income minus expense.
// Transfers net to zero across the book and are not counted.
type CalendarDay struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// TrendPoint is one day of the sliding-window trend series. Assets and
// Debts are current-balance snapshots of the selected accounts; Income and
// Expense are that day's totals over the selected accounts.
type TrendPoint struct {
	Date    string          `json:"date"`
	Assets  decimal.Decimal `json:"assets"`
	Debts   decimal.Decimal `json:"debts"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}
