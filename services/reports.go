package services

import (
	"sort"
	"time"

	"duitkita/backend/models"

	"github.com/shopspring/decimal"
)

// Breakdown dimensions.
const (
	GroupByCategory = "category"
	GroupByAccount  = "account"
	GroupByMember   = "member"
)

// ValidGroupBy reports whether g names a breakdown dimension.
func ValidGroupBy(g string) bool {
	return g == GroupByCategory || g == GroupByAccount || g == GroupByMember
}

func inMonth(date time.Time, year int, month time.Month) bool {
	return date.Year() == year && date.Month() == month
}

// Summarize totals income and expense over the entries dated in the given
// month. Transfers are excluded. Pure over its inputs.
func Summarize(entries []models.LedgerEntry, year int, month time.Month) models.MonthlySummary {
	summary := models.MonthlySummary{Year: year, Month: int(month)}
	for _, e := range entries {
		if e.IsTransfer() || !inMonth(e.Date, year, month) {
			continue
		}
		switch e.Type {
		case models.TransactionTypeIncome:
			summary.Income = summary.Income.Add(e.Amount)
		case models.TransactionTypeExpense:
			summary.Expense = summary.Expense.Add(e.Amount)
		}
	}
	summary.Balance = summary.Income.Sub(summary.Expense)
	return summary
}

// Breakdown groups one month's transactions of the given type by the chosen
// dimension, summing amounts per group. Groups are sorted descending by
// total; ties keep first-encounter order. names resolves group ids for
// display, falling back to "Unknown".
func Breakdown(entries []models.LedgerEntry, txType string, year int, month time.Month, groupBy string, names map[string]string) []models.BreakdownRow {
	totals := make(map[string]decimal.Decimal)
	var order []string

	for _, e := range entries {
		if e.IsTransfer() || e.Type != txType || !inMonth(e.Date, year, month) {
			continue
		}

		var key string
		switch groupBy {
		case GroupByAccount:
			key = e.AccountID
		case GroupByMember:
			key = e.MemberID
		default:
			key = e.CategoryID
		}

		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] = totals[key].Add(e.Amount)
	}

	total := decimal.Zero
	for _, v := range totals {
		total = total.Add(v)
	}

	rows := make([]models.BreakdownRow, 0, len(order))
	for _, key := range order {
		name, ok := names[key]
		if !ok {
			name = "Unknown"
		}
		row := models.BreakdownRow{ID: key, Name: name, Total: totals[key]}
		if total.IsPositive() {
			row.Percent, _ = totals[key].Div(total).Mul(decimal.NewFromInt(100)).Float64()
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.GreaterThan(rows[j].Total)
	})
	return rows
}

// CalendarTotals computes the signed income-minus-expense total for every
// day of the given month. Transfers are account movements, not cash flow,
// and are excluded.
func CalendarTotals(entries []models.LedgerEntry, year int, month time.Month) []models.CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]models.CalendarDay, daysInMonth)
	for i := range days {
		days[i].Date = time.Date(year, month, i+1, 0, 0, 0, 0, time.UTC).Format(dateLayout)
	}

	for _, e := range entries {
		if !inMonth(e.Date, year, month) {
			continue
		}
		d := &days[e.Date.Day()-1]
		switch e.Type {
		case models.TransactionTypeIncome:
			d.Total = d.Total.Add(e.Amount)
			d.Count++
		case models.TransactionTypeExpense:
			d.Total = d.Total.Sub(e.Amount)
			d.Count++
		case models.TransactionTypeTransfer:
			// Counted so the day shows activity, but nets to zero
			d.Count++
		}
	}
	return days
}

// TrendSeries builds the sliding-window trend ending at now: per day, the
// asset and debt totals of the selected accounts and that day's income and
// expense over them. Balances are present-day snapshots taken from the
// account rows, not a historical reconstruction.
func TrendSeries(accounts []models.Account, entries []models.LedgerEntry, days int, selected map[string]bool, now time.Time) []models.TrendPoint {
	var assets, debts decimal.Decimal
	for _, a := range accounts {
		if !selected[a.ID] {
			continue
		}
		if models.IsDebtType(a.Type) {
			debts = debts.Add(a.Balance.Abs())
		} else {
			assets = assets.Add(a.Balance)
		}
	}

	points := make([]models.TrendPoint, days)
	for i := range points {
		day := now.AddDate(0, 0, -(days - 1 - i))
		point := models.TrendPoint{
			Date:   day.Format(dateLayout),
			Assets: assets,
			Debts:  debts,
		}

		for _, e := range entries {
			if e.Date.Format(dateLayout) != point.Date {
				continue
			}
			if e.IsTransfer() {
				// Transfers surface when either leg is selected but carry
				// no income/expense contribution
				continue
			}
			if !selected[e.AccountID] {
				continue
			}
			switch e.Type {
			case models.TransactionTypeIncome:
				point.Income = point.Income.Add(e.Amount)
			case models.TransactionTypeExpense:
				point.Expense = point.Expense.Add(e.Amount)
			}
		}

		points[i] = point
	}
	return points
}
