package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"duitkita/backend/database"
	"duitkita/backend/models"
	"duitkita/backend/services"
)

func parseMonthQuery(r *http.Request) (int, time.Month, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}

func GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	bookID := r.URL.Query().Get("bookId")
	if bookID == "" {
		http.Error(w, "bookId is required", http.StatusBadRequest)
		return
	}
	year, month, ok := parseMonthQuery(r)
	if !ok {
		http.Error(w, "year and month are required", http.StatusBadRequest)
		return
	}

	ledger := services.NewLedger(database.DB)
	entries, err := ledger.ListEntries(r.Context(), bookID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, services.Summarize(entries, year, month))
}

func GetBreakdown(w http.ResponseWriter, r *http.Request) {
	bookID := r.URL.Query().Get("bookId")
	if bookID == "" {
		http.Error(w, "bookId is required", http.StatusBadRequest)
		return
	}
	year, month, ok := parseMonthQuery(r)
	if !ok {
		http.Error(w, "year and month are required", http.StatusBadRequest)
		return
	}

	txType := r.URL.Query().Get("type")
	if txType == "" {
		txType = models.TransactionTypeExpense
	}
	if txType != models.TransactionTypeIncome && txType != models.TransactionTypeExpense {
		http.Error(w, "type must be income or expense", http.StatusBadRequest)
		return
	}

	groupBy := r.URL.Query().Get("groupBy")
	if groupBy == "" {
		groupBy = services.GroupByCategory
	}
	if !services.ValidGroupBy(groupBy) {
		http.Error(w, "groupBy must be category, account or member", http.StatusBadRequest)
		return
	}

	names, err := groupNames(groupBy, bookID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ledger := services.NewLedger(database.DB)
	entries, err := ledger.ListEntries(r.Context(), bookID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, services.Breakdown(entries, txType, year, month, groupBy, names))
}

func GetCalendar(w http.ResponseWriter, r *http.Request) {
	bookID := r.URL.Query().Get("bookId")
	if bookID == "" {
		http.Error(w, "bookId is required", http.StatusBadRequest)
		return
	}
	year, month, ok := parseMonthQuery(r)
	if !ok {
		http.Error(w, "year and month are required", http.StatusBadRequest)
		return
	}

	ledger := services.NewLedger(database.DB)
	entries, err := ledger.ListEntries(r.Context(), bookID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, services.CalendarTotals(entries, year, month))
}

func GetTrend(w http.ResponseWriter, r *http.Request) {
	bookID := r.URL.Query().Get("bookId")
	if bookID == "" {
		http.Error(w, "bookId is required", http.StatusBadRequest)
		return
	}

	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil {
		days = 30
	}
	if days != 7 && days != 30 && days != 90 {
		http.Error(w, "days must be 7, 30 or 90", http.StatusBadRequest)
		return
	}

	accounts, err := bookAccounts(bookID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Default to every account of the book; ?accounts= narrows the subset
	selected := make(map[string]bool)
	if raw := r.URL.Query().Get("accounts"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			selected[id] = true
		}
	} else {
		for _, a := range accounts {
			selected[a.ID] = true
		}
	}

	ledger := services.NewLedger(database.DB)
	entries, err := ledger.ListEntries(r.Context(), bookID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, services.TrendSeries(accounts, entries, days, selected, time.Now()))
}

// groupNames loads the id->name map for a breakdown dimension.
func groupNames(groupBy, bookID string) (map[string]string, error) {
	var query string
	var args []interface{}
	switch groupBy {
	case services.GroupByAccount:
		query = "SELECT id, name FROM accounts WHERE book_id = ?"
		args = append(args, bookID)
	case services.GroupByMember:
		query = "SELECT id, name FROM members WHERE book_id = ?"
		args = append(args, bookID)
	default:
		query = "SELECT id, name FROM categories"
	}

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

func bookAccounts(bookID string) ([]models.Account, error) {
	rows, err := database.DB.Query(`
		SELECT id, book_id, name, type, balance, created_at
		FROM accounts WHERE book_id = ? ORDER BY created_at, id
	`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.BookID, &a.Name, &a.Type, &a.Balance, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
