package handlers

import (
	"encoding/json"
	"net/http"

	"duitkita/backend/database"
	"duitkita/backend/models"
	"duitkita/backend/services"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// GetTransactions returns the book's regular and transfer transactions as
// one merged list, newest first.
func GetTransactions(w http.ResponseWriter, r *http.Request) {
	bookID := r.URL.Query().Get("bookId")
	if bookID == "" {
		http.Error(w, "bookId is required", http.StatusBadRequest)
		return
	}

	ledger := services.NewLedger(database.DB)
	entries, err := ledger.ListEntries(r.Context(), bookID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if entries == nil {
		entries = []models.LedgerEntry{}
	}

	writeJSON(w, entries)
}

func AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BookID      string          `json:"bookId"`
		Amount      decimal.Decimal `json:"amount"`
		Type        string          `json:"type"`
		CategoryID  string          `json:"categoryId"`
		AccountID   string          `json:"accountId"`
		MemberID    string          `json:"memberId"`
		Date        string          `json:"date"`
		Description string          `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	ledger := services.NewLedger(database.DB)
	t, err := ledger.AddTransaction(r.Context(), models.Transaction{
		BookID:      req.BookID,
		Amount:      req.Amount,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		AccountID:   req.AccountID,
		MemberID:    req.MemberID,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, t)
}

func AddTransferTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BookID        string          `json:"bookId"`
		Amount        decimal.Decimal `json:"amount"`
		FromAccountID string          `json:"fromAccountId"`
		ToAccountID   string          `json:"toAccountId"`
		MemberID      string          `json:"memberId"`
		Date          string          `json:"date"`
		Description   string          `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	ledger := services.NewLedger(database.DB)
	t, err := ledger.AddTransfer(r.Context(), models.TransferTransaction{
		BookID:        req.BookID,
		Amount:        req.Amount,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		MemberID:      req.MemberID,
		Date:          date,
		Description:   req.Description,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, t)
}

func DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	ledger := services.NewLedger(database.DB)
	if err := ledger.DeleteTransaction(r.Context(), id); err != nil {
		writeLedgerError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
