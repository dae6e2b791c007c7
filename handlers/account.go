package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"duitkita/backend/database"
	"duitkita/backend/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

func GetAccounts(w http.ResponseWriter, r *http.Request) {
	bookID := r.URL.Query().Get("bookId")
	if bookID == "" {
		http.Error(w, "bookId is required", http.StatusBadRequest)
		return
	}

	rows, err := database.DB.Query(`
		SELECT id, book_id, name, type, balance, created_at
		FROM accounts WHERE book_id = ? ORDER BY created_at, id
	`, bookID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.BookID, &a.Name, &a.Type, &a.Balance, &a.CreatedAt); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		accounts = append(accounts, a)
	}
	if accounts == nil {
		accounts = []models.Account{}
	}

	writeJSON(w, accounts)
}

func AddAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BookID  string          `json:"bookId"`
		Name    string          `json:"name"`
		Type    string          `json:"type"`
		Balance decimal.Decimal `json:"balance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.BookID == "" || req.Name == "" {
		http.Error(w, "bookId and name are required", http.StatusBadRequest)
		return
	}
	if !models.ValidAccountType(req.Type) {
		http.Error(w, "unknown account type: "+req.Type, http.StatusBadRequest)
		return
	}

	a := models.Account{
		ID:      uuid.NewString(),
		BookID:  req.BookID,
		Name:    req.Name,
		Type:    req.Type,
		Balance: req.Balance,
	}
	_, err := database.DB.Exec(`
		INSERT INTO accounts (id, book_id, name, type, balance)
		VALUES (?, ?, ?, ?, ?)
	`, a.ID, a.BookID, a.Name, a.Type, a.Balance)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, a)
}

// UpdateAccount edits an account's name, type and balance. The balance
// write here is the manual-correction path: it bypasses the transaction
// ledger deliberately and overwrites whatever the ledger had accumulated.
func UpdateAccount(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var req struct {
		Name    string          `json:"name"`
		Type    string          `json:"type"`
		Balance decimal.Decimal `json:"balance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !models.ValidAccountType(req.Type) {
		http.Error(w, "unknown account type: "+req.Type, http.StatusBadRequest)
		return
	}

	res, err := database.DB.Exec(`
		UPDATE accounts SET name = ?, type = ?, balance = ?
		WHERE id = ?
	`, req.Name, req.Type, req.Balance, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	var a models.Account
	err = database.DB.QueryRow(`
		SELECT id, book_id, name, type, balance, created_at FROM accounts WHERE id = ?
	`, id).Scan(&a.ID, &a.BookID, &a.Name, &a.Type, &a.Balance, &a.CreatedAt)
	if err != nil && err != sql.ErrNoRows {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, a)
}
