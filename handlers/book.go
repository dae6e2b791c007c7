package handlers

import (
	"encoding/json"
	"net/http"

	"duitkita/backend/database"
	"duitkita/backend/middleware"
	"duitkita/backend/models"
	"duitkita/backend/services"

	"github.com/google/uuid"
)

func GetBooks(w http.ResponseWriter, r *http.Request) {
	rows, err := database.DB.Query("SELECT id, name, created_at FROM books ORDER BY created_at, id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		books = append(books, b)
	}
	if books == nil {
		books = []models.Book{}
	}

	writeJSON(w, books)
}

func AddBook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	book := models.Book{ID: uuid.NewString(), Name: req.Name}
	_, err := database.DB.Exec("INSERT INTO books (id, name) VALUES (?, ?)", book.ID, book.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Adding a book also makes it the current one, matching the client flow
	userID := middleware.GetUserIDFromContext(r)
	ledger := services.NewLedger(database.DB)
	if err := ledger.SetCurrentBook(r.Context(), userID, book.ID); err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, book)
}

// SetCurrentBook switches the active book; scoped collections are refetched
// by the client afterwards.
func SetCurrentBook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BookID string `json:"bookId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.BookID == "" {
		http.Error(w, "bookId is required", http.StatusBadRequest)
		return
	}

	userID := middleware.GetUserIDFromContext(r)
	ledger := services.NewLedger(database.DB)
	if err := ledger.SetCurrentBook(r.Context(), userID, req.BookID); err != nil {
		writeLedgerError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
