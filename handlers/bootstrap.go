package handlers

import (
	"log"
	"net/http"

	"duitkita/backend/database"
	"duitkita/backend/middleware"
	"duitkita/backend/models"
	"duitkita/backend/services"
)

// BootstrapResponse is everything the client needs to hydrate after the
// session is established: the book list, the resolved current book, and
// that book's scoped collections.
type BootstrapResponse struct {
	Books        []models.Book        `json:"books"`
	CurrentBook  models.Book          `json:"currentBook"`
	Categories   []models.Category    `json:"categories"`
	Accounts     []models.Account     `json:"accounts"`
	Members      []models.Member      `json:"members"`
	Transactions []models.LedgerEntry `json:"transactions"`
}

// GetBootstrap hydrates the session. A first-time user gets a default book
// seeded with the starter categories, accounts and member.
func GetBootstrap(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	ledger := services.NewLedger(database.DB)
	book, err := ledger.EnsureDefaultBook(r.Context(), userID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	resp := BootstrapResponse{CurrentBook: *book}

	rows, err := database.DB.Query("SELECT id, name, created_at FROM books ORDER BY created_at, id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		resp.Books = append(resp.Books, b)
	}
	if err := rows.Err(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	catRows, err := database.DB.Query(`
		SELECT id, name, icon, type, sort_order, created_at
		FROM categories ORDER BY sort_order, created_at
	`)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer catRows.Close()
	for catRows.Next() {
		var c models.Category
		if err := catRows.Scan(&c.ID, &c.Name, &c.Icon, &c.Type, &c.SortOrder, &c.CreatedAt); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		resp.Categories = append(resp.Categories, c)
	}
	if err := catRows.Err(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.Accounts, err = bookAccounts(book.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	memberRows, err := database.DB.Query(`
		SELECT id, book_id, name, created_at
		FROM members WHERE book_id = ? ORDER BY created_at, id
	`, book.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer memberRows.Close()
	for memberRows.Next() {
		var m models.Member
		if err := memberRows.Scan(&m.ID, &m.BookID, &m.Name, &m.CreatedAt); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		resp.Members = append(resp.Members, m)
	}
	if err := memberRows.Err(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.Transactions, err = ledger.ListEntries(r.Context(), book.ID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	if resp.Transactions == nil {
		resp.Transactions = []models.LedgerEntry{}
	}

	log.Printf("Bootstrap for user %s: book %s, %d transactions", userID, book.ID, len(resp.Transactions))
	writeJSON(w, resp)
}
