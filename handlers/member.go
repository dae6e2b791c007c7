package handlers

import (
	"encoding/json"
	"net/http"

	"duitkita/backend/database"
	"duitkita/backend/models"

	"github.com/google/uuid"
)

func GetMembers(w http.ResponseWriter, r *http.Request) {
	bookID := r.URL.Query().Get("bookId")
	if bookID == "" {
		http.Error(w, "bookId is required", http.StatusBadRequest)
		return
	}

	rows, err := database.DB.Query(`
		SELECT id, book_id, name, created_at
		FROM members WHERE book_id = ? ORDER BY created_at, id
	`, bookID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.BookID, &m.Name, &m.CreatedAt); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		members = append(members, m)
	}
	if members == nil {
		members = []models.Member{}
	}

	writeJSON(w, members)
}

func AddMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BookID string `json:"bookId"`
		Name   string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.BookID == "" || req.Name == "" {
		http.Error(w, "bookId and name are required", http.StatusBadRequest)
		return
	}

	m := models.Member{ID: uuid.NewString(), BookID: req.BookID, Name: req.Name}
	_, err := database.DB.Exec("INSERT INTO members (id, book_id, name) VALUES (?, ?, ?)", m.ID, m.BookID, m.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, m)
}
