package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"duitkita/backend/database"
	"duitkita/backend/middleware"
	"duitkita/backend/models"
)

// SyncUser upserts the authenticated user's profile row. The client calls
// this once after sign-in so display names stay in step with the auth
// provider.
func SyncUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var req struct {
		Username string `json:"username"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Username == "" {
		http.Error(w, "username is required", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		req.Name = req.Username
	}

	_, err := database.DB.Exec(`
		INSERT INTO users (id, username, name) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET username = excluded.username, name = excluded.name
	`, userID, req.Username, req.Name)
	if err != nil {
		log.Printf("Error syncing user %s: %v", userID, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, models.User{ID: userID, Username: req.Username, Name: req.Name})
}
