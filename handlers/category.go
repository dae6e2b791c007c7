package handlers

import (
	"encoding/json"
	"net/http"

	"duitkita/backend/database"
	"duitkita/backend/models"
	"duitkita/backend/services"

	"github.com/google/uuid"
)

func GetCategories(w http.ResponseWriter, r *http.Request) {
	rows, err := database.DB.Query(`
		SELECT id, name, icon, type, sort_order, created_at
		FROM categories ORDER BY sort_order, created_at
	`)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Type, &c.SortOrder, &c.CreatedAt); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		categories = append(categories, c)
	}
	if categories == nil {
		categories = []models.Category{}
	}

	writeJSON(w, categories)
}

func AddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Icon string `json:"icon"`
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if req.Icon == "" {
		req.Icon = "folder"
	}
	if req.Type == "" {
		req.Type = models.CategoryTypeExpense
	}
	if !models.ValidCategoryType(req.Type) {
		http.Error(w, "unknown category type: "+req.Type, http.StatusBadRequest)
		return
	}

	// New categories append at the end of their type's display order
	var maxOrder int
	err := database.DB.QueryRow(
		"SELECT COALESCE(MAX(sort_order), 0) FROM categories WHERE type = ?", req.Type,
	).Scan(&maxOrder)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	c := models.Category{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Icon:      req.Icon,
		Type:      req.Type,
		SortOrder: maxOrder + 1,
	}
	_, err = database.DB.Exec(`
		INSERT INTO categories (id, name, icon, type, sort_order)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Icon, c.Type, c.SortOrder)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, c)
}

// ReorderCategories applies a batch of sort-order rewrites produced by the
// client's drag reorder. The whole batch commits atomically; on failure the
// client keeps its previous order.
func ReorderCategories(w http.ResponseWriter, r *http.Request) {
	var orders []models.CategoryOrder
	if err := json.NewDecoder(r.Body).Decode(&orders); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(orders) == 0 {
		http.Error(w, "no categories given", http.StatusBadRequest)
		return
	}

	ledger := services.NewLedger(database.DB)
	if err := ledger.ReorderCategories(r.Context(), orders); err != nil {
		writeLedgerError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
