package models

import "time"

// Category classifies income/expense transactions. Categories are global
// (shared across books) and ordered within their type by SortOrder.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Type      string    `json:"type"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	CategoryTypeIncome  = "income"
	CategoryTypeExpense = "expense"
	CategoryTypeBoth    = "both"
)

// ValidCategoryType reports whether t is a known category type.
func ValidCategoryType(t string) bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense || t == CategoryTypeBoth
}

// CategoryOrder is one entry of a batch reorder request.
type CategoryOrder struct {
	ID        string `json:"id"`
	SortOrder int    `json:"sortOrder"`
}
