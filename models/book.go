package models

import "time"

// Book is a named ledger namespace. Accounts, members and transactions are
// scoped to a book; categories are shared across books.
type Book struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
