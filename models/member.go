package models

import "time"

// Member is a household participant used as a grouping dimension for
// transactions. Members carry no balance.
type Member struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
