package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single-account income or expense event. Amount is always
// a positive magnitude; Type determines the sign of the balance effect.
type Transaction struct {
	ID          string          `json:"id"`
	BookID      string          `json:"bookId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	CategoryID  string          `json:"categoryId"`
	AccountID   string          `json:"accountId"`
	MemberID    string          `json:"memberId"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

const (
	TransactionTypeIncome   = "income"
	TransactionTypeExpense  = "expense"
	TransactionTypeTransfer = "transfer"
)

// TransferTransaction moves Amount between two accounts of the same book.
// Transfers have no category and no income/expense classification.
type TransferTransaction struct {
	ID            string          `json:"id"`
	BookID        string          `json:"bookId"`
	Amount        decimal.Decimal `json:"amount"`
	FromAccountID string          `json:"fromAccountId"`
	ToAccountID   string          `json:"toAccountId"`
	MemberID      string          `json:"memberId"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// LedgerEntry is the merged view of regular and transfer transactions that
// the transaction list endpoint returns. Type is "income", "expense" or
// "transfer"; the account fields are populated according to the variant.
type LedgerEntry struct {
	ID            string          `json:"id"`
	BookID        string          `json:"bookId"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	CategoryID    string          `json:"categoryId,omitempty"`
	AccountID     string          `json:"accountId,omitempty"`
	FromAccountID string          `json:"fromAccountId,omitempty"`
	ToAccountID   string          `json:"toAccountId,omitempty"`
	MemberID      string          `json:"memberId"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// IsTransfer reports whether the entry came from the transfer table.
func (e LedgerEntry) IsTransfer() bool {
	return e.Type == TransactionTypeTransfer
}
