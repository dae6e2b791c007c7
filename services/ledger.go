package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"duitkita/backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Mutation errors surfaced to handlers. Validation errors are detected
// before any write; ErrNotFound means the row never existed.
var (
	ErrAmountNotPositive = errors.New("amount must be positive")
	ErrInvalidType       = errors.New("invalid transaction type")
	ErrSameAccount       = errors.New("transfer source and destination must differ")
	ErrNotFound          = errors.New("not found")
)

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
)

// Ledger owns all balance-mutating operations. Every income/expense
// mutates exactly one account balance and every transfer mutates exactly
// two; each compound operation runs inside a single SQL transaction so a
// failed step never leaves an orphaned balance adjustment behind.
type Ledger struct {
	db *sql.DB
}

func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// AddTransaction records an income or expense and applies its effect to the
// referenced account. The balance adjustment and the row insert commit
// together or not at all.
func (l *Ledger) AddTransaction(ctx context.Context, t models.Transaction) (*models.Transaction, error) {
	if !t.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	if t.Type != models.TransactionTypeIncome && t.Type != models.TransactionTypeExpense {
		return nil, ErrInvalidType
	}

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	t.CreatedAt = time.Now()

	delta := t.Amount
	if t.Type == models.TransactionTypeExpense {
		delta = delta.Neg()
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := adjustBalance(ctx, tx, t.AccountID, delta); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (id, book_id, amount, type, category_id, account_id, member_id, date, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.BookID, t.Amount, t.Type, t.CategoryID, t.AccountID, t.MemberID, t.Date.Format(dateLayout), t.Description, t.CreatedAt.UTC().Format(datetimeLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &t, nil
}

// AddTransfer moves an amount between two accounts of the same book:
// the source is debited, the destination credited, and the transfer row
// inserted, all in one SQL transaction.
func (l *Ledger) AddTransfer(ctx context.Context, t models.TransferTransaction) (*models.TransferTransaction, error) {
	if !t.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	if t.FromAccountID == t.ToAccountID {
		return nil, ErrSameAccount
	}

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	t.CreatedAt = time.Now()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := adjustBalance(ctx, tx, t.FromAccountID, t.Amount.Neg()); err != nil {
		return nil, err
	}
	if err := adjustBalance(ctx, tx, t.ToAccountID, t.Amount); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transfer_transactions (id, book_id, amount, from_account_id, to_account_id, member_id, date, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.BookID, t.Amount, t.FromAccountID, t.ToAccountID, t.MemberID, t.Date.Format(dateLayout), t.Description, t.CreatedAt.UTC().Format(datetimeLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to insert transfer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transfer: %w", err)
	}
	return &t, nil
}

// DeleteTransaction removes a regular or transfer transaction by id,
// reversing its balance effect first. Returns ErrNotFound if the id matches
// neither table.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var amount decimal.Decimal
	var ttype, accountID string
	err = tx.QueryRowContext(ctx,
		"SELECT amount, type, account_id FROM transactions WHERE id = ?", id,
	).Scan(&amount, &ttype, &accountID)
	switch {
	case err == nil:
		// Reverse: subtract back income, add back expense
		delta := amount.Neg()
		if ttype == models.TransactionTypeExpense {
			delta = amount
		}
		if err := adjustBalance(ctx, tx, accountID, delta); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		var fromID, toID string
		err = tx.QueryRowContext(ctx,
			"SELECT amount, from_account_id, to_account_id FROM transfer_transactions WHERE id = ?", id,
		).Scan(&amount, &fromID, &toID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to look up transfer: %w", err)
		}
		// Credit back the source, debit back the destination
		if err := adjustBalance(ctx, tx, fromID, amount); err != nil {
			return err
		}
		if err := adjustBalance(ctx, tx, toID, amount.Neg()); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM transfer_transactions WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete transfer: %w", err)
		}
	default:
		return fmt.Errorf("failed to look up transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// ListEntries returns the book's regular and transfer transactions merged
// into one collection, tagged by type and ordered by date descending.
func (l *Ledger) ListEntries(ctx context.Context, bookID string) ([]models.LedgerEntry, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, book_id, amount, type, category_id, account_id, '', '', member_id, date, description, created_at
		FROM transactions WHERE book_id = ?
		UNION ALL
		SELECT id, book_id, amount, 'transfer', '', '', from_account_id, to_account_id, member_id, date, description, created_at
		FROM transfer_transactions WHERE book_id = ?
		ORDER BY date DESC, created_at DESC
	`, bookID, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		var description sql.NullString
		var date, created string
		err := rows.Scan(&e.ID, &e.BookID, &e.Amount, &e.Type, &e.CategoryID, &e.AccountID,
			&e.FromAccountID, &e.ToAccountID, &e.MemberID, &date, &description, &created)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		if description.Valid {
			e.Description = description.String
		}
		// The UNION strips sqlite's declared column types, so the driver
		// hands dates back as text
		e.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse entry date %q: %w", date, err)
		}
		if ts, err := time.Parse(datetimeLayout, created); err == nil {
			e.CreatedAt = ts
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading ledger entries: %w", err)
	}
	return entries, nil
}

// ReorderCategories writes the given sort orders as one batch. Categories
// not included keep their previous sort order.
func (l *Ledger) ReorderCategories(ctx context.Context, orders []models.CategoryOrder) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, o := range orders {
		res, err := tx.ExecContext(ctx, "UPDATE categories SET sort_order = ? WHERE id = ?", o.SortOrder, o.ID)
		if err != nil {
			return fmt.Errorf("failed to update category order: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("category %s: %w", o.ID, ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}
	return nil
}

// adjustBalance applies a signed delta to an account balance with
// database-side arithmetic, so concurrent adjustments never lose updates to
// a stale read-modify-write.
func adjustBalance(ctx context.Context, tx *sql.Tx, accountID string, delta decimal.Decimal) error {
	res, err := tx.ExecContext(ctx, "UPDATE accounts SET balance = balance + ? WHERE id = ?", delta, accountID)
	if err != nil {
		return fmt.Errorf("failed to adjust balance of account %s: %w", accountID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("account %s: %w", accountID, ErrNotFound)
	}
	return nil
}
