package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"duitkita/backend/models"

	"github.com/google/uuid"
)

// defaultCategories is the closed starter set a fresh installation gets,
// in display order.
var defaultCategories = []struct {
	Name string
	Icon string
	Type string
}{
	{"Food", "utensils", models.CategoryTypeExpense},
	{"Transportation", "car", models.CategoryTypeExpense},
	{"Daily necessities", "shopping-cart", models.CategoryTypeExpense},
	{"Housing", "home", models.CategoryTypeExpense},
	{"Skincare", "smile", models.CategoryTypeExpense},
	{"Internet", "wifi", models.CategoryTypeExpense},
	{"Gifts", "gift", models.CategoryTypeExpense},
	{"Healing", "heart", models.CategoryTypeExpense},
	{"Clothing", "shirt", models.CategoryTypeExpense},
	{"Medical", "first-aid", models.CategoryTypeExpense},
	{"Tax", "landmark", models.CategoryTypeExpense},
	{"Others", "folder", models.CategoryTypeExpense},
	{"Salary", "briefcase", models.CategoryTypeIncome},
	{"Investment", "trending-up", models.CategoryTypeIncome},
	{"Bonus", "award", models.CategoryTypeIncome},
}

// EnsureDefaultBook returns the user's current book, creating and seeding a
// default one if no books exist yet. A fresh book gets the default category
// set (only when no categories exist at all, since categories are global),
// a cash and a bank account at zero balance, and one member.
func (l *Ledger) EnsureDefaultBook(ctx context.Context, userID string) (*models.Book, error) {
	var count int
	if err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}

	if count > 0 {
		return l.CurrentBook(ctx, userID)
	}

	log.Println("No books found, seeding default book")

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	book := models.Book{ID: uuid.NewString(), Name: "Household Budget"}
	if _, err := tx.ExecContext(ctx, "INSERT INTO books (id, name) VALUES (?, ?)", book.ID, book.Name); err != nil {
		return nil, fmt.Errorf("failed to create default book: %w", err)
	}

	var categoryCount int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&categoryCount); err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if categoryCount == 0 {
		for i, c := range defaultCategories {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO categories (id, name, icon, type, sort_order)
				VALUES (?, ?, ?, ?, ?)
			`, uuid.NewString(), c.Name, c.Icon, c.Type, i+1)
			if err != nil {
				return nil, fmt.Errorf("failed to seed category %s: %w", c.Name, err)
			}
		}
	}

	defaultAccounts := []struct {
		Name string
		Type string
	}{
		{"Cash", models.AccountTypeCash},
		{"Bank", models.AccountTypeConventionalBank},
	}
	for _, a := range defaultAccounts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO accounts (id, book_id, name, type, balance)
			VALUES (?, ?, ?, ?, 0)
		`, uuid.NewString(), book.ID, a.Name, a.Type)
		if err != nil {
			return nil, fmt.Errorf("failed to seed account %s: %w", a.Name, err)
		}
	}

	_, err = tx.ExecContext(ctx, "INSERT INTO members (id, book_id, name) VALUES (?, ?, 'Self')", uuid.NewString(), book.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to seed member: %w", err)
	}

	if err := setCurrentBookTx(ctx, tx, userID, book.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit default book: %w", err)
	}
	return &book, nil
}

// CurrentBook resolves the user's remembered book selection, falling back
// to the first book when the remembered one is gone or never set.
func (l *Ledger) CurrentBook(ctx context.Context, userID string) (*models.Book, error) {
	var book models.Book
	err := l.db.QueryRowContext(ctx, `
		SELECT b.id, b.name, b.created_at
		FROM settings s JOIN books b ON b.id = s.current_book_id
		WHERE s.user_id = ?
	`, userID).Scan(&book.ID, &book.Name, &book.CreatedAt)
	if err == nil {
		return &book, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to read current book: %w", err)
	}

	err = l.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM books ORDER BY created_at, id LIMIT 1",
	).Scan(&book.ID, &book.Name, &book.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read first book: %w", err)
	}
	return &book, nil
}

// SetCurrentBook persists the user's book selection.
func (l *Ledger) SetCurrentBook(ctx context.Context, userID, bookID string) error {
	var exists bool
	err := l.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM books WHERE id = ?)", bookID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check book: %w", err)
	}
	if !exists {
		return fmt.Errorf("book %s: %w", bookID, ErrNotFound)
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := setCurrentBookTx(ctx, tx, userID, bookID); err != nil {
		return err
	}
	return tx.Commit()
}

func setCurrentBookTx(ctx context.Context, tx *sql.Tx, userID, bookID string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO settings (user_id, current_book_id) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET current_book_id = excluded.current_book_id
	`, userID, bookID)
	if err != nil {
		return fmt.Errorf("failed to persist current book: %w", err)
	}
	return nil
}
