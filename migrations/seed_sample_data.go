package migrations

import (
	"database/sql"
	"fmt"
	"log"
	"os"
)

// SeedSampleData seeds sample ledger data for development and PR environments.
// This should only be called in non-production environments.
func SeedSampleData(db *sql.DB) error {
	// Check if we're in production - we should NEVER run this in production
	if os.Getenv("APP_ENV") == "production" || os.Getenv("ENV") == "production" {
		log.Println("Refusing to seed sample data in production environment")
		return nil
	}

	// Only seed if explicitly requested or in dev/PR environment
	if os.Getenv("RESET_DB") != "true" &&
		os.Getenv("APP_ENV") != "development" &&
		os.Getenv("PR_DEPLOYMENT") != "true" {
		log.Println("Skipping sample data seeding - not explicitly requested and not in dev/PR environment")
		return nil
	}

	log.Println("Seeding sample data for development/PR environment...")

	// Start a transaction for all operations
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	// Clear existing data, children first so foreign keys hold
	tables := []string{"transfer_transactions", "transactions", "accounts", "members", "settings", "categories", "books"}
	for _, table := range tables {
		_, err = tx.Exec("DELETE FROM " + table)
		if err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}

	// 1. Sample book
	_, err = tx.Exec("INSERT INTO books (id, name) VALUES ('book-1', 'Household Budget')")
	if err != nil {
		return fmt.Errorf("failed to seed book: %w", err)
	}

	// 2. Categories (global, ordered within type)
	categories := []struct {
		id, name, icon, ctype string
	}{
		{"cat-1", "Food", "utensils", "expense"},
		{"cat-2", "Transportation", "car", "expense"},
		{"cat-3", "Daily necessities", "shopping-cart", "expense"},
		{"cat-4", "Housing", "home", "expense"},
		{"cat-5", "Skincare", "smile", "expense"},
		{"cat-6", "Internet", "wifi", "expense"},
		{"cat-7", "Gifts", "gift", "expense"},
		{"cat-8", "Healing", "heart", "expense"},
		{"cat-9", "Clothing", "shirt", "expense"},
		{"cat-10", "Medical", "first-aid", "expense"},
		{"cat-11", "Tax", "landmark", "expense"},
		{"cat-12", "Others", "folder", "expense"},
		{"cat-13", "Salary", "briefcase", "income"},
		{"cat-14", "Investment", "trending-up", "income"},
		{"cat-15", "Bonus", "award", "income"},
	}
	for i, c := range categories {
		_, err = tx.Exec(`
			INSERT INTO categories (id, name, icon, type, sort_order)
			VALUES (?, ?, ?, ?, ?)
		`, c.id, c.name, c.icon, c.ctype, i+1)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.name, err)
		}
	}

	// 3. Members
	members := []struct {
		id, name string
	}{
		{"member-1", "Self"},
		{"member-2", "Husband"},
		{"member-3", "Wife"},
		{"member-4", "Children"},
		{"member-5", "Parents"},
	}
	for _, m := range members {
		_, err = tx.Exec("INSERT INTO members (id, book_id, name) VALUES (?, 'book-1', ?)", m.id, m.name)
		if err != nil {
			return fmt.Errorf("failed to seed member %s: %w", m.name, err)
		}
	}

	// 4. Accounts
	accounts := []struct {
		id, name, atype string
		balance         int64
	}{
		{"acct-1", "Cash", "Cash", 1000000},
		{"acct-2", "BRI", "Conventional Bank", 2500000},
		{"acct-3", "BNI", "Conventional Bank", 1800000},
		{"acct-4", "BSI", "Conventional Bank", 3000000},
		{"acct-5", "Seabank", "Digital Bank", 1200000},
		{"acct-6", "ShopeePay", "Ewallet", 500000},
		{"acct-7", "GoPay", "Ewallet", 350000},
		{"acct-8", "Bibit", "Investment", 5000000},
		{"acct-9", "Credit Card", "Debt", -2000000},
	}
	for _, a := range accounts {
		_, err = tx.Exec(`
			INSERT INTO accounts (id, book_id, name, type, balance)
			VALUES (?, 'book-1', ?, ?, ?)
		`, a.id, a.name, a.atype, a.balance)
		if err != nil {
			return fmt.Errorf("failed to seed account %s: %w", a.name, err)
		}
	}

	// 5. Sample transactions
	transactions := []struct {
		id         string
		amount     int64
		ttype      string
		categoryID string
		accountID  string
		memberID   string
		date       string
		desc       string
	}{
		{"tx-1", 50000, "expense", "cat-1", "acct-1", "member-1", "2024-04-10", "Lunch at restaurant"},
		{"tx-2", 25000, "expense", "cat-2", "acct-1", "member-1", "2024-04-10", "Bus fare"},
		{"tx-3", 5000000, "income", "cat-13", "acct-2", "member-2", "2024-04-01", "Monthly salary"},
		{"tx-4", 3000000, "income", "cat-13", "acct-3", "member-3", "2024-04-01", "Monthly salary"},
		{"tx-5", 1000000, "expense", "cat-4", "acct-2", "member-1", "2024-04-05", "Rent payment"},
		{"tx-6", 200000, "expense", "cat-6", "acct-7", "member-1", "2024-04-08", "Internet bill"},
		{"tx-7", 350000, "expense", "cat-5", "acct-6", "member-3", "2024-04-09", "Skincare products"},
	}
	for _, t := range transactions {
		_, err = tx.Exec(`
			INSERT INTO transactions (id, book_id, amount, type, category_id, account_id, member_id, date, description)
			VALUES (?, 'book-1', ?, ?, ?, ?, ?, ?, ?)
		`, t.id, t.amount, t.ttype, t.categoryID, t.accountID, t.memberID, t.date, t.desc)
		if err != nil {
			return fmt.Errorf("failed to seed transaction %s: %w", t.id, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sample data: %w", err)
	}

	log.Println("Sample data seeded successfully")
	return nil
}
