package migrations

import "database/sql"

// AddLedgerIndexes adds the indexes the transaction list and report queries
// depend on: book scoping and date-range filtering on both ledger tables.
func AddLedgerIndexes(db *sql.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_transactions_book_date ON transactions(book_id, date)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_id)",
		"CREATE INDEX IF NOT EXISTS idx_transfers_book_date ON transfer_transactions(book_id, date)",
		"CREATE INDEX IF NOT EXISTS idx_accounts_book ON accounts(book_id)",
		"CREATE INDEX IF NOT EXISTS idx_members_book ON members(book_id)",
		"CREATE INDEX IF NOT EXISTS idx_categories_sort ON categories(type, sort_order)",
	}

	for _, stmt := range indexes {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
