package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"duitkita/backend/database"
	"duitkita/backend/middleware"

	_ "github.com/mattn/go-sqlite3"
)

// Define a constant for the test user ID that can be used across all tests
const TestUserID = "test-user-id"

// SetupTestAuth adds authentication context to the request
func SetupTestAuth(req *http.Request) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, TestUserID)
	return req.WithContext(ctx)
}

// SetupTestDB initializes an in-memory database with the schema and a
// seeded book that tests can write against
func SetupTestDB() {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		panic(err)
	}
	// Each pooled connection would otherwise get its own :memory: database
	db.SetMaxOpenConns(1)
	database.DB = db

	if err := database.CreateSchema(db); err != nil {
		panic(err)
	}

	seed := []struct {
		query string
		args  []interface{}
	}{
		{"INSERT INTO users (id, username, name) VALUES (?, ?, ?)",
			[]interface{}{TestUserID, "testuser", "Test User"}},
		{"INSERT INTO books (id, name) VALUES (?, ?)",
			[]interface{}{"book-1", "Test Book"}},
		{"INSERT INTO settings (user_id, current_book_id) VALUES (?, ?)",
			[]interface{}{TestUserID, "book-1"}},
		{"INSERT INTO accounts (id, book_id, name, type, balance) VALUES (?, ?, ?, ?, ?)",
			[]interface{}{"acct-cash", "book-1", "Cash", "Cash", "1000000"}},
		{"INSERT INTO accounts (id, book_id, name, type, balance) VALUES (?, ?, ?, ?, ?)",
			[]interface{}{"acct-bank", "book-1", "Bank", "Conventional Bank", "2500000"}},
		{"INSERT INTO categories (id, name, icon, type, sort_order) VALUES (?, ?, ?, ?, ?)",
			[]interface{}{"cat-food", "Food", "utensils", "expense", 1}},
		{"INSERT INTO categories (id, name, icon, type, sort_order) VALUES (?, ?, ?, ?, ?)",
			[]interface{}{"cat-transport", "Transportation", "car", "expense", 2}},
		{"INSERT INTO categories (id, name, icon, type, sort_order) VALUES (?, ?, ?, ?, ?)",
			[]interface{}{"cat-salary", "Salary", "briefcase", "income", 3}},
		{"INSERT INTO members (id, book_id, name) VALUES (?, ?, ?)",
			[]interface{}{"member-1", "book-1", "Self"}},
	}
	for _, s := range seed {
		if _, err := db.Exec(s.query, s.args...); err != nil {
			panic(err)
		}
	}
}

// CleanupTestDB closes the test database connection
func CleanupTestDB() {
	if database.DB != nil {
		database.DB.Close()
		database.DB = nil
	}
}

// NewAuthenticatedRequest creates a new HTTP request with a mock authenticated user
func NewAuthenticatedRequest(method, url string, body interface{}) *http.Request {
	var req *http.Request

	if body != nil {
		buf, _ := json.Marshal(body)
		req = httptest.NewRequest(method, url, bytes.NewBuffer(buf))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	return SetupTestAuth(req)
}
