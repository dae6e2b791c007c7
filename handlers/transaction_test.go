package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"duitkita/backend/database"
	"duitkita/backend/models"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

func getBalance(t *testing.T, accountID string) decimal.Decimal {
	t.Helper()
	var balance decimal.Decimal
	err := database.DB.QueryRow("SELECT balance FROM accounts WHERE id = ?", accountID).Scan(&balance)
	if err != nil {
		t.Fatalf("Failed to read balance of %s: %v", accountID, err)
	}
	return balance
}

func TestAddTransaction(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	reqBody := map[string]interface{}{
		"bookId":      "book-1",
		"amount":      50000,
		"type":        "expense",
		"categoryId":  "cat-food",
		"accountId":   "acct-cash",
		"memberId":    "member-1",
		"date":        "2026-03-10",
		"description": "Groceries",
	}

	req := NewAuthenticatedRequest("POST", "/transactions", reqBody)
	w := httptest.NewRecorder()

	AddTransaction(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var response models.Transaction
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.ID == "" {
		t.Error("Expected generated transaction ID in response")
	}
	if !response.Amount.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("Expected amount 50000, got %s", response.Amount)
	}

	// The expense must have hit the account balance
	balance := getBalance(t, "acct-cash")
	if !balance.Equal(decimal.NewFromInt(950000)) {
		t.Errorf("Expected balance 950000 after expense, got %s", balance)
	}
}

func TestAddTransactionRejectsBadInput(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "negative amount",
			body: map[string]interface{}{
				"bookId": "book-1", "amount": -100, "type": "expense",
				"categoryId": "cat-food", "accountId": "acct-cash",
				"memberId": "member-1", "date": "2026-03-10",
			},
		},
		{
			name: "bad type",
			body: map[string]interface{}{
				"bookId": "book-1", "amount": 100, "type": "transfer",
				"categoryId": "cat-food", "accountId": "acct-cash",
				"memberId": "member-1", "date": "2026-03-10",
			},
		},
		{
			name: "bad date",
			body: map[string]interface{}{
				"bookId": "book-1", "amount": 100, "type": "expense",
				"categoryId": "cat-food", "accountId": "acct-cash",
				"memberId": "member-1", "date": "10/03/2026",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := NewAuthenticatedRequest("POST", "/transactions", tc.body)
			w := httptest.NewRecorder()

			AddTransaction(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
			}
		})
	}

	// No writes leaked through
	balance := getBalance(t, "acct-cash")
	if !balance.Equal(decimal.NewFromInt(1000000)) {
		t.Errorf("Expected balance unchanged at 1000000, got %s", balance)
	}
}

func TestAddTransferTransaction(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	reqBody := map[string]interface{}{
		"bookId":        "book-1",
		"amount":        300000,
		"fromAccountId": "acct-bank",
		"toAccountId":   "acct-cash",
		"memberId":      "member-1",
		"date":          "2026-03-11",
	}

	req := NewAuthenticatedRequest("POST", "/transactions/transfer", reqBody)
	w := httptest.NewRecorder()

	AddTransferTransaction(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	from := getBalance(t, "acct-bank")
	to := getBalance(t, "acct-cash")
	if !from.Equal(decimal.NewFromInt(2200000)) {
		t.Errorf("Expected source balance 2200000, got %s", from)
	}
	if !to.Equal(decimal.NewFromInt(1300000)) {
		t.Errorf("Expected destination balance 1300000, got %s", to)
	}
}

func TestAddTransferSameAccount(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	reqBody := map[string]interface{}{
		"bookId":        "book-1",
		"amount":        10000,
		"fromAccountId": "acct-cash",
		"toAccountId":   "acct-cash",
		"memberId":      "member-1",
		"date":          "2026-03-11",
	}

	req := NewAuthenticatedRequest("POST", "/transactions/transfer", reqBody)
	w := httptest.NewRecorder()

	AddTransferTransaction(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestGetTransactionsMergesBothKinds(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	addReq := NewAuthenticatedRequest("POST", "/transactions", map[string]interface{}{
		"bookId": "book-1", "amount": 25000, "type": "expense",
		"categoryId": "cat-food", "accountId": "acct-cash",
		"memberId": "member-1", "date": "2026-03-05",
	})
	w := httptest.NewRecorder()
	AddTransaction(w, addReq)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to add transaction: %s", w.Body.String())
	}

	transferReq := NewAuthenticatedRequest("POST", "/transactions/transfer", map[string]interface{}{
		"bookId": "book-1", "amount": 100000,
		"fromAccountId": "acct-bank", "toAccountId": "acct-cash",
		"memberId": "member-1", "date": "2026-03-08",
	})
	w = httptest.NewRecorder()
	AddTransferTransaction(w, transferReq)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to add transfer: %s", w.Body.String())
	}

	req := NewAuthenticatedRequest("GET", "/transactions?bookId=book-1", nil)
	w = httptest.NewRecorder()
	GetTransactions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	var entries []models.LedgerEntry
	if err := json.NewDecoder(w.Body).Decode(&entries); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	// Newest date first
	if entries[0].Type != models.TransactionTypeTransfer {
		t.Errorf("Expected transfer first, got type %s", entries[0].Type)
	}
	if entries[1].Type != models.TransactionTypeExpense {
		t.Errorf("Expected expense second, got type %s", entries[1].Type)
	}
}

func TestDeleteTransaction(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	addReq := NewAuthenticatedRequest("POST", "/transactions", map[string]interface{}{
		"bookId": "book-1", "amount": 200000, "type": "income",
		"categoryId": "cat-salary", "accountId": "acct-bank",
		"memberId": "member-1", "date": "2026-03-01",
	})
	w := httptest.NewRecorder()
	AddTransaction(w, addReq)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to add transaction: %s", w.Body.String())
	}
	var created models.Transaction
	json.NewDecoder(w.Body).Decode(&created)

	// Route through mux so the path variable resolves
	router := mux.NewRouter()
	router.HandleFunc("/transactions/{id}", DeleteTransaction).Methods("DELETE")

	req := NewAuthenticatedRequest("DELETE", "/transactions/"+created.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	// Balance effect reversed
	balance := getBalance(t, "acct-bank")
	if !balance.Equal(decimal.NewFromInt(2500000)) {
		t.Errorf("Expected balance restored to 2500000, got %s", balance)
	}

	// Deleting again is a 404, not a silent no-op
	req = NewAuthenticatedRequest("DELETE", "/transactions/"+created.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, w.Code)
	}
}
