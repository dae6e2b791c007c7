package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"duitkita/backend/database"
)

func TestGetBootstrapRequiresAuth(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	// No auth context on the request
	req := httptest.NewRequest("GET", "/bootstrap", nil)
	w := httptest.NewRecorder()

	GetBootstrap(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestGetBootstrapReturnsSeededBook(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	req := NewAuthenticatedRequest("GET", "/bootstrap", nil)
	w := httptest.NewRecorder()

	GetBootstrap(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp BootstrapResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.CurrentBook.ID != "book-1" {
		t.Errorf("Expected current book book-1, got %s", resp.CurrentBook.ID)
	}
	if len(resp.Books) != 1 {
		t.Errorf("Expected 1 book, got %d", len(resp.Books))
	}
	if len(resp.Accounts) != 2 {
		t.Errorf("Expected 2 accounts, got %d", len(resp.Accounts))
	}
	if len(resp.Categories) != 3 {
		t.Errorf("Expected 3 categories, got %d", len(resp.Categories))
	}
	if len(resp.Members) != 1 {
		t.Errorf("Expected 1 member, got %d", len(resp.Members))
	}
	if resp.Transactions == nil {
		t.Error("Expected transactions to be an empty array, not null")
	}
}

func TestGetBootstrapSeedsFreshUser(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	// Wipe the seeded data so the bootstrap has to create the defaults
	for _, table := range []string{"settings", "members", "accounts", "categories", "books"} {
		if _, err := database.DB.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("Failed to clear %s: %v", table, err)
		}
	}

	req := NewAuthenticatedRequest("GET", "/bootstrap", nil)
	w := httptest.NewRecorder()

	GetBootstrap(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp BootstrapResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.CurrentBook.Name != "Household Budget" {
		t.Errorf("Expected default book 'Household Budget', got '%s'", resp.CurrentBook.Name)
	}
	if len(resp.Categories) == 0 {
		t.Error("Expected seeded default categories")
	}
	if len(resp.Accounts) != 2 {
		t.Errorf("Expected 2 default accounts, got %d", len(resp.Accounts))
	}
	if len(resp.Members) != 1 {
		t.Errorf("Expected 1 default member, got %d", len(resp.Members))
	}
}
