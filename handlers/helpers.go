package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"duitkita/backend/services"
)

const dateLayout = "2006-01-02"

// writeJSON writes v as a JSON response body. Encoding errors at this
// point can only be logged.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeLedgerError maps service errors onto HTTP statuses: validation
// failures are the caller's fault, missing rows are 404, everything else is
// a server-side failure that gets logged and surfaced uniformly.
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrAmountNotPositive),
		errors.Is(err, services.ErrInvalidType),
		errors.Is(err, services.ErrSameAccount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("Ledger operation failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// parseDate parses a calendar date from a request body or query string.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
