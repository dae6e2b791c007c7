package middleware

import (
	"net/http"
	"os"
	"strings"
)

// EnableCORS creates a middleware that handles CORS headers
func EnableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := getAllowedOrigins()

		if isAllowedOrigin(origin, allowedOrigins) || isDevelopmentMode() {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			// For when no origin is provided or not allowed
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins[0])
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Authorization, X-Requested-With, Accept, Origin")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "3600")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isDevelopmentMode returns true if running in development mode
func isDevelopmentMode() bool {
	env := os.Getenv("ENV")
	return env == "" || env == "development" || env == "dev"
}

// getAllowedOrigins returns the list of allowed origins based on environment
func getAllowedOrigins() []string {
	// Production environment - check environment variable first
	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins != "" {
		return strings.Split(corsOrigins, ",")
	}

	// Default allowed origins including production and development
	return []string{
		"https://duitkita.fly.dev", // Production
		"http://localhost:5173",    // Vite development server
		"http://localhost:8080",    // Backend port
	}
}

// isAllowedOrigin checks if the provided origin is in the allowed list
func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}

	for _, allowed := range allowedOrigins {
		if origin == allowed {
			return true
		}
	}

	return false
}
