package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"duitkita/backend/database"
	"duitkita/backend/handlers"
	"duitkita/backend/middleware"
	"duitkita/backend/migrations"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command line flags
	noExit := flag.Bool("no-exit", false, "Don't exit after database reset")
	resetDB := flag.Bool("reset-db", false, "Force reset the database")
	flag.Parse()

	// Load .env if present; real deployments set env vars directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Check if we're running in database reset mode
	isResetDB := os.Getenv("RESET_DB") == "true" || *resetDB

	// Check environment
	isDevelopment := os.Getenv("APP_ENV") != "production" &&
		os.Getenv("ENV") != "production"

	if isResetDB {
		log.Println("Running in database reset mode")
	}

	if isDevelopment {
		log.Println("Running in development environment")
	}

	// Initialize database
	err := database.InitDB()
	if err != nil {
		log.Fatal(err)
	}

	// Run migrations (including sample data seeding if in dev/PR environment)
	log.Println("Running migrations...")
	err = migrations.RunMigrations(database.DB)
	if err != nil {
		log.Printf("Warning: Failed to run migrations: %v", err)
	}

	// If running in reset mode, exit after database setup is complete
	// unless --no-exit flag is provided
	if isResetDB && !*noExit {
		log.Println("Database reset completed successfully. Exiting.")
		return
	}

	// Initialize Firebase Admin SDK
	log.Println("Initializing Firebase Admin SDK...")
	err = middleware.InitializeFirebase()
	if err != nil {
		log.Printf("Warning: Failed to initialize Firebase: %v", err)
		log.Println("Auth token verification will be disabled!")
	}

	// Create router
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.EnableCORS)

	// Register routes with both direct paths and /api prefix to maintain compatibility
	registerRoutes(r)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter)

	// Serve static files from the "dist" directory for the frontend
	fs := http.FileServer(http.Dir("./dist"))
	r.PathPrefix("/assets/").Handler(http.StripPrefix("", fs))
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Don't log asset requests
		if !strings.HasPrefix(r.URL.Path, "/assets/") {
			log.Printf("Serving index.html for path: %s", r.URL.Path)
		}
		http.ServeFile(w, r, "./dist/index.html")
	}).Methods("GET")

	// Configure the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// Start the server
	log.Printf("Starting server on port %s...", port)
	log.Fatal(srv.ListenAndServe())
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router) {
	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	// Create a subrouter for authenticated routes
	protectedRouter := r.PathPrefix("").Subrouter()
	protectedRouter.Use(middleware.AuthMiddleware)

	// Session hydration
	protectedRouter.HandleFunc("/bootstrap", handlers.GetBootstrap).Methods("GET")
	protectedRouter.HandleFunc("/users/sync", handlers.SyncUser).Methods("POST")

	// Book routes
	protectedRouter.HandleFunc("/books", handlers.GetBooks).Methods("GET")
	protectedRouter.HandleFunc("/books", handlers.AddBook).Methods("POST")
	protectedRouter.HandleFunc("/books/current", handlers.SetCurrentBook).Methods("PUT")

	// Account routes
	protectedRouter.HandleFunc("/accounts", handlers.GetAccounts).Methods("GET")
	protectedRouter.HandleFunc("/accounts", handlers.AddAccount).Methods("POST")
	protectedRouter.HandleFunc("/accounts/{id}", handlers.UpdateAccount).Methods("PUT")

	// Category routes
	protectedRouter.HandleFunc("/categories", handlers.GetCategories).Methods("GET")
	protectedRouter.HandleFunc("/categories", handlers.AddCategory).Methods("POST")
	protectedRouter.HandleFunc("/categories/order", handlers.ReorderCategories).Methods("PUT")

	// Member routes
	protectedRouter.HandleFunc("/members", handlers.GetMembers).Methods("GET")
	protectedRouter.HandleFunc("/members", handlers.AddMember).Methods("POST")

	// Transaction routes (regular + transfer, merged on read)
	protectedRouter.HandleFunc("/transactions", handlers.GetTransactions).Methods("GET")
	protectedRouter.HandleFunc("/transactions", handlers.AddTransaction).Methods("POST")
	protectedRouter.HandleFunc("/transactions/transfer", handlers.AddTransferTransaction).Methods("POST")
	protectedRouter.HandleFunc("/transactions/{id}", handlers.DeleteTransaction).Methods("DELETE")

	// Report routes
	protectedRouter.HandleFunc("/reports/summary", handlers.GetMonthlySummary).Methods("GET")
	protectedRouter.HandleFunc("/reports/breakdown", handlers.GetBreakdown).Methods("GET")
	protectedRouter.HandleFunc("/reports/calendar", handlers.GetCalendar).Methods("GET")
	protectedRouter.HandleFunc("/reports/trend", handlers.GetTrend).Methods("GET")
}
