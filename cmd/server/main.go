/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Warp Capacity Engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load planning policy (optional JSON file)
  3. Initialize SQLite store
  4. Create API handler with dependencies
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: capacity.db)
           Use ":memory:" for in-memory database
  -policy  Path to a JSON policy file (default: built-in policy)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/capacity.db"

  # Run with in-memory database and custom policy
  ./server -db=":memory:" -policy="./policy.json"

  # Run on different port
  ./server -port=3000

ENVIRONMENT:
  No environment variables currently. All config via flags.
  Future: DATABASE_URL, PORT, LOG_LEVEL

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - factory/policy.go: Policy JSON parsing
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/capacity-engine/api"
	"github.com/warp/capacity-engine/capacity"
	"github.com/warp/capacity-engine/factory"
	"github.com/warp/capacity-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "capacity.db", "SQLite database path")
	policyPath := flag.String("policy", "", "JSON policy file (optional)")
	flag.Parse()

	// Load policy
	policy, err := loadPolicy(*policyPath)
	if err != nil {
		log.Fatalf("Failed to load policy: %v", err)
	}

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize handler
	handler := api.NewHandler(store, capacity.NewEngine(policy))

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// loadPolicy reads the policy file if one was given, falling back to the
// built-in defaults otherwise.
func loadPolicy(path string) (capacity.Policy, error) {
	if path == "" {
		return capacity.DefaultPolicy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return capacity.Policy{}, fmt.Errorf("read policy file: %w", err)
	}
	return factory.NewPolicyFactory().ParsePolicy(string(data))
}
