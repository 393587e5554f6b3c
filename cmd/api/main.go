package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kurihiro0119/github-wrapped/internal/api"
	"github.com/kurihiro0119/github-wrapped/internal/config"
	"github.com/kurihiro0119/github-wrapped/internal/github"
	"github.com/kurihiro0119/github-wrapped/internal/storage"
	"github.com/kurihiro0119/github-wrapped/internal/storage/postgres"
	"github.com/kurihiro0119/github-wrapped/internal/storage/sqlite"
	"github.com/kurihiro0119/github-wrapped/internal/wrapped"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize storage; the connection is owned here and injected below
	var store storage.Store
	switch cfg.StorageType {
	case "postgres":
		store, err = postgres.NewPostgresStore(cfg.PostgresURL)
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL store: %v", err)
		}
	default:
		store, err = sqlite.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite store: %v", err)
		}
	}
	defer store.Close()

	// Initialize the GitHub client
	var fetcher wrapped.Fetcher
	if cfg.GitHubEndpoint != "" {
		fetcher = github.NewClientWithEndpoint(cfg.GitHubToken, cfg.GitHubEndpoint)
	} else {
		fetcher = github.NewClient(cfg.GitHubToken)
	}

	// Initialize the wrapped service
	service := wrapped.NewService(fetcher, store)

	// Initialize handler
	handler := api.NewHandler(service)

	// Setup routes
	router := api.SetupRoutes(handler)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	fmt.Printf("Starting API server on %s\n", addr)
	fmt.Printf("Storage type: %s\n", cfg.StorageType)

	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}
