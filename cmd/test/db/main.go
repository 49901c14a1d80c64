package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-jobboard/internal/config"
	"go-jobboard/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set. Please check your .env file.")
	}

	fmt.Println("Attempting to connect to PostgreSQL...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to the database. Error: %v\n(Check your connection string and network access)", err)
	}
	defer repo.Close()

	jobs, err := repo.List(ctx)
	if err != nil {
		log.Fatalf("❌ Query failed: %v", err)
	}

	fmt.Println("✅ Successfully connected to the job database!")
	fmt.Printf("📦 Stored jobs: %d\n", len(jobs))
}
