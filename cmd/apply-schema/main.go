package main

import (
	"log"
	"os"

	"dorry-backend/internal/config"
	"dorry-backend/internal/database"
)

// apply-schema executes a SQL file against the configured database.
// Usage: apply-schema scripts/schema.sql
func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: %s <schema_file.sql>", os.Args[0])
	}

	sqlContent, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read schema file: %v", err)
	}

	cfg := config.Load()
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(string(sqlContent)); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	log.Printf("Applied %s to %s", os.Args[1], cfg.Database.Database)
}
