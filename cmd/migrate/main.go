// Command migrate applies the database schema for the backend.
package main

import (
	"fmt"
	"log"

	"foodgram/internal/config"
	"foodgram/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	log.Println("migrations applied")
	return nil
}
