// Command loadingredients bulk-imports the ingredient catalog from a CSV file.
package main

import (
	"context"
	"flag"
	"log"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/repository"
	"foodgram/internal/seed"
)

func main() {
	path := flag.String("file", "data/ingredients.csv", "Path to the name,unit CSV file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ingredients, err := seed.LoadIngredientsCSV(*path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *path, err)
	}

	repo := repository.NewIngredientRepository(db)
	inserted, err := repo.BulkImport(context.Background(), ingredients)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Imported %d of %d ingredients (%d already present)",
		inserted, len(ingredients), int64(len(ingredients))-inserted)
}
