// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numRecipes := flag.Int("recipes", 100, "Number of recipes to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d recipes, clean=%v\n", *numUsers, *numRecipes, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if err := s.Run(seed.Options{
		NumUsers:    *numUsers,
		NumRecipes:  *numRecipes,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("All done! Test users share the password: %s", seed.DefaultPassword)
}
