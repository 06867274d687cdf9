// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"foodgram/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password shared by all seeded users.
const DefaultPassword = "password123"

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumRecipes  int
	ShouldClean bool
}

// Seeder populates the database with demo data.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seeding
	return &Seeder{db: db, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// defaultTags is the fixed tag preset for demo environments.
var defaultTags = []models.Tag{
	{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
	{Name: "Dessert", Color: "#F0388D", Slug: "dessert"},
}

var measurementUnits = []string{"g", "kg", "ml", "l", "pcs", "tbsp", "tsp", "cup"}

// Run seeds the database with users, catalog data, recipes and memberships.
func (s *Seeder) Run(opts Options) error {
	log.Printf("Starting database seeding with %d users and %d recipes...", opts.NumUsers, opts.NumRecipes)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	tags, err := s.SeedTags()
	if err != nil {
		return fmt.Errorf("failed to seed tags: %w", err)
	}
	log.Printf("✓ %d tags available", len(tags))

	ingredients, err := s.SeedIngredients(50)
	if err != nil {
		return fmt.Errorf("failed to seed ingredients: %w", err)
	}
	log.Printf("✓ %d ingredients available", len(ingredients))

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	recipes, err := s.SeedRecipes(users, tags, ingredients, opts.NumRecipes)
	if err != nil {
		return fmt.Errorf("failed to seed recipes: %w", err)
	}
	log.Printf("✓ %d recipes created", len(recipes))

	if err := s.SeedMemberships(users, recipes); err != nil {
		return fmt.Errorf("failed to seed memberships: %w", err)
	}
	log.Println("✓ favorites, carts and subscriptions created")

	log.Println("Database seeding completed successfully!")
	return nil
}

// ClearAll removes all seeded data. Order follows foreign key dependencies.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"ingredient_lines", "recipe_tags", "favorites", "shopping_cart_entries",
		"subscriptions", "recipes", "ingredients", "tags", "users",
	}
	sql := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE;", strings.Join(tables, ", "))
	return s.db.Exec(sql).Error
}

// SeedTags inserts the default tag preset, reusing tags that already exist.
func (s *Seeder) SeedTags() ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(defaultTags))
	for _, preset := range defaultTags {
		tag := preset
		if err := s.db.Where(models.Tag{Slug: tag.Slug}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// SeedIngredients generates catalog entries with unique (name, unit) pairs.
func (s *Seeder) SeedIngredients(n int) ([]models.Ingredient, error) {
	seen := make(map[string]struct{}, n)
	ingredients := make([]models.Ingredient, 0, n)
	for len(ingredients) < n {
		name := strings.ToLower(gofakeit.Vegetable())
		if s.rand.Intn(2) == 0 {
			name = strings.ToLower(gofakeit.Fruit())
		}
		unit := measurementUnits[s.rand.Intn(len(measurementUnits))]
		key := name + "|" + unit
		if _, dup := seen[key]; dup {
			if len(seen) >= n*len(measurementUnits) {
				break
			}
			continue
		}
		seen[key] = struct{}{}
		ingredients = append(ingredients, models.Ingredient{Name: name, MeasurementUnit: unit})
	}

	if err := s.db.Create(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// SeedUsers creates users sharing DefaultPassword. The hash is computed once.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		users = append(users, models.User{
			Email:     fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Username:  fmt.Sprintf("%s_%s_%d", strings.ToLower(first), strings.ToLower(last), i),
			FirstName: first,
			LastName:  last,
			Password:  string(hashed),
		})
	}

	if err := s.db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SeedRecipes creates recipes with random tag sets and ingredient lines.
func (s *Seeder) SeedRecipes(users []models.User, tags []models.Tag, ingredients []models.Ingredient, n int) ([]models.Recipe, error) {
	if len(users) == 0 || len(tags) == 0 || len(ingredients) == 0 {
		return nil, fmt.Errorf("users, tags and ingredients must be seeded first")
	}

	recipes := make([]models.Recipe, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rand.Intn(len(users))]
		recipe := models.Recipe{
			Name:        gofakeit.Dinner(),
			Text:        gofakeit.Paragraph(1, 3, 10, "\n"),
			Image:       fmt.Sprintf("/media/seed-%s.jpg", gofakeit.UUID()),
			CookingTime: 5 + s.rand.Intn(120),
			AuthorID:    author.ID,
			CreatedAt:   time.Now().Add(-time.Duration(s.rand.Intn(90*24)) * time.Hour),
			Tags:        s.pickTags(tags),
			Ingredients: s.pickLines(ingredients),
		}
		if err := s.db.Create(&recipe).Error; err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func (s *Seeder) pickTags(tags []models.Tag) []models.Tag {
	count := 1 + s.rand.Intn(2)
	picked := make([]models.Tag, 0, count)
	perm := s.rand.Perm(len(tags))
	for _, idx := range perm[:count] {
		picked = append(picked, tags[idx])
	}
	return picked
}

func (s *Seeder) pickLines(ingredients []models.Ingredient) []models.IngredientLine {
	count := 2 + s.rand.Intn(4)
	if count > len(ingredients) {
		count = len(ingredients)
	}
	lines := make([]models.IngredientLine, 0, count)
	perm := s.rand.Perm(len(ingredients))
	for _, idx := range perm[:count] {
		lines = append(lines, models.IngredientLine{
			IngredientID: ingredients[idx].ID,
			Amount:       models.MinIngredientAmount + s.rand.Intn(models.MaxIngredientAmount),
		})
	}
	return lines
}

// SeedMemberships creates random favorites, cart entries and subscriptions.
// Conflicting inserts are skipped so reruns stay idempotent.
func (s *Seeder) SeedMemberships(users []models.User, recipes []models.Recipe) error {
	for _, user := range users {
		for _, recipe := range recipes {
			if s.rand.Intn(5) == 0 {
				fav := models.Favorite{UserID: user.ID, RecipeID: recipe.ID}
				if err := s.db.Where(fav).FirstOrCreate(&fav).Error; err != nil {
					return err
				}
			}
			if s.rand.Intn(10) == 0 {
				entry := models.ShoppingCartEntry{UserID: user.ID, RecipeID: recipe.ID}
				if err := s.db.Where(entry).FirstOrCreate(&entry).Error; err != nil {
					return err
				}
			}
		}
		for _, author := range users {
			if author.ID == user.ID || s.rand.Intn(6) != 0 {
				continue
			}
			sub := models.Subscription{SubscriberID: user.ID, AuthorID: author.ID}
			if err := s.db.Where(sub).FirstOrCreate(&sub).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
