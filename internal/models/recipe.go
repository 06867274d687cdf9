package models

import (
	"time"
)

// Bounds enforced on recipe payloads at write time.
const (
	MinIngredientAmount = 1
	MaxIngredientAmount = 1000
	MinCookingTime      = 1
	MaxCookingTime      = 1440
)

// Tag is admin-managed reference data attached to recipes.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Color string `gorm:"size:7;uniqueIndex;not null" json:"color"`
	Slug  string `gorm:"size:200;uniqueIndex;not null" json:"slug"`
}

// Ingredient is immutable reference data identified by (name, measurement unit).
type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:200;index;uniqueIndex:idx_ingredient_name_unit;not null" json:"name"`
	MeasurementUnit string `gorm:"size:200;uniqueIndex:idx_ingredient_name_unit;not null" json:"measurement_unit"`
}

// Recipe is a published dish owned by exactly one author.
type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;index;not null" json:"name"`
	Image       string    `json:"image"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CookingTime int       `gorm:"not null" json:"cooking_time"`
	AuthorID    uint      `gorm:"not null;index" json:"-"`
	Author      User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	Ingredients []IngredientLine `gorm:"foreignKey:RecipeID" json:"ingredients"`
	Tags        []Tag            `gorm:"many2many:recipe_tags;" json:"tags"`

	// IsFavorited reports whether the requesting user favorited this recipe (computed)
	IsFavorited bool `gorm:"->;-:migration" json:"is_favorited"`
	// IsInShoppingCart reports whether this recipe is in the requesting user's cart (computed)
	IsInShoppingCart bool `gorm:"->;-:migration" json:"is_in_shopping_cart"`
}

// IngredientLine joins a recipe to an ingredient with an amount.
// A recipe references each ingredient at most once.
type IngredientLine struct {
	ID           uint       `gorm:"primaryKey" json:"-"`
	RecipeID     uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"-"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"-"`
	Amount       int        `gorm:"not null" json:"amount"`

	// Name and MeasurementUnit are flattened from the preloaded Ingredient at read time.
	Name            string `gorm:"-" json:"name"`
	MeasurementUnit string `gorm:"-" json:"measurement_unit"`
}

// RecipeShort is the compact recipe representation returned by membership endpoints.
type RecipeShort struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// Short returns the compact representation of the recipe.
func (r *Recipe) Short() RecipeShort {
	return RecipeShort{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}
