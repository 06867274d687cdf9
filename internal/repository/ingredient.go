package repository

import (
	"context"
	"errors"

	"foodgram/internal/cache"
	"foodgram/internal/models"
	"foodgram/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngredientRepository defines persistence operations for the ingredient catalog.
type IngredientRepository interface {
	Search(ctx context.Context, namePrefix string, limit int) ([]models.Ingredient, error)
	GetByID(ctx context.Context, id uint) (*models.Ingredient, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error)
	BulkImport(ctx context.Context, ingredients []models.Ingredient) (int64, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository returns a new IngredientRepository implementation.
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// Search returns ingredients whose name starts with namePrefix, case-insensitive.
// An empty prefix lists the catalog from the start. Results are cached per
// (prefix, limit) pair; BulkImport drops the cached searches.
func (r *ingredientRepository) Search(ctx context.Context, namePrefix string, limit int) ([]models.Ingredient, error) {
	if limit <= 0 {
		limit = 50
	}

	var ingredients []models.Ingredient
	fetch := func() error {
		defer observability.TrackQuery("search", "ingredients")()
		q := r.db.WithContext(ctx).Order("name").Limit(limit)
		if namePrefix != "" {
			// LOWER + LIKE works on both PostgreSQL and SQLite, unlike ILIKE.
			q = q.Where("LOWER(name) LIKE LOWER(?)", namePrefix+"%")
		}
		if err := q.Find(&ingredients).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	key := cache.IngredientSearchKey(namePrefix, limit)
	if err := cache.CacheAside(ctx, key, &ingredients, cache.IngredientTTL, fetch); err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) GetByID(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Ingredient", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ingredients, nil
}

// BulkImport inserts catalog rows, skipping (name, unit) pairs that already exist.
// Returns the number of rows actually inserted.
func (r *ingredientRepository) BulkImport(ctx context.Context, ingredients []models.Ingredient) (int64, error) {
	if len(ingredients) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(ingredients, 500)
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateIngredientSearches(ctx)
	}
	return result.RowsAffected, nil
}
