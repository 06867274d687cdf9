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

// RecipeFilter narrows recipe listings. Zero values mean "no constraint".
type RecipeFilter struct {
	TagSlugs    []string
	AuthorID    uint
	FavoritedBy uint
	InCartOf    uint
}

// CartLine is one ingredient line joined across a user's shopping cart,
// in cart insertion order. Aggregation happens in the service layer.
type CartLine struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

// RecipeRepository defines persistence operations for recipes.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeFilter, limit, offset int, viewerID uint) ([]*models.Recipe, int64, error)
	Delete(ctx context.Context, id uint) error
	CartLines(ctx context.Context, userID uint) ([]CartLine, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository returns a new RecipeRepository implementation.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// applyRecipeDetails adds subqueries computing viewer-specific membership flags.
func (r *recipeRepository) applyRecipeDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	if viewerID != 0 {
		return db.Select("recipes.*, "+
			"EXISTS(SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?) AS is_favorited, "+
			"EXISTS(SELECT 1 FROM shopping_cart_entries WHERE shopping_cart_entries.recipe_id = recipes.id AND shopping_cart_entries.user_id = ?) AS is_in_shopping_cart",
			viewerID, viewerID)
	}
	return db.Select("recipes.*, 1 = 0 AS is_favorited, 1 = 0 AS is_in_shopping_cart")
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	defer observability.TrackQuery("create", "recipes")()

	lines := recipe.Ingredients
	tags := recipe.Tags

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].RecipeID = recipe.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		if len(tags) > 0 {
			if err := tx.Model(recipe).Omit("Tags.*").Association("Tags").Append(&tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	recipe.Ingredients = lines
	recipe.Tags = tags
	return nil
}

// Update replaces the recipe's scalar fields, its ingredient lines and its tag set.
func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	defer observability.TrackQuery("update", "recipes")()

	lines := recipe.Ingredients
	tags := recipe.Tags

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}
		// Clear and reinsert lines so removed ingredients drop out.
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientLine{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].ID = 0
			lines[i].RecipeID = recipe.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(recipe).Omit("Tags.*").Association("Tags").Replace(&tags); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	recipe.Ingredients = lines
	recipe.Tags = tags
	cache.InvalidateRecipe(ctx, recipe.ID)
	return nil
}

// GetByID loads one recipe with its author, tags and flattened ingredient
// lines. Anonymous reads share one cache entry; fields hidden from JSON (such
// as AuthorID) do not survive a cache hit, so ownership checks must pass the
// editor's viewer ID.
func (r *recipeRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Recipe, error) {
	var recipe models.Recipe

	fetch := func() error {
		defer observability.TrackQuery("get_by_id", "recipes")()
		err := r.applyRecipeDetails(r.db.WithContext(ctx), viewerID).
			Preload("Author").
			Preload("Tags").
			Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
				return db.Order("ingredient_lines.id")
			}).
			Preload("Ingredients.Ingredient").
			First(&recipe, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Recipe", id)
			}
			return models.NewInternalError(err)
		}
		flattenIngredientLines([]*models.Recipe{&recipe})
		return nil
	}

	var err error
	if viewerID == 0 {
		err = cache.CacheAside(ctx, cache.RecipeKey(id), &recipe, cache.RecipeTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}

	if err := r.enrichAuthors(ctx, []*models.Recipe{&recipe}, viewerID); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter, limit, offset int, viewerID uint) ([]*models.Recipe, int64, error) {
	defer observability.TrackQuery("list", "recipes")()

	base := r.db.WithContext(ctx).Model(&models.Recipe{})

	if len(filter.TagSlugs) > 0 {
		base = base.Where("recipes.id IN (?)",
			r.db.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.TagSlugs),
		)
	}
	if filter.AuthorID != 0 {
		base = base.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if filter.FavoritedBy != 0 {
		base = base.Where("EXISTS(SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?)", filter.FavoritedBy)
	}
	if filter.InCartOf != 0 {
		base = base.Where("EXISTS(SELECT 1 FROM shopping_cart_entries WHERE shopping_cart_entries.recipe_id = recipes.id AND shopping_cart_entries.user_id = ?)", filter.InCartOf)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var recipes []*models.Recipe
	err := r.applyRecipeDetails(base, viewerID).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("ingredient_lines.id")
		}).
		Preload("Ingredients.Ingredient").
		Order("recipes.created_at DESC, recipes.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	flattenIngredientLines(recipes)
	if err := r.enrichAuthors(ctx, recipes, viewerID); err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// Delete removes the recipe and its dependent rows. Memberships pointing at the
// recipe go with it so other users' carts and favorites shrink accordingly.
func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "recipes")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.IngredientLine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingCartEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, id)
	return nil
}

// CartLines returns every ingredient line across the user's cart in cart
// insertion order, then line order within a recipe.
func (r *recipeRepository) CartLines(ctx context.Context, userID uint) ([]CartLine, error) {
	defer observability.TrackQuery("cart_lines", "ingredient_lines")()

	var lines []CartLine
	err := r.db.WithContext(ctx).
		Table("ingredient_lines").
		Select("ingredients.name, ingredients.measurement_unit, ingredient_lines.amount").
		Joins("JOIN shopping_cart_entries ON shopping_cart_entries.recipe_id = ingredient_lines.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = ingredient_lines.ingredient_id").
		Where("shopping_cart_entries.user_id = ?", userID).
		Order("shopping_cart_entries.id, ingredient_lines.id").
		Scan(&lines).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return lines, nil
}

// flattenIngredientLines copies catalog fields from the preloaded Ingredient
// onto each line for serialization.
func flattenIngredientLines(recipes []*models.Recipe) {
	for _, recipe := range recipes {
		for i := range recipe.Ingredients {
			recipe.Ingredients[i].Name = recipe.Ingredients[i].Ingredient.Name
			recipe.Ingredients[i].MeasurementUnit = recipe.Ingredients[i].Ingredient.MeasurementUnit
		}
	}
}

// enrichAuthors sets is_subscribed on recipe authors for the viewer in one query.
func (r *recipeRepository) enrichAuthors(ctx context.Context, recipes []*models.Recipe, viewerID uint) error {
	if viewerID == 0 || len(recipes) == 0 {
		return nil
	}

	authorIDs := make([]uint, 0, len(recipes))
	seen := map[uint]struct{}{}
	for _, recipe := range recipes {
		if _, ok := seen[recipe.AuthorID]; ok {
			continue
		}
		seen[recipe.AuthorID] = struct{}{}
		authorIDs = append(authorIDs, recipe.AuthorID)
	}

	var subscribedIDs []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("subscriber_id = ? AND author_id IN ?", viewerID, authorIDs).
		Pluck("author_id", &subscribedIDs).Error; err != nil {
		return models.NewInternalError(err)
	}

	subscribed := make(map[uint]struct{}, len(subscribedIDs))
	for _, id := range subscribedIDs {
		subscribed[id] = struct{}{}
	}
	for _, recipe := range recipes {
		_, ok := subscribed[recipe.AuthorID]
		recipe.Author.IsSubscribed = ok
	}
	return nil
}
