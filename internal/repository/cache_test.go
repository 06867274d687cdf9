package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram/internal/cache"
	"foodgram/internal/models"
)

func setupTestCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
	return mr
}

func TestRecipeGetByIDAnonymousCacheAside(t *testing.T) {
	db := setupTestDB(t)
	mr := setupTestCache(t)
	ctx := context.Background()

	author := createTestUser(t, db, "chef")
	tag := createTestTag(t, db, "Lunch", "#00FF00", "lunch")
	ing := createTestIngredient(t, db, "Salt", "g")

	repo := NewRecipeRepository(db)
	recipe := &models.Recipe{
		Name:        "Borscht",
		Text:        "Simmer slowly.",
		Image:       "/media/borscht.jpg",
		CookingTime: 40,
		AuthorID:    author.ID,
		Ingredients: []models.IngredientLine{{IngredientID: ing.ID, Amount: 3}},
		Tags:        []models.Tag{*tag},
	}
	require.NoError(t, repo.Create(ctx, recipe))

	// First anonymous read populates the cache.
	got, err := repo.GetByID(ctx, recipe.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Borscht", got.Name)
	assert.True(t, mr.Exists(cache.RecipeKey(recipe.ID)))

	// A direct DB change stays invisible to anonymous readers until invalidation,
	// proving the second read is a cache hit.
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Update("name", "Solyanka").Error)
	cached, err := repo.GetByID(ctx, recipe.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Borscht", cached.Name)
	assert.Equal(t, "Salt", cached.Ingredients[0].Name)

	// Viewer-specific reads skip the cache and keep the full row.
	viewer := createTestUser(t, db, "viewer")
	fresh, err := repo.GetByID(ctx, recipe.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Solyanka", fresh.Name)
	assert.Equal(t, author.ID, fresh.AuthorID)

	// Update drops the cached entry.
	fresh.Name = "Shchi"
	require.NoError(t, repo.Update(ctx, fresh))
	refetched, err := repo.GetByID(ctx, recipe.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Shchi", refetched.Name)
}

func TestIngredientSearchCacheAside(t *testing.T) {
	db := setupTestDB(t)
	mr := setupTestCache(t)
	ctx := context.Background()

	createTestIngredient(t, db, "Salt", "g")
	repo := NewIngredientRepository(db)

	first, err := repo.Search(ctx, "sa", 10)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, mr.Exists(cache.IngredientSearchKey("sa", 10)))

	// A row added behind the cache's back is invisible to the same search.
	createTestIngredient(t, db, "Saffron", "g")
	cached, err := repo.Search(ctx, "sa", 10)
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	// A different limit is a different cache entry.
	wider, err := repo.Search(ctx, "sa", 20)
	require.NoError(t, err)
	assert.Len(t, wider, 2)

	// Bulk import drops every cached search.
	inserted, err := repo.BulkImport(ctx, []models.Ingredient{{Name: "Sage", MeasurementUnit: "g"}})
	require.NoError(t, err)
	require.EqualValues(t, 1, inserted)

	refreshed, err := repo.Search(ctx, "sa", 10)
	require.NoError(t, err)
	assert.Len(t, refreshed, 3)
}
