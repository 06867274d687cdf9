package repository

import (
	"context"
	"testing"

	"foodgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembershipRepository_FavoriteAddRemove(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewMembershipRepository(db)
	recipes := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	egg := createTestIngredient(t, db, "egg", "pcs")

	recipe := &models.Recipe{
		Name: "Omelette", Text: "Fry.", CookingTime: 10, AuthorID: author.ID,
		Ingredients: []models.IngredientLine{{IngredientID: egg.ID, Amount: 3}},
	}
	require.NoError(t, recipes.Create(ctx, recipe))

	added, err := repo.AddFavorite(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, added)

	// Second add is absorbed by ON CONFLICT DO NOTHING
	added, err = repo.AddFavorite(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, added)

	removed, err := repo.RemoveFavorite(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.RemoveFavorite(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMembershipRepository_CartAddRemove(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewMembershipRepository(db)
	recipes := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "cook")
	shopper := createTestUser(t, db, "shopper")
	rice := createTestIngredient(t, db, "rice", "g")

	first := &models.Recipe{
		Name: "Pilaf", Text: "Simmer.", CookingTime: 50, AuthorID: author.ID,
		Ingredients: []models.IngredientLine{{IngredientID: rice.ID, Amount: 400}},
	}
	second := &models.Recipe{
		Name: "Risotto", Text: "Stir.", CookingTime: 35, AuthorID: author.ID,
		Ingredients: []models.IngredientLine{{IngredientID: rice.ID, Amount: 320}},
	}
	require.NoError(t, recipes.Create(ctx, first))
	require.NoError(t, recipes.Create(ctx, second))

	added, err := repo.AddCartEntry(ctx, shopper.ID, second.ID)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = repo.AddCartEntry(ctx, shopper.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddCartEntry(ctx, shopper.ID, second.ID)
	require.NoError(t, err)
	assert.False(t, added)

	ids, err := repo.CartRecipeIDs(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{second.ID, first.ID}, ids)

	removed, err := repo.RemoveCartEntry(ctx, shopper.ID, second.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.RemoveCartEntry(ctx, shopper.ID, second.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	ids, err = repo.CartRecipeIDs(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{first.ID}, ids)
}
