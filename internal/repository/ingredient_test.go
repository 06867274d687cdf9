package repository

import (
	"context"
	"testing"

	"foodgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientRepository_Search(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewIngredientRepository(db)
	ctx := context.Background()

	createTestIngredient(t, db, "Cabbage", "g")
	createTestIngredient(t, db, "carrot", "g")
	createTestIngredient(t, db, "milk", "ml")

	t.Run("Prefix is case-insensitive", func(t *testing.T) {
		got, err := repo.Search(ctx, "ca", 50)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Cabbage", got[0].Name)
		assert.Equal(t, "carrot", got[1].Name)
	})

	t.Run("Prefix only matches the start", func(t *testing.T) {
		got, err := repo.Search(ctx, "ilk", 50)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Empty prefix lists catalog", func(t *testing.T) {
		got, err := repo.Search(ctx, "", 50)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("Limit applies", func(t *testing.T) {
		got, err := repo.Search(ctx, "", 1)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestIngredientRepository_BulkImport(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewIngredientRepository(db)
	ctx := context.Background()

	inserted, err := repo.BulkImport(ctx, []models.Ingredient{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "flour", MeasurementUnit: "cup"},
		{Name: "salt", MeasurementUnit: "g"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, inserted)

	// Same (name, unit) pairs are skipped on a second import
	inserted, err = repo.BulkImport(ctx, []models.Ingredient{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "pepper", MeasurementUnit: "g"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, inserted)

	got, err := repo.Search(ctx, "flour", 50)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestTagRepository(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Tag{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}))
	require.NoError(t, repo.Create(ctx, &models.Tag{Name: "Dinner", Color: "#49B64E", Slug: "dinner"}))

	t.Run("Duplicate slug rejected", func(t *testing.T) {
		err := repo.Create(ctx, &models.Tag{Name: "Other", Color: "#000000", Slug: "dinner"})
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})

	t.Run("List", func(t *testing.T) {
		tags, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "breakfast", tags[0].Slug)
	})

	t.Run("GetByIDs", func(t *testing.T) {
		all, err := repo.List(ctx)
		require.NoError(t, err)
		got, err := repo.GetByIDs(ctx, []uint{all[0].ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, all[0].Slug, got[0].Slug)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999)
		require.Error(t, err)
	})
}
