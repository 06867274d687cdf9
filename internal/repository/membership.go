package repository

import (
	"context"

	"foodgram/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MembershipRepository manages the favorite and shopping cart sets.
// Adds are idempotent at the SQL level; a second add reports false via
// RowsAffected so the service can map it to a duplicate error.
type MembershipRepository interface {
	AddFavorite(ctx context.Context, userID, recipeID uint) (bool, error)
	RemoveFavorite(ctx context.Context, userID, recipeID uint) (bool, error)
	AddCartEntry(ctx context.Context, userID, recipeID uint) (bool, error)
	RemoveCartEntry(ctx context.Context, userID, recipeID uint) (bool, error)
	CartRecipeIDs(ctx context.Context, userID uint) ([]uint, error)
}

type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository returns a new MembershipRepository implementation.
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

// AddFavorite inserts the membership row. Returns false if it already existed.
func (r *membershipRepository) AddFavorite(ctx context.Context, userID, recipeID uint) (bool, error) {
	fav := models.Favorite{UserID: userID, RecipeID: recipeID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// RemoveFavorite deletes the membership row. Returns false if it was absent.
func (r *membershipRepository) RemoveFavorite(ctx context.Context, userID, recipeID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *membershipRepository) AddCartEntry(ctx context.Context, userID, recipeID uint) (bool, error) {
	entry := models.ShoppingCartEntry{UserID: userID, RecipeID: recipeID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *membershipRepository) RemoveCartEntry(ctx context.Context, userID, recipeID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.ShoppingCartEntry{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// CartRecipeIDs returns the recipe IDs in the user's cart in insertion order.
func (r *membershipRepository) CartRecipeIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.ShoppingCartEntry{}).
		Where("user_id = ?", userID).
		Order("id").
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
