package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	UserKeyPrefix       = "user:%d"
	RecipeKeyPrefix     = "recipe:%d"
	TagListKey          = "tags:all"
	IngredientKeyPrefix = "ingredients:prefix:%s:%d"

	ingredientKeyPattern = "ingredients:prefix:*"
)

const (
	UserTTL       = 5 * time.Minute
	RecipeTTL     = 10 * time.Minute
	TagListTTL    = 30 * time.Minute
	IngredientTTL = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func RecipeKey(recipeID uint) string {
	return fmt.Sprintf(RecipeKeyPrefix, recipeID)
}

// IngredientSearchKey keys a catalog search by its lowercased prefix and limit.
func IngredientSearchKey(prefix string, limit int) string {
	return fmt.Sprintf(IngredientKeyPrefix, strings.ToLower(prefix), limit)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateRecipe(ctx context.Context, recipeID uint) {
	Invalidate(ctx, RecipeKey(recipeID))
}

func InvalidateTags(ctx context.Context) {
	Invalidate(ctx, TagListKey)
}

// InvalidateIngredientSearches drops every cached catalog search. KEYS is fine
// here: catalog imports are rare one-shot operations.
func InvalidateIngredientSearches(ctx context.Context) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, ingredientKeyPattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}
