package service

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/models"
	"foodgram/internal/observability"
	"foodgram/internal/repository"
)

type RecipeService struct {
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	tagRepo        repository.TagRepository
	images         *ImageService
}

// IngredientLineInput references a catalog ingredient with an amount.
type IngredientLineInput struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

type RecipeInput struct {
	AuthorID    uint
	Name        string
	Text        string
	Image       string
	CookingTime int
	Ingredients []IngredientLineInput
	TagIDs      []uint
}

type ListRecipesInput struct {
	Limit       int
	Offset      int
	ViewerID    uint
	TagSlugs    []string
	AuthorID    uint
	OnlyFavored bool
	OnlyInCart  bool
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	tagRepo repository.TagRepository,
	images *ImageService,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		tagRepo:        tagRepo,
		images:         images,
	}
}

// validateComposition checks the ingredient and tag payload. Order of checks is
// fixed: ingredient presence, ingredient uniqueness, amount bounds, tag
// presence, tag uniqueness, cooking time bounds. Each failure carries a
// distinct message.
func (s *RecipeService) validateComposition(ctx context.Context, in RecipeInput) ([]models.IngredientLine, []models.Tag, error) {
	if len(in.Ingredients) == 0 {
		return nil, nil, models.NewValidationError("At least one ingredient is required")
	}

	seenIngredients := make(map[uint]struct{}, len(in.Ingredients))
	for _, line := range in.Ingredients {
		if _, dup := seenIngredients[line.ID]; dup {
			return nil, nil, models.NewValidationError(fmt.Sprintf("Ingredient %d appears more than once", line.ID))
		}
		seenIngredients[line.ID] = struct{}{}
	}

	for _, line := range in.Ingredients {
		if line.Amount < models.MinIngredientAmount || line.Amount > models.MaxIngredientAmount {
			return nil, nil, models.NewValidationError(fmt.Sprintf(
				"Ingredient amount must be between %d and %d", models.MinIngredientAmount, models.MaxIngredientAmount))
		}
	}

	if len(in.TagIDs) == 0 {
		return nil, nil, models.NewValidationError("At least one tag is required")
	}

	seenTags := make(map[uint]struct{}, len(in.TagIDs))
	for _, id := range in.TagIDs {
		if _, dup := seenTags[id]; dup {
			return nil, nil, models.NewValidationError(fmt.Sprintf("Tag %d appears more than once", id))
		}
		seenTags[id] = struct{}{}
	}

	if in.CookingTime < models.MinCookingTime || in.CookingTime > models.MaxCookingTime {
		return nil, nil, models.NewValidationError(fmt.Sprintf(
			"Cooking time must be between %d and %d minutes", models.MinCookingTime, models.MaxCookingTime))
	}

	ingredientIDs := make([]uint, 0, len(in.Ingredients))
	for _, line := range in.Ingredients {
		ingredientIDs = append(ingredientIDs, line.ID)
	}
	catalog, err := s.ingredientRepo.GetByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(catalog) != len(ingredientIDs) {
		return nil, nil, models.NewValidationError("Unknown ingredient in payload")
	}

	tags, err := s.tagRepo.GetByIDs(ctx, in.TagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(in.TagIDs) {
		return nil, nil, models.NewValidationError("Unknown tag in payload")
	}

	lines := make([]models.IngredientLine, 0, len(in.Ingredients))
	for _, line := range in.Ingredients {
		lines = append(lines, models.IngredientLine{IngredientID: line.ID, Amount: line.Amount})
	}
	return lines, tags, nil
}

func (s *RecipeService) CreateRecipe(ctx context.Context, in RecipeInput) (*models.Recipe, error) {
	span, ctx := observability.NewSpan(ctx, "recipe.create")
	defer span.End()

	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}

	lines, tags, err := s.validateComposition(ctx, in)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.resolveImage(in.Image, "")
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Name:        in.Name,
		Text:        in.Text,
		Image:       imageURL,
		CookingTime: in.CookingTime,
		AuthorID:    in.AuthorID,
		Ingredients: lines,
		Tags:        tags,
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		span.SetError(err)
		return nil, err
	}
	observability.RecipesWritten.WithLabelValues("create").Inc()

	return s.recipeRepo.GetByID(ctx, recipe.ID, in.AuthorID)
}

func (s *RecipeService) UpdateRecipe(ctx context.Context, recipeID uint, in RecipeInput) (*models.Recipe, error) {
	existing, err := s.recipeRepo.GetByID(ctx, recipeID, in.AuthorID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != in.AuthorID {
		return nil, models.NewForbiddenError("Only the author can edit this recipe")
	}

	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}

	lines, tags, err := s.validateComposition(ctx, in)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.resolveImage(in.Image, existing.Image)
	if err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Text = in.Text
	existing.Image = imageURL
	existing.CookingTime = in.CookingTime
	existing.Ingredients = lines
	existing.Tags = tags

	if err := s.recipeRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	observability.RecipesWritten.WithLabelValues("update").Inc()

	return s.recipeRepo.GetByID(ctx, recipeID, in.AuthorID)
}

// resolveImage stores a fresh base64 payload or keeps the current reference.
// An already stored "/media/..." path passes through unchanged.
func (s *RecipeService) resolveImage(payload, current string) (string, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		if current == "" {
			return "", models.NewValidationError("Image is required")
		}
		return current, nil
	}
	if strings.HasPrefix(payload, "/media/") {
		return payload, nil
	}
	if s.images == nil {
		return "", models.NewInternalError(fmt.Errorf("image storage not configured"))
	}
	return s.images.SaveBase64(payload)
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uint, viewerID uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, id, viewerID)
}

func (s *RecipeService) ListRecipes(ctx context.Context, in ListRecipesInput) ([]*models.Recipe, int64, error) {
	filter := repository.RecipeFilter{
		TagSlugs: in.TagSlugs,
		AuthorID: in.AuthorID,
	}
	// Membership filters only bind for authenticated viewers.
	if in.OnlyFavored && in.ViewerID != 0 {
		filter.FavoritedBy = in.ViewerID
	}
	if in.OnlyInCart && in.ViewerID != 0 {
		filter.InCartOf = in.ViewerID
	}
	return s.recipeRepo.List(ctx, filter, in.Limit, in.Offset, in.ViewerID)
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID, userID uint, isAdmin bool) error {
	existing, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	if existing.AuthorID != userID && !isAdmin {
		return models.NewForbiddenError("Only the author can delete this recipe")
	}
	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return err
	}
	observability.RecipesWritten.WithLabelValues("delete").Inc()
	return nil
}
