package server

import (
	"foodgram/internal/models"
	"foodgram/internal/service"

	"github.com/gofiber/fiber/v2"
)

type recipePayload struct {
	Ingredients []service.IngredientLineInput `json:"ingredients"`
	Tags        []uint                        `json:"tags"`
	Image       string                        `json:"image"`
	Name        string                        `json:"name"`
	Text        string                        `json:"text"`
	CookingTime int                           `json:"cooking_time"`
}

// tagSlugs collects the repeatable tags query parameter.
func tagSlugs(c *fiber.Ctx) []string {
	raw := c.Context().QueryArgs().PeekMulti("tags")
	if len(raw) == 0 {
		return nil
	}
	slugs := make([]string, 0, len(raw))
	for _, b := range raw {
		if len(b) > 0 {
			slugs = append(slugs, string(b))
		}
	}
	return slugs
}

// GetRecipes handles GET /api/recipes
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	p := parsePagination(c, 10)
	viewerID, _ := s.optionalUserID(c)

	recipes, total, err := s.recipeService.ListRecipes(c.Context(), service.ListRecipesInput{
		Limit:       p.Limit,
		Offset:      p.Offset,
		ViewerID:    viewerID,
		TagSlugs:    tagSlugs(c),
		AuthorID:    uint(c.QueryInt("author", 0)),
		OnlyFavored: c.QueryInt("is_favorited", 0) == 1,
		OnlyInCart:  c.QueryInt("is_in_shopping_cart", 0) == 1,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return pagedResponse(c, total, recipes)
}

// GetRecipe handles GET /api/recipes/:id
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	recipe, err := s.recipeService.GetRecipe(c.Context(), id, viewerID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(recipe)
}

// CreateRecipe handles POST /api/recipes
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	var req recipePayload
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.CreateRecipe(c.Context(), service.RecipeInput{
		AuthorID:    currentUserID(c),
		Name:        req.Name,
		Text:        req.Text,
		Image:       req.Image,
		CookingTime: req.CookingTime,
		Ingredients: req.Ingredients,
		TagIDs:      req.Tags,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// UpdateRecipe handles PATCH /api/recipes/:id
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req recipePayload
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.UpdateRecipe(c.Context(), id, service.RecipeInput{
		AuthorID:    currentUserID(c),
		Name:        req.Name,
		Text:        req.Text,
		Image:       req.Image,
		CookingTime: req.CookingTime,
		Ingredients: req.Ingredients,
		TagIDs:      req.Tags,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(recipe)
}

// DeleteRecipe handles DELETE /api/recipes/:id
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	admin, err := s.isAdminByUserID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if err := s.recipeService.DeleteRecipe(c.Context(), id, userID, admin); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddFavorite handles POST /api/recipes/:id/favorite
func (s *Server) AddFavorite(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	short, err := s.membershipService.AddFavorite(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(short)
}

// RemoveFavorite handles DELETE /api/recipes/:id/favorite
func (s *Server) RemoveFavorite(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.membershipService.RemoveFavorite(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddToShoppingCart handles POST /api/recipes/:id/shopping_cart
func (s *Server) AddToShoppingCart(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	short, err := s.membershipService.AddToCart(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(short)
}

// RemoveFromShoppingCart handles DELETE /api/recipes/:id/shopping_cart
func (s *Server) RemoveFromShoppingCart(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.membershipService.RemoveFromCart(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadShoppingCart handles GET /api/recipes/download_shopping_cart.
// The aggregated list is returned as a plain text attachment. An empty cart
// yields an empty document.
func (s *Server) DownloadShoppingCart(c *fiber.Ctx) error {
	data, err := s.shoppingListService.Download(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="shopping_list.txt"`)
	return c.Send(data)
}
