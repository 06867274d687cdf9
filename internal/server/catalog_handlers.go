package server

import (
	"foodgram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetTags handles GET /api/tags
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.tagRepo.List(c.Context())
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(tags)
}

// GetTag handles GET /api/tags/:id
func (s *Server) GetTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tag, err := s.tagRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(tag)
}

// GetIngredients handles GET /api/ingredients. The name query parameter
// filters by case-insensitive prefix.
func (s *Server) GetIngredients(c *fiber.Ctx) error {
	prefix := c.Query("name")
	limit := c.QueryInt("limit", 0)

	ingredients, err := s.ingredientRepo.Search(c.Context(), prefix, limit)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(ingredients)
}

// GetIngredient handles GET /api/ingredients/:id
func (s *Server) GetIngredient(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ingredient, err := s.ingredientRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(ingredient)
}
