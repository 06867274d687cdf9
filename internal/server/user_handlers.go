package server

import (
	"foodgram/internal/models"
	"foodgram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateUser handles POST /api/users
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req struct {
		Email     string `json:"email"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Password  string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Email == "" || req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email, username, and password are required"))
	}

	user, err := s.userService.Register(c.Context(), service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUsers handles GET /api/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 10)
	viewerID, _ := s.optionalUserID(c)

	users, total, err := s.userService.ListUsers(c.Context(), p.Limit, p.Offset, viewerID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return pagedResponse(c, total, users)
}

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	user, err := s.userService.GetUserByID(c.Context(), id, viewerID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userService.GetUserByID(c.Context(), userID, userID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PATCH /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:    currentUserID(c),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// SetPassword handles POST /api/users/set_password
func (s *Server) SetPassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	err := s.userService.ChangePassword(c.Context(), service.ChangePasswordInput{
		UserID:          currentUserID(c),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetSubscriptions handles GET /api/users/subscriptions
func (s *Server) GetSubscriptions(c *fiber.Ctx) error {
	p := parsePagination(c, 10)
	recipesLimit := c.QueryInt("recipes_limit", 0)

	authors, total, err := s.subscriptionService.ListSubscriptions(
		c.Context(), currentUserID(c), p.Limit, p.Offset, recipesLimit)
	if err != nil {
		return models.RespondError(c, err)
	}
	return pagedResponse(c, total, authors)
}

// Subscribe handles POST /api/users/:id/subscribe
func (s *Server) Subscribe(c *fiber.Ctx) error {
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	author, err := s.subscriptionService.Subscribe(c.Context(), currentUserID(c), authorID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(author)
}

// Unsubscribe handles DELETE /api/users/:id/subscribe
func (s *Server) Unsubscribe(c *fiber.Ctx) error {
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.subscriptionService.Unsubscribe(c.Context(), currentUserID(c), authorID); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
