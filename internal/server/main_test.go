package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer wires a Server against in-memory sqlite with no Redis.
// Prometheus middleware is left nil so repeated test setups do not
// re-register collectors.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "test-secret-test-secret-test-secret",
		Port:      "8000",
		MediaDir:  t.TempDir(),
		Env:       "test",
	}

	s := &Server{
		config:           cfg,
		db:               db,
		userRepo:         repository.NewUserRepository(db),
		tagRepo:          repository.NewTagRepository(db),
		ingredientRepo:   repository.NewIngredientRepository(db),
		recipeRepo:       repository.NewRecipeRepository(db),
		membershipRepo:   repository.NewMembershipRepository(db),
		subscriptionRepo: repository.NewSubscriptionRepository(db),
	}

	images := service.NewImageService(cfg)
	s.userService = service.NewUserService(s.userRepo)
	s.recipeService = service.NewRecipeService(s.recipeRepo, s.ingredientRepo, s.tagRepo, images)
	s.membershipService = service.NewMembershipService(s.membershipRepo, s.recipeRepo)
	s.subscriptionService = service.NewSubscriptionService(s.subscriptionRepo, s.userRepo, s.recipeRepo)
	s.shoppingListService = service.NewShoppingListService(s.recipeRepo)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app
}

func createHandlerTestUser(t *testing.T, s *Server, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "irrelevant-hash",
	}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

func authHeader(t *testing.T, s *Server, user *models.User) string {
	t.Helper()
	token, err := s.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	return "Bearer " + token
}

// doRequest runs a request against the app and returns the response with its
// body fully read.
func doRequest(t *testing.T, app *fiber.App, method, path, auth string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, data
}

func seedCatalog(t *testing.T, s *Server) (models.Tag, []models.Ingredient) {
	t.Helper()

	tag := models.Tag{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}
	require.NoError(t, s.db.Create(&tag).Error)

	ingredients := []models.Ingredient{
		{Name: "Salt", MeasurementUnit: "g"},
		{Name: "Pepper", MeasurementUnit: "g"},
		{Name: "Flour", MeasurementUnit: "g"},
	}
	require.NoError(t, s.db.Create(&ingredients).Error)
	return tag, ingredients
}
