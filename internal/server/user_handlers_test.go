package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"foodgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUser(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	user := createHandlerTestUser(t, s, "somebody")

	resp, body := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", user.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.User
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, "somebody", fetched.Username)
	assert.False(t, fetched.IsSubscribed)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/users/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/users/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateMyProfile(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	user := createHandlerTestUser(t, s, "renamer")
	auth := authHeader(t, s, user)

	resp, body := doRequest(t, app, http.MethodPatch, "/api/users/me", auth, map[string]string{
		"first_name": "Ivan",
		"last_name":  "Ivanov",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var updated models.User
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "Ivan", updated.FirstName)
	assert.Equal(t, "Ivanov", updated.LastName)
}

func TestSubscriptionEndpoints(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	tag, ingredients := seedCatalog(t, s)

	follower := createHandlerTestUser(t, s, "follower")
	chef := createHandlerTestUser(t, s, "chef")
	followerAuth := authHeader(t, s, follower)
	chefAuth := authHeader(t, s, chef)

	// Give the chef a recipe so the preview has content
	payload := recipePayloadFor(tag, map[string]any{"id": ingredients[0].ID, "amount": 5})
	resp, _ := doRequest(t, app, http.MethodPost, "/api/recipes/", chefAuth, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	subscribePath := fmt.Sprintf("/api/users/%d/subscribe", chef.ID)

	// Self-subscription is always rejected
	resp, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe", follower.ID), followerAuth, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := doRequest(t, app, http.MethodPost, subscribePath, followerAuth, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var subscribed struct {
		ID           uint                 `json:"id"`
		IsSubscribed bool                 `json:"is_subscribed"`
		Recipes      []models.RecipeShort `json:"recipes"`
		RecipesCount int64                `json:"recipes_count"`
	}
	require.NoError(t, json.Unmarshal(body, &subscribed))
	assert.Equal(t, chef.ID, subscribed.ID)
	assert.True(t, subscribed.IsSubscribed)
	require.Len(t, subscribed.Recipes, 1)
	assert.EqualValues(t, 1, subscribed.RecipesCount)

	// Duplicate subscription
	resp, _ = doRequest(t, app, http.MethodPost, subscribePath, followerAuth, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Author detail now carries the subscribed flag for the follower
	resp, body = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", chef.ID), followerAuth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.User
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.True(t, fetched.IsSubscribed)

	// Subscription listing
	resp, body = doRequest(t, app, http.MethodGet, "/api/users/subscriptions", followerAuth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listing struct {
		Count   int64             `json:"count"`
		Results []json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(body, &listing))
	assert.EqualValues(t, 1, listing.Count)
	require.Len(t, listing.Results, 1)

	resp, _ = doRequest(t, app, http.MethodDelete, subscribePath, followerAuth, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Removing again reports the missing subscription
	resp, _ = doRequest(t, app, http.MethodDelete, subscribePath, followerAuth, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCatalogEndpoints(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	tag, ingredients := seedCatalog(t, s)

	resp, body := doRequest(t, app, http.MethodGet, "/api/tags/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tags []models.Tag
	require.NoError(t, json.Unmarshal(body, &tags))
	require.Len(t, tags, 1)
	assert.Equal(t, tag.Slug, tags[0].Slug)

	resp, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/tags/%d", tag.ID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/tags/999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doRequest(t, app, http.MethodGet, "/api/ingredients/?name=sa", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var found []models.Ingredient
	require.NoError(t, json.Unmarshal(body, &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Salt", found[0].Name)

	resp, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/ingredients/%d", ingredients[0].ID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
