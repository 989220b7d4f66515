package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/internal/api"
	"github.com/pageza/pantrychef/backend/internal/database"
	"github.com/pageza/pantrychef/backend/internal/mocks"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/router"
	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/testhelpers"
)

type stack struct {
	db     *gorm.DB
	router *gin.Engine
}

// setupStack runs the full route table against postgres and redis containers
func setupStack(t *testing.T) *stack {
	gin.SetMode(gin.TestMode)
	db, _ := testhelpers.SetupPostgresDatabase(t)
	rdb := testhelpers.SetupRedis(t)
	logger := zaptest.NewLogger(t)

	recipes := service.NewRecipeService(db, logger)
	auth := service.NewAuthService(db, "integration-secret", time.Hour, service.NewRedisTokenDenylist(rdb), logger)
	generator := new(mocks.MockGenerator)

	engine := router.SetupRouter(router.Handlers{
		Auth:       api.NewAuthHandler(auth),
		Recipes:    api.NewRecipeHandler(recipes),
		Generation: api.NewGenerationHandler(service.NewGenerationService(generator, generator, generator, logger)),
		Users:      api.NewUserHandler(service.NewUserService(db, logger), recipes),
		Kitchen:    api.NewKitchenHandler(service.NewKitchenService(db, logger)),
		Health: api.HealthCheck(func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		}),
	}, auth, []string{"http://localhost:5173"}, logger)

	return &stack{db: db, router: engine}
}

func (s *stack) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func (s *stack) signup(t *testing.T, username string) (token, id string) {
	t.Helper()
	status, _ := s.do(t, http.MethodPost, "/api/v1/users", "", map[string]string{"username": username, "password": "secret"})
	require.Equal(t, http.StatusCreated, status)

	status, resp := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": username, "password": "secret"})
	require.Equal(t, http.StatusOK, status)
	return resp["token"].(string), resp["user"].(map[string]interface{})["id"].(string)
}

func TestRecipeSharingOnPostgres(t *testing.T) {
	s := setupStack(t)

	status, _ := s.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status)

	aliceToken, alice := s.signup(t, "alice")
	bobToken, bob := s.signup(t, "bob")

	recipe := func(user string, ingredients ...string) map[string]interface{} {
		return map[string]interface{}{"name": "Pesto", "ingredients": ingredients, "instructions": "Blend.", "userId": user}
	}

	status, resp := s.do(t, http.MethodPost, "/api/v1/recipes/save", "", recipe(alice, "Basil", "Pine nuts", "Garlic"))
	require.Equal(t, http.StatusCreated, status)
	recipeID := resp["recipe"].(map[string]interface{})["id"].(string)

	status, resp = s.do(t, http.MethodPost, "/api/v1/recipes/save", "", recipe(bob, "Garlic", "Basil", "Pine nuts"))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User added to existing recipe successfully!", resp["message"])
	assert.Equal(t, recipeID, resp["recipe"].(map[string]interface{})["id"])

	status, _ = s.do(t, http.MethodPost, "/api/v1/recipes/save", "", recipe(bob, "Basil", "Garlic"))
	require.Equal(t, http.StatusCreated, status)

	status, resp = s.do(t, http.MethodGet, "/api/v1/users/"+bob+"/recipes", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, resp["recipes"], 2)

	status, _ = s.do(t, http.MethodDelete, "/api/v1/users/"+alice, aliceToken, nil)
	require.Equal(t, http.StatusOK, status)

	var stored models.Recipe
	require.NoError(t, s.db.First(&stored, "id = ?", recipeID).Error)
	assert.Len(t, stored.SavedBy, 1)
	assert.Equal(t, bob, stored.SavedBy[0].String())

	status, resp = s.do(t, http.MethodPatch, "/api/v1/recipes/"+recipeID+"/remove-user", "", map[string]string{"userId": bob})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Recipe deleted as no users are associated with it.", resp["message"])

	var count int64
	require.NoError(t, s.db.Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestKitchenPersistsOnPostgres(t *testing.T) {
	s := setupStack(t)
	token, id := s.signup(t, "carol")
	base := "/api/v1/users/" + id + "/kitchen"

	for _, name := range []string{"Rice", "Beans", "Corn"} {
		status, _ := s.do(t, http.MethodPost, base, token, map[string]string{"name": name})
		require.Equal(t, http.StatusCreated, status)
	}

	status, resp := s.do(t, http.MethodGet, base, token, nil)
	require.Equal(t, http.StatusOK, status)
	kitchen := resp["kitchen"].([]interface{})
	require.Len(t, kitchen, 3)
	beans := kitchen[1].(map[string]interface{})["id"].(string)

	status, resp = s.do(t, http.MethodDelete, base+"/"+beans, token, nil)
	require.Equal(t, http.StatusOK, status)
	names := []string{}
	for _, ing := range resp["kitchen"].([]interface{}) {
		names = append(names, ing.(map[string]interface{})["name"].(string))
	}
	assert.Equal(t, []string{"Rice", "Corn"}, names)
}

func TestLogoutRevokesTokenInRedis(t *testing.T) {
	s := setupStack(t)
	token, id := s.signup(t, "dave")

	status, _ := s.do(t, http.MethodGet, "/api/v1/users/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodGet, "/api/v1/users/"+id, token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
