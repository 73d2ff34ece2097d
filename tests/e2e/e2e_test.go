package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"recipebook/internal/database"
	"recipebook/internal/domain"
	"recipebook/internal/middleware"
	"recipebook/internal/modules/auth"
	"recipebook/internal/modules/cart"
	"recipebook/internal/modules/catalog"
	"recipebook/internal/modules/favorite"
	"recipebook/internal/modules/recipe"
	"recipebook/internal/modules/shoppinglist"
	"recipebook/internal/modules/subscription"
	"recipebook/internal/modules/upload"
	jwtsvc "recipebook/internal/pkg/jwt"
	"recipebook/internal/pkg/pdf"
	"recipebook/internal/repository"
)

type TestSuite struct {
	router *gin.Engine
	db     *gorm.DB
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupTestSuite(t *testing.T) *TestSuite {
	gin.SetMode(gin.TestMode)

	// One named in-memory DB per test: shared cache keeps every pooled
	// connection on the same database, the name keeps tests apart.
	db, err := database.Connect(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	tagRepo := repository.NewTagRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewCartRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	j := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)
	imageStore := upload.NewStore(t.TempDir())
	renderer := pdf.NewRenderer()

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	catalogHandler := catalog.NewHandler(catalog.NewService(tagRepo, ingredientRepo))
	recipeHandler := recipe.NewHandler(recipe.NewService(
		recipeRepo, ingredientRepo, tagRepo, favoriteRepo, cartRepo, subscriptionRepo, imageStore, 5, 10,
	))
	favoriteHandler := favorite.NewHandler(favorite.NewService(favoriteRepo, recipeRepo))
	cartHandler := cart.NewHandler(cart.NewService(cartRepo, recipeRepo))
	subscriptionHandler := subscription.NewHandler(subscription.NewService(subscriptionRepo, userRepo, recipeRepo))
	shoppingHandler := shoppinglist.NewHandler(shoppinglist.NewService(cartRepo, renderer, "Recipebook"))

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		catalogHandler.RegisterRoutes(v1)

		optional := v1.Group("/")
		optional.Use(middleware.OptionalAuth(j))

		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(j))

		authHandler.RegisterRoutes(v1, protected)
		recipeHandler.RegisterRoutes(optional, protected)
		favoriteHandler.RegisterRoutes(protected)
		cartHandler.RegisterRoutes(protected)
		subscriptionHandler.RegisterRoutes(protected)
		shoppingHandler.RegisterRoutes(protected)
	}

	return &TestSuite{router: r, db: db}
}

func (s *TestSuite) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
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
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// registerAndLogin creates a user and returns their token and id.
func (s *TestSuite) registerAndLogin(t *testing.T, username string) (string, int64) {
	email := fmt.Sprintf("%s@example.com", username)
	w := s.request(t, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"email":      email,
		"username":   username,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.request(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := parseResponse(t, w)
	token := resp.Data["token"].(string)
	user := resp.Data["user"].(map[string]interface{})
	return token, int64(user["id"].(float64))
}

func (s *TestSuite) seedCatalog(t *testing.T) {
	require.NoError(t, s.db.Create(&domain.Tag{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}).Error)
	require.NoError(t, s.db.Create(&domain.Ingredient{Name: "salt", MeasurementUnit: "g"}).Error)
	require.NoError(t, s.db.Create(&domain.Ingredient{Name: "sugar", MeasurementUnit: "g"}).Error)
}

func recipeBody(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":         name,
		"text":         "Mix everything and fry on both sides until golden.",
		"cooking_time": 25,
		"tags":         []int64{1},
		"ingredients": []map[string]interface{}{
			{"id": 1, "amount": 10},
			{"id": 2, "amount": 20},
		},
	}
}

func TestRecipeLifecycle(t *testing.T) {
	s := setupTestSuite(t)
	s.seedCatalog(t)
	token, _ := s.registerAndLogin(t, "chef")

	// create
	w := s.request(t, "POST", "/api/v1/recipes", token, recipeBody("Pancakes deluxe"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := parseResponse(t, w)
	recipeID := int64(resp.Data["id"].(float64))
	assert.Equal(t, "Pancakes deluxe", resp.Data["name"])

	// duplicate name for the same author is a conflict
	w = s.request(t, "POST", "/api/v1/recipes", token, recipeBody("Pancakes deluxe"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_NAME", parseResponse(t, w).Error.Code)

	// another author may reuse the name
	otherToken, _ := s.registerAndLogin(t, "baker")
	w = s.request(t, "POST", "/api/v1/recipes", otherToken, recipeBody("Pancakes deluxe"))
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// anonymous read sees the recipe without viewer flags
	w = s.request(t, "GET", fmt.Sprintf("/api/v1/recipes/%d", recipeID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	assert.Equal(t, false, resp.Data["is_favorited"])

	// replace swaps the ingredient set entirely
	update := recipeBody("Pancakes deluxe")
	update["ingredients"] = []map[string]interface{}{{"id": 2, "amount": 5}}
	w = s.request(t, "PUT", fmt.Sprintf("/api/v1/recipes/%d", recipeID), token, update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = parseResponse(t, w)
	ingredients := resp.Data["ingredients"].([]interface{})
	require.Len(t, ingredients, 1)

	// only the author may modify
	w = s.request(t, "PUT", fmt.Sprintf("/api/v1/recipes/%d", recipeID), otherToken, update)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// delete
	w = s.request(t, "DELETE", fmt.Sprintf("/api/v1/recipes/%d", recipeID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.request(t, "GET", fmt.Sprintf("/api/v1/recipes/%d", recipeID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipeListing(t *testing.T) {
	s := setupTestSuite(t)
	s.seedCatalog(t)
	require.NoError(t, s.db.Create(&domain.Tag{Name: "Dinner", Color: "#8775D2", Slug: "dinner"}).Error)
	token, _ := s.registerAndLogin(t, "chef")

	morning := recipeBody("Morning pancakes")
	evening := recipeBody("Evening stew")
	evening["tags"] = []int64{2}
	allday := recipeBody("Allday omelette")
	allday["tags"] = []int64{1, 2}
	for _, body := range []map[string]interface{}{morning, evening, allday} {
		w := s.request(t, "POST", "/api/v1/recipes", token, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	names := func(resp TestResponse) []string {
		var out []string
		for _, item := range resp.Data["recipes"].([]interface{}) {
			out = append(out, item.(map[string]interface{})["name"].(string))
		}
		return out
	}

	// newest first
	w := s.request(t, "GET", "/api/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := parseResponse(t, w)
	assert.Equal(t, float64(3), resp.Data["total"])
	assert.Equal(t, []string{"Allday omelette", "Evening stew", "Morning pancakes"}, names(resp))

	// tag filter
	w = s.request(t, "GET", "/api/v1/recipes?tags=breakfast", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = parseResponse(t, w)
	assert.Equal(t, float64(2), resp.Data["total"])
	assert.Equal(t, []string{"Allday omelette", "Morning pancakes"}, names(resp))

	// a recipe carrying both tags counts once
	w = s.request(t, "GET", "/api/v1/recipes?tags=breakfast,dinner", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = parseResponse(t, w)
	assert.Equal(t, float64(3), resp.Data["total"])
	assert.Len(t, resp.Data["recipes"], 3)

	// pagination keeps the full total
	w = s.request(t, "GET", "/api/v1/recipes?page=2&per_page=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = parseResponse(t, w)
	assert.Equal(t, float64(3), resp.Data["total"])
	assert.Equal(t, float64(2), resp.Data["total_pages"])
	assert.Equal(t, []string{"Morning pancakes"}, names(resp))

	// author filter
	otherToken, otherID := s.registerAndLogin(t, "baker")
	w = s.request(t, "POST", "/api/v1/recipes", otherToken, recipeBody("Sourdough bread"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = s.request(t, "GET", fmt.Sprintf("/api/v1/recipes?author=%d", otherID), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = parseResponse(t, w)
	assert.Equal(t, float64(1), resp.Data["total"])
	assert.Equal(t, []string{"Sourdough bread"}, names(resp))
}

func TestRecipeValidation(t *testing.T) {
	s := setupTestSuite(t)
	s.seedCatalog(t)
	token, _ := s.registerAndLogin(t, "chef")

	cases := []struct {
		name     string
		mutate   func(m map[string]interface{})
		wantCode string
	}{
		{"short name", func(m map[string]interface{}) { m["name"] = "Stew" }, "INVALID_NAME"},
		{"short text", func(m map[string]interface{}) { m["text"] = "Fry it" }, "INVALID_DESCRIPTION"},
		{"zero cooking time", func(m map[string]interface{}) { m["cooking_time"] = -1 }, "INVALID_COOKING_TIME"},
		{"no ingredients", func(m map[string]interface{}) { m["ingredients"] = []map[string]interface{}{} }, "EMPTY_INGREDIENTS"},
		{"duplicate ingredient", func(m map[string]interface{}) {
			m["ingredients"] = []map[string]interface{}{{"id": 1, "amount": 1}, {"id": 1, "amount": 2}}
		}, "DUPLICATE_INGREDIENT"},
		{"zero amount", func(m map[string]interface{}) {
			m["ingredients"] = []map[string]interface{}{{"id": 1, "amount": 0}}
		}, "INVALID_AMOUNT"},
		{"unknown ingredient", func(m map[string]interface{}) {
			m["ingredients"] = []map[string]interface{}{{"id": 777, "amount": 1}}
		}, "UNKNOWN_INGREDIENT"},
		{"unknown tag", func(m map[string]interface{}) { m["tags"] = []int64{777} }, "UNKNOWN_TAG"},
	}

	for i, tc := range cases {
		body := recipeBody(fmt.Sprintf("Recipe number %d", i))
		tc.mutate(body)
		w := s.request(t, "POST", "/api/v1/recipes", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.name)
		assert.Equal(t, tc.wantCode, parseResponse(t, w).Error.Code, tc.name)
	}
}

func TestFavoriteToggle(t *testing.T) {
	s := setupTestSuite(t)
	s.seedCatalog(t)
	token, _ := s.registerAndLogin(t, "chef")

	w := s.request(t, "POST", "/api/v1/recipes", token, recipeBody("Pancakes deluxe"))
	require.Equal(t, http.StatusCreated, w.Code)
	recipeID := int64(parseResponse(t, w).Data["id"].(float64))

	// add
	w = s.request(t, "POST", fmt.Sprintf("/api/v1/recipes/%d/favorite", recipeID), token, nil)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// adding twice is a conflict, not a duplicate row
	w = s.request(t, "POST", fmt.Sprintf("/api/v1/recipes/%d/favorite", recipeID), token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_EXISTS", parseResponse(t, w).Error.Code)

	// the viewer flag follows
	w = s.request(t, "GET", fmt.Sprintf("/api/v1/recipes/%d", recipeID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, parseResponse(t, w).Data["is_favorited"])

	// remove, then removing again is NOT_FOUND
	w = s.request(t, "DELETE", fmt.Sprintf("/api/v1/recipes/%d/favorite", recipeID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.request(t, "DELETE", fmt.Sprintf("/api/v1/recipes/%d/favorite", recipeID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// unknown recipe
	w = s.request(t, "POST", "/api/v1/recipes/777/favorite", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShoppingCartAndDownload(t *testing.T) {
	s := setupTestSuite(t)
	s.seedCatalog(t)
	token, _ := s.registerAndLogin(t, "chef")

	// empty cart refuses to render
	w := s.request(t, "GET", "/api/v1/cart/download", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_CART", parseResponse(t, w).Error.Code)

	// two recipes sharing an ingredient
	first := recipeBody("Morning pancakes")
	w = s.request(t, "POST", "/api/v1/recipes", token, first)
	require.Equal(t, http.StatusCreated, w.Code)
	firstID := int64(parseResponse(t, w).Data["id"].(float64))

	second := recipeBody("Evening pancakes")
	second["ingredients"] = []map[string]interface{}{{"id": 1, "amount": 5}}
	w = s.request(t, "POST", "/api/v1/recipes", token, second)
	require.Equal(t, http.StatusCreated, w.Code)
	secondID := int64(parseResponse(t, w).Data["id"].(float64))

	for _, id := range []int64{firstID, secondID} {
		w = s.request(t, "POST", fmt.Sprintf("/api/v1/recipes/%d/cart", id), token, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	// salt 10 + 5, sugar 20, rendered as a PDF
	w = s.request(t, "GET", "/api/v1/cart/download", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestSubscriptions(t *testing.T) {
	s := setupTestSuite(t)
	s.seedCatalog(t)
	followerToken, followerID := s.registerAndLogin(t, "reader")
	authorToken, authorID := s.registerAndLogin(t, "writer")

	// the author publishes something first
	w := s.request(t, "POST", "/api/v1/recipes", authorToken, recipeBody("Pancakes deluxe"))
	require.Equal(t, http.StatusCreated, w.Code)

	// self-subscription is rejected
	w = s.request(t, "POST", fmt.Sprintf("/api/v1/users/%d/subscribe", followerID), followerToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "SELF_SUBSCRIPTION", parseResponse(t, w).Error.Code)

	// subscribe returns the author profile with recent recipes
	w = s.request(t, "POST", fmt.Sprintf("/api/v1/users/%d/subscribe", authorID), followerToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := parseResponse(t, w)
	assert.Equal(t, "writer", resp.Data["username"])
	assert.Equal(t, true, resp.Data["is_subscribed"])
	assert.Len(t, resp.Data["recipes"].([]interface{}), 1)

	// double subscribe is a conflict
	w = s.request(t, "POST", fmt.Sprintf("/api/v1/users/%d/subscribe", authorID), followerToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// unknown author
	w = s.request(t, "POST", "/api/v1/users/777/subscribe", followerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// unsubscribe, then again is NOT_FOUND
	w = s.request(t, "DELETE", fmt.Sprintf("/api/v1/users/%d/subscribe", authorID), followerToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.request(t, "DELETE", fmt.Sprintf("/api/v1/users/%d/subscribe", authorID), followerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthFlow(t *testing.T) {
	s := setupTestSuite(t)

	// reserved username
	w := s.request(t, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"email":      "me@example.com",
		"username":   "me",
		"first_name": "Test",
		"last_name":  "User",
		"password":   "supersecret",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	token, _ := s.registerAndLogin(t, "chef")

	// duplicate email
	w = s.request(t, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"email":      "chef@example.com",
		"username":   "chef2",
		"first_name": "Test",
		"last_name":  "User",
		"password":   "supersecret",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// wrong password
	w = s.request(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "chef@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// current user
	w = s.request(t, "GET", "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "chef", parseResponse(t, w).Data["username"])

	// protected route without token
	w = s.request(t, "GET", "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	s := setupTestSuite(t)
	s.seedCatalog(t)

	w := s.request(t, "GET", "/api/v1/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "breakfast")

	w = s.request(t, "GET", "/api/v1/ingredients?name=sa", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "salt")
	assert.NotContains(t, w.Body.String(), "sugar")

	w = s.request(t, "GET", "/api/v1/tags/777", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
