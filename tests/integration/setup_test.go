package integration

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cookbook/internal/handlers"
	"cookbook/internal/logger"
	"cookbook/internal/middleware"
	"cookbook/internal/models"
	"cookbook/internal/services"
	"cookbook/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// SQLite allows one writer; a single pooled connection serializes
	// concurrent requests instead of surfacing lock errors.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	allModels := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.FavoriteCategory{},
		&models.FavoriteRecipe{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	recipeService := services.NewRecipeService(db)
	categoryService := services.NewCategoryService(db)
	searchService := services.NewSearchService(db)
	importService := services.NewImportService(services.NewHTTPFetcher(), 5*time.Second)

	// Handlers
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	searchHandler := handlers.NewSearchHandler(searchService)
	importHandler := handlers.NewImportHandler(importService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	recipes := protected.Group("/recipes")
	recipes.POST("", recipeHandler.CreateRecipe)
	recipes.GET("", recipeHandler.GetRecipes)
	recipes.GET("/:id", recipeHandler.GetRecipeByID)
	recipes.PUT("/:id", recipeHandler.UpdateRecipe)
	recipes.DELETE("/:id", recipeHandler.DeleteRecipe)
	recipes.POST("/:id/favorite", recipeHandler.ToggleFavorite)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.POST("/:id/favorite", categoryHandler.ToggleFavorite)

	search := protected.Group("/search")
	search.GET("/recipes", searchHandler.SearchRecipes)
	search.GET("/pantry", searchHandler.SearchByPantry)

	protected.POST("/import", importHandler.ImportRecipe)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// userCounter keeps fixture emails unique across tests.
var userCounter atomic.Int64

// createUser persists a user and mints an access token for it. Tokens are
// normally issued by the external auth service; tests sign compatible ones.
func (app *testApp) createUser(t *testing.T) (token, userID string) {
	t.Helper()

	user := &models.User{
		Email:    fmt.Sprintf("user%d@test.com", userCounter.Add(1)),
		FullName: "Test User",
	}
	if err := app.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	token, err := middleware.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return token, user.ID
}

// errorCode extracts the error code from a structured error response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected structured error, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}
