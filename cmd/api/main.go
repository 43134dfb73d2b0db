package main

import (
	"fmt"
	"net/http"
	"os"

	"cookbook/internal/config"
	"cookbook/internal/database"
	"cookbook/internal/handlers"
	"cookbook/internal/logger"
	"cookbook/internal/middleware"
	"cookbook/internal/services"
	"cookbook/internal/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	recipeService := services.NewRecipeService(db)
	categoryService := services.NewCategoryService(db)
	searchService := services.NewSearchService(db)
	importService := services.NewImportService(services.NewHTTPFetcher(), appConfig.ImportTimeout)

	// Initialize handlers
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	searchHandler := handlers.NewSearchHandler(searchService)
	importHandler := handlers.NewImportHandler(importService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group; tokens are issued by the external auth service, every
	// route here requires one.
	v1 := router.Group("/api/v1")
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Recipe routes
	recipes := protected.Group("/recipes")
	recipes.POST("", recipeHandler.CreateRecipe)
	recipes.GET("", recipeHandler.GetRecipes)
	recipes.GET("/:id", recipeHandler.GetRecipeByID)
	recipes.PUT("/:id", recipeHandler.UpdateRecipe)
	recipes.DELETE("/:id", recipeHandler.DeleteRecipe)
	recipes.POST("/:id/favorite", recipeHandler.ToggleFavorite)

	// Category routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.POST("/:id/favorite", categoryHandler.ToggleFavorite)

	// Search routes
	search := protected.Group("/search")
	search.GET("/recipes", searchHandler.SearchRecipes)
	search.GET("/pantry", searchHandler.SearchByPantry)

	// Import route
	protected.POST("/import", importHandler.ImportRecipe)

	log.Infof("Starting Cookbook backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
