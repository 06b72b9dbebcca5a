package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"cryptofolio/internal/config"
	"cryptofolio/internal/database"
	"cryptofolio/internal/handlers"
	"cryptofolio/internal/logger"
	"cryptofolio/internal/middleware"
	"cryptofolio/internal/pricing"
	"cryptofolio/internal/services"
	"cryptofolio/internal/validator"

	_ "cryptofolio/internal/docs" // Import swagger docs
)

// @title           Cryptofolio API
// @version         1.0
// @description     Cryptofolio is a personal cryptocurrency portfolio tracker: record holdings and view live valuations priced via CoinGecko.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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

	// Register custom request validators
	validator.Register()

	// Wire the pricing pipeline: one shared limiter and cache for the process
	httpClient := &http.Client{Timeout: appConfig.ProviderTimeout}
	coinGecko := pricing.NewClient(httpClient, appConfig.CoinGeckoBaseURL)
	limiter := pricing.NewRateLimiter(appConfig.PriceMinInterval)
	cache := pricing.NewQuoteCache(appConfig.PriceCacheTTL)
	resolver := pricing.NewResolver(coinGecko, limiter)
	priceService := pricing.NewService(coinGecko, resolver, cache, limiter)

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	portfolioService := services.NewPortfolioService(db, priceService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	holdingHandler := handlers.NewHoldingHandler(portfolioService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	marketHandler := handlers.NewMarketHandler(priceService)

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

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	market := v1.Group("/market")
	market.GET("/search", marketHandler.Search)
	market.GET("/price/:symbol", marketHandler.GetPrice)
	market.GET("/overview", marketHandler.GetOverview)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)
	protected.DELETE("/profile", authHandler.DeleteProfile)

	// Holding routes
	holdings := protected.Group("/holdings")
	holdings.POST("", holdingHandler.AddHolding)
	holdings.GET("", holdingHandler.GetHoldings)
	holdings.POST("/refresh", holdingHandler.RefreshPrices)
	holdings.GET("/:id", holdingHandler.GetHolding)
	holdings.DELETE("/:id", holdingHandler.DeleteHolding)
	holdings.POST("/:id/withdraw", holdingHandler.Withdraw)

	// Portfolio routes
	portfolio := protected.Group("/portfolio")
	portfolio.GET("/dashboard", portfolioHandler.GetDashboard)
	portfolio.GET("/stats", portfolioHandler.GetStats)

	log.Infof("Starting Cryptofolio backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
