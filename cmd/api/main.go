package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"bilanz/internal/config"
	"bilanz/internal/database"
	"bilanz/internal/handlers"
	"bilanz/internal/logger"
	"bilanz/internal/middleware"
	"bilanz/internal/services"
	"bilanz/internal/validator"

	_ "bilanz/internal/docs" // Import swagger docs
)

// @title           Bilanz API
// @version         1.0
// @description     Bilanz is a multi-tenant budgeting and analytical accounting backend: budgets with lifecycle and revision tracking, analytical accounts, auto-analytical matching rules, and a journal ledger feeding achievement calculations.

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

	// Register custom binding validators
	validator.Register()

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
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	contactService := services.NewContactService(db)
	accountService := services.NewAnalyticalAccountService(db)
	ledgerService := services.NewLedgerService(db)
	budgetService := services.NewBudgetService(db, ledgerService)
	modelService := services.NewModelService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	contactHandler := handlers.NewContactHandler(contactService, auditService)
	accountHandler := handlers.NewAnalyticalAccountHandler(accountService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	modelHandler := handlers.NewModelHandler(modelService, auditService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, auditService)

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

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/count", budgetHandler.GetBudgetCount)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.ArchiveBudget)
	budgets.POST("/:id/confirm", budgetHandler.ConfirmBudget)
	budgets.POST("/:id/revise", budgetHandler.ReviseBudget)
	budgets.POST("/:id/calculate-achievements", budgetHandler.CalculateAchievements)

	// Analytical account routes
	accounts := protected.Group("/analytical-accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	// Auto-analytical model routes
	autoModels := protected.Group("/auto-analytical-models")
	autoModels.POST("", modelHandler.CreateModel)
	autoModels.GET("", modelHandler.GetModels)
	autoModels.GET("/match", modelHandler.Match)
	autoModels.PUT("/:id", modelHandler.UpdateModel)
	autoModels.DELETE("/:id", modelHandler.DeleteModel)

	// Contact routes
	contacts := protected.Group("/contacts")
	contacts.POST("", contactHandler.CreateContact)
	contacts.GET("", contactHandler.GetContacts)
	contacts.GET("/:id", contactHandler.GetContact)
	contacts.PUT("/:id", contactHandler.UpdateContact)
	contacts.DELETE("/:id", contactHandler.DeleteContact)

	// Journal entry routes
	entries := protected.Group("/journal-entries")
	entries.POST("", ledgerHandler.RecordEntry)
	entries.GET("", ledgerHandler.GetEntries)

	log.Infof("Starting Bilanz backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
