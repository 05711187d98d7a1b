package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"bazaarsetu/internal/alerts"
	"bazaarsetu/internal/analytics"
	"bazaarsetu/internal/cleanup"
	"bazaarsetu/internal/config"
	"bazaarsetu/internal/database"
	"bazaarsetu/internal/fetcher"
	"bazaarsetu/internal/handlers"
	"bazaarsetu/internal/models"
	"bazaarsetu/internal/notify"
	"bazaarsetu/internal/ratelimit"
	"bazaarsetu/internal/reconcile"
	"bazaarsetu/internal/scheduler"
	"bazaarsetu/internal/search"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	configPath := getEnv("CONFIG_PATH", "config/bazaarsetu.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}

	// Initialize database based on configuration
	db, err := connectDatabase(appConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Initialize Meilisearch when configured
	var commodityIndex *search.CommodityIndex
	meilisearchHost := appConfig.Search.Meilisearch.Host
	if meilisearchHost == "" {
		meilisearchHost = os.Getenv("MEILISEARCH_HOST")
	}
	if meilisearchHost != "" {
		meilisearchKey := appConfig.Search.Meilisearch.APIKey
		if meilisearchKey == "" {
			meilisearchKey = os.Getenv("MEILISEARCH_KEY")
		}
		commodityIndex = search.NewCommodityIndex(meilisearchHost, meilisearchKey)
		if err := commodityIndex.InitIndex(); err != nil {
			log.Printf("Warning: Failed to initialize search index: %v", err)
		} else if commodities, err := db.AllCommodities(); err == nil {
			if err := commodityIndex.IndexCommodities(commodities); err != nil {
				log.Printf("Warning: Failed to index commodities: %v", err)
			}
		}
	} else {
		log.Println("Meilisearch not configured, commodity search uses the database")
	}

	// Core services
	engine := analytics.NewEngine(db, commodityIndex)
	dispatcher := notify.NewLogDispatcher()
	evaluator := alerts.NewEvaluator(db, dispatcher)
	alertService := alerts.NewService(db)

	fetchClient := fetcher.NewClient(appConfig.Fetcher)
	reconciler := reconcile.NewReconciler(db, fetchClient, appConfig.Fetcher.TargetStates, appConfig.Fetcher.SourceTag)
	reconciler.OnIngest = func(prices []models.Price) int {
		engine.InvalidateCache()
		return len(evaluator.Evaluate(prices))
	}

	limiter := ratelimit.NewLimiter(appConfig.RateLimit)
	log.Printf("Rate limiter initialized: %d req/min, %d req/hour, %d req/day (enabled: %v)",
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.RequestsPerDay,
		appConfig.RateLimit.Enabled,
	)

	appScheduler := scheduler.NewScheduler(reconciler, appConfig)
	if err := appScheduler.Start(); err != nil {
		log.Printf("Warning: Failed to start scheduler: %v", err)
	}
	defer appScheduler.Stop()

	// Setup Gin router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	catalogHandler := handlers.NewCatalogHandler(db)
	priceHandler := handlers.NewPriceHandler(engine, appScheduler, limiter)
	alertHandler := handlers.NewAlertHandler(alertService)
	adminHandler := handlers.NewAdminHandler(db, commodityIndex, cleanup.Config{
		RetentionDays:    appConfig.Cleanup.RetentionDays,
		MaxDeletionCount: appConfig.Cleanup.MaxDeletionCount,
	})

	r.GET("/health", healthCheck)

	api := r.Group("/api")
	{
		api.GET("/states", catalogHandler.ListStates)
		api.GET("/states/:id", catalogHandler.GetState)
		api.GET("/states/:id/markets", catalogHandler.ListStateMarkets)
		api.GET("/markets", catalogHandler.ListMarkets)
		api.GET("/markets/:id", catalogHandler.GetMarket)
		api.GET("/commodities", catalogHandler.ListCommodities)
		api.GET("/commodities/:id", catalogHandler.GetCommodity)

		api.GET("/prices/today", priceHandler.GetToday)
		api.GET("/prices/trend/:commodity_id", priceHandler.GetTrend)
		api.GET("/prices/compare/:commodity_id", priceHandler.CompareMarkets)
		api.GET("/prices/search", priceHandler.SearchCommodities)
		api.POST("/prices/fetch", priceHandler.TriggerFetch)
		api.GET("/ratelimit/stats", priceHandler.GetRateLimitStats)

		api.POST("/alerts", alertHandler.Create)
		api.GET("/alerts/user/:user_id", alertHandler.ListByUser)
		api.PUT("/alerts/:id/toggle", alertHandler.Toggle)
		api.DELETE("/alerts/:id", alertHandler.Delete)

		admin := api.Group("/admin")
		{
			admin.GET("/stats", adminHandler.GetStats)
			admin.GET("/activity", adminHandler.GetActivity)
			admin.POST("/cleanup/run", adminHandler.RunCleanup)
			admin.POST("/search/reindex", adminHandler.Reindex)
		}
	}

	port := getEnv("PORT", "8080")
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func connectDatabase(appConfig *config.Config) (*database.GormDB, error) {
	dbType := appConfig.Database.Type
	if dbType == "" {
		dbType = getEnv("DB_TYPE", "mysql")
	}

	if dbType == "postgres" {
		log.Println("Using PostgreSQL")
		pgCfg := appConfig.Database.Postgres
		pgCfg.Host = getEnvOrConfig(pgCfg.Host, "DB_HOST", "localhost")
		pgCfg.Port = getEnvOrConfigInt(pgCfg.Port, "DB_PORT", 5432)
		pgCfg.User = getEnvOrConfig(pgCfg.User, "DB_USER", "bazaarsetu")
		pgCfg.Password = getEnvOrConfig(pgCfg.Password, "DB_PASSWORD", "bazaarsetu")
		pgCfg.Database = getEnvOrConfig(pgCfg.Database, "DB_NAME", "bazaarsetu")
		return database.NewPostgres(pgCfg)
	}

	log.Println("Using MySQL")
	mysqlCfg := appConfig.Database.MySQL
	mysqlCfg.Host = getEnvOrConfig(mysqlCfg.Host, "DB_HOST", "localhost")
	mysqlCfg.Port = getEnvOrConfigInt(mysqlCfg.Port, "DB_PORT", 3306)
	mysqlCfg.User = getEnvOrConfig(mysqlCfg.User, "DB_USER", "bazaarsetu")
	mysqlCfg.Password = getEnvOrConfig(mysqlCfg.Password, "DB_PASSWORD", "bazaarsetu")
	mysqlCfg.Database = getEnvOrConfig(mysqlCfg.Database, "DB_NAME", "bazaarsetu")
	return database.NewMySQL(mysqlCfg)
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvOrConfig prefers the config file value, then the environment, then
// the fallback.
func getEnvOrConfig(configValue, envKey, fallback string) string {
	if configValue != "" {
		return configValue
	}
	return getEnv(envKey, fallback)
}

func getEnvOrConfigInt(configValue int, envKey string, fallback int) int {
	if configValue > 0 {
		return configValue
	}
	if value := os.Getenv(envKey); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
