package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env file loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/dkovacev/apartment-manager/internal/config"     // env-driven configuration
	"github.com/dkovacev/apartment-manager/internal/database"   // MySQL pool + embedded migrations
	"github.com/dkovacev/apartment-manager/internal/handler"    // HTTP handlers
	"github.com/dkovacev/apartment-manager/internal/middleware" // rate limiting and caching
	"github.com/dkovacev/apartment-manager/internal/queue"      // finance event consumer
	"github.com/dkovacev/apartment-manager/internal/repository" // data access layer
	"github.com/dkovacev/apartment-manager/internal/router"     // route registration
	"github.com/dkovacev/apartment-manager/internal/service"    // financial aggregation
)

func main() {
	// Missing .env is fine in containerized deployments where real env vars
	// are injected.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Redis backs the rate limiter and the summary response cache.  A nil
	// client disables both rather than failing startup.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	apartments := repository.NewApartmentRepo(db)
	incomes := repository.NewIncomeRepo(db)
	expenses := repository.NewExpenseRepo(db)

	summaries := service.NewSummaryService(apartments, incomes, expenses)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	propHandler := handler.NewPropertyHandler(apartments, incomes, expenses, summaries)
	adminHandler := handler.NewAdminHandler(users)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterAPI(e, propHandler, adminHandler, cfg.JWTSecret,
		middleware.NewResponseCache(config.LoadCacheConfig(), rdb))

	// The consumer owns its reconnect loop and never returns under normal
	// operation.
	go func() {
		if err := queue.StartFinanceConsumer(); err != nil {
			log.Printf("finance consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
