package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Sreejithpr/Costume-rentals/internal/config"
	"github.com/Sreejithpr/Costume-rentals/internal/database"
	"github.com/Sreejithpr/Costume-rentals/internal/handler"
	"github.com/Sreejithpr/Costume-rentals/internal/queue"
	"github.com/Sreejithpr/Costume-rentals/internal/repository"
	"github.com/Sreejithpr/Costume-rentals/internal/router"
	"github.com/Sreejithpr/Costume-rentals/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}
	if cfg.SeedData {
		if err := database.Seed(ctx, db); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, caching and rate limiting disabled")
	}

	events := queue.NewPublisher(cfg.AMQPURL)
	go queue.StartActivityConsumer(cfg.AMQPURL)

	runner := database.NewTxRunner(db)
	customers := repository.NewCustomerRepo(db)
	costumes := repository.NewCostumeRepo(db)
	rentals := repository.NewRentalRepo(db)
	bills := repository.NewBillRepo(db)
	staff := repository.NewStaffRepo(db)
	tokens := repository.NewTokenRepo(db)

	billing := service.NewBillingService(runner, costumes, rentals, bills, events)
	renting := service.NewRentalService(runner, customers, costumes, rentals, billing, events)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, router.Deps{
		Cfg:       &cfg,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		Redis:     rdb,
		DB:        db,
		Auth:      handler.NewAuthHandler(staff, tokens, &cfg),
		Customers: handler.NewCustomerHandler(customers),
		Costumes:  handler.NewCostumeHandler(costumes),
		Rentals:   handler.NewRentalHandler(renting),
		Bills:     handler.NewBillHandler(billing),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
