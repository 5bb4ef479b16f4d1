package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/rosaleda/pasteleria-api/internal/config"
	"github.com/rosaleda/pasteleria-api/internal/database"
	"github.com/rosaleda/pasteleria-api/internal/handler"
	"github.com/rosaleda/pasteleria-api/internal/middleware"
	"github.com/rosaleda/pasteleria-api/internal/queue"
	"github.com/rosaleda/pasteleria-api/internal/repository"
	"github.com/rosaleda/pasteleria-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories
	productRepo := repository.NewProductRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	favoriteRepo := repository.NewFavoriteRepo(db)
	userRepo := repository.NewUserRepo(db)

	// Handlers
	authHandler := handler.NewAuthHandler(cfg, userRepo)
	productHandler := handler.NewProductHandler(productRepo)
	favoriteHandler := handler.NewFavoriteHandler(favoriteRepo, productRepo)
	reservationHandler := handler.NewReservationHandler(reservationRepo, productRepo)
	adminHandler := handler.NewAdminReservationHandler(reservationRepo)

	// Redis backs the response cache and the rate limiter; both degrade
	// to pass-through when the client is nil.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: cache and rate limiting disabled")
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterProducts(e, productHandler, cfg.JWTSecret, cache)
	router.RegisterFavorites(e, favoriteHandler, cfg.JWTSecret)
	router.RegisterReservations(e, reservationHandler, adminHandler, cfg.JWTSecret)

	// Background consumer appends created reservations to the domain log.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
