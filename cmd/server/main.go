package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Ramez23/Movies-System/internal/config"
	"github.com/Ramez23/Movies-System/internal/database"
	"github.com/Ramez23/Movies-System/internal/handler"
	"github.com/Ramez23/Movies-System/internal/queue"
	"github.com/Ramez23/Movies-System/internal/repository"
	"github.com/Ramez23/Movies-System/internal/router"
	"github.com/Ramez23/Movies-System/internal/service"
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

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(migrateCtx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient() // nil when Redis is absent; cache and limits turn off

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	movieRepo := repository.NewMovieRepo(db)
	hallRepo := repository.NewHallRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	showtimeRepo := repository.NewShowtimeRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	publisher := queue.NewPublisher(cfg.AMQPURL)
	if cfg.AMQPURL != "" {
		go func() {
			if err := queue.StartAuditConsumer(cfg.AMQPURL); err != nil {
				log.Printf("audit consumer: %v", err)
			}
		}()
	}

	identity := service.NewIdentityService(userRepo, tokenRepo, cfg.JWTSecret, cfg.AccessTTLMin, cfg.RefreshTTLDays, cfg.BcryptCost)
	catalog := service.NewCatalogService(movieRepo, hallRepo, seatRepo, showtimeRepo)
	reservations := service.NewReservationService(reservationRepo, showtimeRepo, seatRepo, publisher)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.Register(e, router.Handlers{
		Auth:         handler.NewAuthHandler(identity),
		Users:        handler.NewUserHandler(identity),
		Movies:       handler.NewMovieHandler(catalog),
		Halls:        handler.NewHallHandler(catalog),
		Showtimes:    handler.NewShowtimeHandler(catalog),
		Reservations: handler.NewReservationHandler(reservations),
	}, cfg.JWTSecret, rdb, config.LoadCacheConfig(), config.LoadRateLimitConfig())

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
