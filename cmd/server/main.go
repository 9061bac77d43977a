package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/database"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/iliyamo/hotel-reservation/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env always wins

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and caching disabled")
	}

	bookingRepo := repository.NewBookingRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	clientRepo := repository.NewClientRepo(db)
	statusRepo := repository.NewStatusRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	positionRepo := repository.NewPositionRepo(db)
	staffRepo := repository.NewStaffRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	serviceRepo := repository.NewServiceRepo(db)
	documentRepo := repository.NewDocumentRepo(db)
	cleaningRepo := repository.NewCleaningRepo(db)
	salesRepo := repository.NewSalesRepo(db)

	api := router.API{
		Auth:       handler.NewAuthHandler(cfg, staffRepo),
		Bookings:   handler.NewBookingHandler(bookingRepo, roomRepo, clientRepo, statusRepo, cfg.VacatingStatuses),
		Rooms:      handler.NewRoomHandler(roomRepo, categoryRepo),
		Clients:    handler.NewClientHandler(clientRepo),
		Statuses:   handler.NewStatusHandler(statusRepo),
		Categories: handler.NewCategoryHandler(categoryRepo),
		Positions:  handler.NewPositionHandler(positionRepo),
		Payments:   handler.NewPaymentHandler(paymentRepo),
		Services:   handler.NewServiceHandler(serviceRepo),
		Documents:  handler.NewDocumentHandler(documentRepo),
		Cleanings:  handler.NewCleaningHandler(cleaningRepo),
		Sales:      handler.NewSalesHandler(salesRepo),
	}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterAPI(e, api, cfg.JWTSecret,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	)

	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
