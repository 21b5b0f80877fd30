package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/event-ticketing/internal/cache"
	"github.com/iliyamo/event-ticketing/internal/config"
	"github.com/iliyamo/event-ticketing/internal/database"
	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/queue"
	"github.com/iliyamo/event-ticketing/internal/realtime"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/router"
	"github.com/iliyamo/event-ticketing/internal/service"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()
	cacheCfg := config.LoadCacheConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// A nil Redis client disables the cache-aside layer; reads fall
	// through to the database.
	var cacheStore cache.Store
	if rdb := config.NewRedisClient(); rdb != nil {
		cacheStore = cache.NewRedisStore(rdb)
	} else {
		log.Println("redis unavailable, caching disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	events := repository.NewEventRepo(db)
	tickets := repository.NewTicketRepo(db)
	notifications := repository.NewNotificationRepo(db)
	activities := repository.NewActivityRepo(db)

	hub := realtime.NewHub()

	authSvc := service.NewAuthService(users, tokens, activities, service.AuthConfig{
		AccessSecret:   cfg.AccessSecret,
		RefreshSecret:  cfg.RefreshSecret,
		AccessTTLDays:  cfg.AccessTTLDays,
		RefreshTTLDays: cfg.RefreshTTLDays,
		BcryptCost:     cfg.BcryptCost,
	})
	notificationSvc := service.NewNotificationService(notifications, hub)
	eventSvc := service.NewEventService(events, tickets, notificationSvc)
	ticketSvc := service.NewTicketService(tickets, service.NewFileQRRenderer(cfg.QRCodeDir), queue.NewAMQPPublisher())
	userSvc := service.NewUserService(users, cfg.BcryptCost)
	analyticsSvc := service.NewAnalyticsService(events, activities)

	// The consumer reconnects forever in the background; a dead
	// broker never blocks the HTTP server.
	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	router.Register(e, router.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Events:        handler.NewEventHandler(eventSvc, cacheStore, cacheCfg),
		Tickets:       handler.NewTicketHandler(ticketSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
		Users:         handler.NewUserHandler(userSvc),
		Analytics:     handler.NewAnalyticsHandler(analyticsSvc),
		Hub:           hub,
		AccessSecret:  cfg.AccessSecret,
		Validator:     authSvc,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
