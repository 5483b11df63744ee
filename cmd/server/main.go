package main // Entry point package

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/bsgholding/cms-backend/internal/config"
	"github.com/bsgholding/cms-backend/internal/database"
	"github.com/bsgholding/cms-backend/internal/handler"
	"github.com/bsgholding/cms-backend/internal/queue"
	"github.com/bsgholding/cms-backend/internal/repository"
	"github.com/bsgholding/cms-backend/internal/router"
	queue_publisher "github.com/bsgholding/cms-backend/internal/service"
	"github.com/bsgholding/cms-backend/internal/storage"
)

func main() {
	// .env is a convenience for local development; deployed environments
	// set real variables and the load error is irrelevant there.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the login rate limiter. A nil
	// client disables both; the API itself keeps working.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	events := queue_publisher.NewPublisher(cfg.AMQPURL)

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users),
		Projects: handler.NewProjectHandler(repository.NewProjectRepo(db), events),
		Partners: handler.NewPartnerHandler(repository.NewPartnerRepo(db), events),
		Clients:  handler.NewClientHandler(repository.NewClientRepo(db), events),
		Timeline: handler.NewTimelineHandler(repository.NewTimelineRepo(db), events),
		Content:  handler.NewContentHandler(repository.NewPageContentRepo(db), events),
		Media:    handler.NewMediaHandler(repository.NewMediaRepo(db), storage.NewLocalStore(cfg.UploadDir, cfg.MaxUploadBytes), events),
		Health:   handler.NewHealthHandler(db, rdb, cfg.AMQPURL),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
	}))

	router.Register(e, cfg, rdb, users, h)

	// Content-change events purge stale cached responses. The consumer
	// reconnects on its own until the process shuts down.
	if cfg.AMQPURL != "" && rdb != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := queue.StartContentConsumer(ctx, cfg.AMQPURL, rdb, config.LoadCacheConfig().Prefix); err != nil {
				log.Printf("content consumer stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
