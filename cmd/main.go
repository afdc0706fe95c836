package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Charliemorrone/FittedAI/internal/config"
	"github.com/Charliemorrone/FittedAI/internal/database"
	"github.com/Charliemorrone/FittedAI/internal/graywhale"
	"github.com/Charliemorrone/FittedAI/internal/handler"
	"github.com/Charliemorrone/FittedAI/internal/middleware"
	"github.com/Charliemorrone/FittedAI/internal/photostore"
	"github.com/Charliemorrone/FittedAI/internal/repository"
	"github.com/Charliemorrone/FittedAI/internal/session"
	"github.com/Charliemorrone/FittedAI/internal/source"
	"github.com/Charliemorrone/FittedAI/internal/veo"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to Redis (photo store + rate limiting)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// PostgreSQL is best-effort: swipe telemetry persistence degrades to a
	// no-op when the database is unavailable.
	var repo *repository.SwipeRepository
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Warn("PostgreSQL unavailable, swipe persistence disabled", "error", err)
	} else {
		defer db.Close()
		repo = repository.NewSwipeRepository(db)
	}

	// Initialize layers
	feed := graywhale.NewClient(cfg.GrayWhale)
	batchCache := source.NewBatchCache(rdb, 5*time.Minute)
	resolver := source.NewResolver(
		source.NewRemoteProvider(feed, batchCache),
		source.NewStaticProvider(),
		source.NewMockProvider(),
	)
	manager := session.NewManager(feed, resolver)

	sessionHandler := handler.NewSessionHandler(manager, feed, repo)
	photoHandler := handler.NewPhotoHandler(photostore.NewStore(rdb))
	videoHandler := handler.NewVideoHandler(veo.NewClient(cfg.Veo))
	retailerHandler := handler.NewRetailerHandler()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "outfit-service",
		ServerHeader: "outfit-service",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(middleware.NewRateLimiter(rdb, 120, 60).Handler())
	app.Use(middleware.AuthMiddleware())

	// Routes
	app.Get("/health", sessionHandler.Health)

	api := app.Group("/api/v1")
	api.Post("/sessions", sessionHandler.CreateSession)
	api.Get("/sessions/:id", sessionHandler.GetSession)
	api.Delete("/sessions/:id", sessionHandler.DeleteSession)
	api.Post("/sessions/:id/swipes", sessionHandler.Swipe)
	api.Get("/sessions/:id/swipes", sessionHandler.GetSwipeHistory)
	api.Get("/sessions/:id/purchase", sessionHandler.GetPurchase)

	api.Put("/photos/:visitorId", photoHandler.SavePhoto)
	api.Get("/photos/:visitorId", photoHandler.GetPhoto)
	api.Head("/photos/:visitorId", photoHandler.HasPhoto)
	api.Delete("/photos/:visitorId", photoHandler.ClearPhoto)

	api.Post("/videos", videoHandler.GenerateVideo)
	api.Get("/videos/:id", videoHandler.GetVideoStatus)

	api.Get("/retailer/images", retailerHandler.ResolveImages)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("outfit-service starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down outfit-service")
	_ = app.Shutdown()
}
