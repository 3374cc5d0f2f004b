package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/neimd2025/web-ndrop-sub000/core/cache"
	"github.com/neimd2025/web-ndrop-sub000/core/config"
	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	"github.com/neimd2025/web-ndrop-sub000/core/middleware"
	"github.com/neimd2025/web-ndrop-sub000/core/queue"
	"github.com/neimd2025/web-ndrop-sub000/core/realtime"
	"github.com/neimd2025/web-ndrop-sub000/core/storage"
	"github.com/neimd2025/web-ndrop-sub000/modules/admin"
	adminService "github.com/neimd2025/web-ndrop-sub000/modules/admin/service"
	"github.com/neimd2025/web-ndrop-sub000/modules/card"
	cardService "github.com/neimd2025/web-ndrop-sub000/modules/card/service"
	"github.com/neimd2025/web-ndrop-sub000/modules/chat"
	"github.com/neimd2025/web-ndrop-sub000/modules/event"
	"github.com/neimd2025/web-ndrop-sub000/modules/meeting"
	"github.com/neimd2025/web-ndrop-sub000/modules/notification"
	"github.com/neimd2025/web-ndrop-sub000/modules/participant"
	"github.com/neimd2025/web-ndrop-sub000/modules/recommendation"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run starts the HTTP server and the background worker and blocks until
// SIGINT or SIGTERM.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.Env, cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx, database.MigrationsFS); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	redisCache, err := cache.InitRedis(cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer redisCache.Close()

	queueCfg := queue.RedisConfig{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	queueClient := queue.NewClient(queueCfg)
	defer queueClient.Close()

	images := newImageUploader(cfg.Storage)
	origin := cfg.Origin()
	streamer := realtime.NewStreamer(redisCache, []string{origin})
	mw := middleware.NewMiddleware(redisCache)
	metrics := middleware.NewMetrics()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{origin},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLogger())
	e.Use(metrics.Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", metrics.Handler())

	api := e.Group("/api")

	notificationSvc := notification.Init(api, db, mw, queueClient, redisCache, streamer)
	eventSvc := event.Init(api, db, mw, origin)
	participantSvc := participant.Init(api, db, mw, eventSvc, notificationSvc)
	meetingSvc := meeting.Init(api, db, mw, participantSvc, notificationSvc)
	chat.Init(api, db, mw, meetingSvc, redisCache, streamer)

	var cardUploader cardService.Uploader
	var adminImages adminService.ImageUploader
	if images != nil {
		cardUploader, adminImages = images, images
	}
	card.Init(api, db, mw, cardUploader, notificationSvc)
	recommendation.Init(api, db, mw, participantSvc, redisCache, cfg.AI)

	adminSvc := admin.Init(api, db, mw, redisCache, cfg.JWT.AccessTTL, adminService.Console{
		Events:        eventSvc,
		Participants:  participantSvc,
		Notifications: notificationSvc,
		Images:        adminImages,
	})
	if err := adminSvc.SeedAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		logger.Warn("Server:SeedAdmin:Failed", "error", err)
	}

	worker := queue.NewWorker(queueCfg, cfg.Queue.Concurrency)
	notification.RegisterTasks(worker, notificationSvc)
	if err := participant.RegisterTasks(worker, participantSvc); err != nil {
		return err
	}
	if err := worker.Start(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", addr, "env", cfg.Server.Env)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		worker.Shutdown()
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server:Shutdown:Error", "error", err)
	}
	worker.Shutdown()
	return nil
}

// newImageUploader returns nil when no bucket is configured.
func newImageUploader(cfg config.StorageConfig) *storage.ImageUploader {
	if cfg.Bucket == "" {
		logger.Warn("Storage not configured; image uploads are disabled")
		return nil
	}
	store, err := storage.NewS3Storage(storage.S3Config{
		Bucket:    cfg.Bucket,
		Region:    cfg.Region,
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		PublicURL: cfg.PublicURL,
	})
	if err != nil {
		logger.Error("Storage:Init:Error", "error", err)
		return nil
	}
	return storage.NewImageUploader(store)
}
