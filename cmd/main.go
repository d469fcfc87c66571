package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mindermate/notification-scheduler/internal/app"
	"github.com/mindermate/notification-scheduler/internal/config"
	"github.com/mindermate/notification-scheduler/internal/domain"
	"github.com/mindermate/notification-scheduler/internal/infra/cron"
	"github.com/mindermate/notification-scheduler/internal/infra/handler"
	"github.com/mindermate/notification-scheduler/internal/infra/pubsub"
	"github.com/mindermate/notification-scheduler/internal/infra/push"
	"github.com/mindermate/notification-scheduler/internal/infra/repository"
	"github.com/mindermate/notification-scheduler/internal/observability/logging"
	"github.com/mindermate/notification-scheduler/internal/observability/middleware"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)

		return 1
	}

	setupLogger(cfg.Log)

	ctx := context.Background()

	loc, err := domain.ParseOffset(cfg.Scheduler.TimezoneOffset)
	if err != nil {
		slog.Error("invalid scheduler timezone offset",
			"offset", cfg.Scheduler.TimezoneOffset,
			"error", err,
		)

		return 1
	}

	db, err := initDatabase(cfg.Database)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)

		return 1
	}

	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)

	sender := initSender(ctx, cfg.Push)
	publisher := initPublisher(ctx, cfg.PubSub)

	if publisher != nil {
		defer func() {
			if err := publisher.Close(); err != nil {
				slog.Error("failed to close publisher", "error", err)
			}
		}()
	}

	clock := domain.NewReferenceClock(loc)

	schedulerUseCase := app.NewSchedulerUseCase(taskRepo, userRepo, sender, clock, publisher,
		app.SchedulerConfig{
			Workers:     cfg.Scheduler.Workers,
			PushTimeout: cfg.Scheduler.PushTimeout,
			MatchWindow: cfg.Scheduler.MatchWindow,
		})
	notificationUseCase := app.NewNotificationUseCase(taskRepo, userRepo, sender, cfg.Scheduler.PushTimeout)
	taskUseCase := app.NewTaskUseCase(taskRepo)

	router := setupRouter(cfg,
		handler.NewSchedulerHandler(schedulerUseCase, cfg.Scheduler.CronSecret),
		handler.NewNotificationHandler(notificationUseCase),
		handler.NewTaskHandler(taskUseCase),
	)

	var runner *cron.Runner
	if cfg.Scheduler.EnableInternalCron {
		runner = cron.NewRunner(schedulerUseCase, clock.Location())
		if err := runner.Start(); err != nil {
			slog.Error("failed to start internal cron", "error", err)

			return 1
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("starting server", "address", cfg.Server.Address())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	if runner != nil {
		runner.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)

		return 1
	}

	slog.Info("server exited properly")

	return 0
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logging.NewGormLogger(200 * time.Millisecond),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&repository.TaskModel{}, &repository.UserModel{}); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// initSender builds the FCM client once at startup. Missing credentials
// leave push delivery disabled rather than failing the process: the task
// API remains useful and the scheduler endpoint reports the missing setup.
func initSender(ctx context.Context, cfg config.PushConfig) push.Sender {
	if cfg.FirebaseServiceAccount == "" {
		slog.Warn("FIREBASE_SERVICE_ACCOUNT not set, push delivery disabled")

		return nil
	}

	sender, err := push.NewFCMSender(ctx, []byte(cfg.FirebaseServiceAccount))
	if err != nil {
		slog.Error("failed to initialize FCM sender, push delivery disabled",
			"error", err,
		)

		return nil
	}

	slog.Info("FCM sender initialized")

	return sender
}

func initPublisher(ctx context.Context, cfg config.PubSubConfig) pubsub.Publisher {
	if cfg.NATSURL == "" {
		slog.Warn("NATS_URL not set, event publishing disabled")

		return nil
	}

	publisher, err := pubsub.NewNATSPublisherWithStream(ctx, pubsub.NATSPublisherConfig{
		URL: cfg.NATSURL,
	})
	if err != nil {
		slog.Error("failed to initialize NATS publisher, event publishing disabled",
			"error", err,
		)

		return nil
	}

	slog.Info("NATS publisher initialized", "url", cfg.NATSURL)

	return publisher
}

func setupRouter(
	cfg *config.Config,
	schedulerHandler *handler.SchedulerHandler,
	notificationHandler *handler.NotificationHandler,
	taskHandler *handler.TaskHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(middleware.PanicRecoveryGin())
	router.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/ping"},
		TracerName: "notification-scheduler",
	}))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")
	schedulerHandler.RegisterRoutes(v1)

	authed := v1.Group("")
	authed.Use(handler.JWTAuthMiddleware(cfg.Auth.JWTSecret))
	notificationHandler.RegisterRoutes(authed)
	taskHandler.RegisterRoutes(authed)

	return router
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level

	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
