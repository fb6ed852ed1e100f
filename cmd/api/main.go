package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/edupay-api/internal/gateway"
	"github.com/noah-isme/edupay-api/internal/handler"
	"github.com/noah-isme/edupay-api/internal/mailer"
	"github.com/noah-isme/edupay-api/internal/media"
	"github.com/noah-isme/edupay-api/internal/mirror"
	"github.com/noah-isme/edupay-api/internal/repository"
	"github.com/noah-isme/edupay-api/internal/service"
	"github.com/noah-isme/edupay-api/pkg/cache"
	"github.com/noah-isme/edupay-api/pkg/config"
	"github.com/noah-isme/edupay-api/pkg/database"
	"github.com/noah-isme/edupay-api/pkg/jobs"
	"github.com/noah-isme/edupay-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck
	sugar := logr.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		sugar.Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if err := repository.EnsureSchema(ctx, db); err != nil {
		sugar.Fatalw("failed to ensure schema", "error", err)
	}

	// Redis only guards against payment replays; the API degrades to
	// database-level duplicate checks without it.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		sugar.Warnw("redis unavailable, replay guard disabled", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	mirrorStore, err := mirror.NewStore(cfg.Mirror.Dir)
	if err != nil {
		sugar.Fatalw("failed to init mirror store", "error", err)
	}

	mail := mailer.New(cfg.Mail)
	gatewayClient := gateway.NewClient(cfg.Razorpay)

	mediaHost, err := media.NewHost(cfg.Media)
	if err != nil {
		sugar.Warnw("media host unavailable, uploads disabled", "error", err)
		mediaHost = nil
	}

	registrationRepo := repository.NewRegistrationRepository(db)
	contactRepo := repository.NewContactRepository(db)
	aboutRepo := repository.NewAboutRepository(db)
	contentRepo := repository.NewContentRepository(db)
	userRepo := repository.NewUserRepository(db)

	validate := validator.New()

	// The cleanup queue and the content service reference each other;
	// the closure resolves the service lazily, after both exist.
	var contentService *service.ContentService
	cleanupQueue := jobs.NewQueue("media_destroy", func(ctx context.Context, task jobs.Task) error {
		return contentService.DestroyAsset(ctx, task)
	}, jobs.Config{
		Workers:    cfg.Cleanup.Workers,
		MaxRetries: cfg.Cleanup.MaxRetries,
		RetryDelay: cfg.Cleanup.RetryDelay,
		Logger:     logr,
	})
	cleanupQueue.Start(ctx)
	defer cleanupQueue.Stop()

	if mediaHost != nil {
		contentService = service.NewContentService(contentRepo, mediaHost, cleanupQueue, validate, logr)
	} else {
		contentService = service.NewContentService(contentRepo, nil, cleanupQueue, validate, logr)
	}

	metricsService := service.NewMetricsService()
	paymentService := service.NewPaymentService(registrationRepo, gatewayClient, mirrorStore, mail, redisClient, validate, logr).
		WithMetrics(metricsService)
	contactService := service.NewContactService(contactRepo, aboutRepo, mirrorStore, mail, validate, logr)
	userService := service.NewUserService(userRepo, logr)
	authService := service.NewAuthService(userRepo, validate, logr, cfg.JWT)
	exportService := service.NewExportService(registrationRepo, contactRepo, aboutRepo, logr)

	handlers := handler.Handlers{
		Payments: handler.NewPaymentHandler(paymentService, metricsService),
		Contacts: handler.NewContactHandler(contactService),
		Contents: handler.NewContentHandler(contentService),
		Users:    handler.NewUserHandler(userService),
		Auth:     handler.NewAuthHandler(authService),
		Exports:  handler.NewExportHandler(exportService),
		Mirrors:  handler.NewMirrorHandler(mirrorStore),
	}

	router := handler.NewRouter(cfg, logr, handlers, authService, metricsService)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("graceful shutdown failed", "error", err)
	}
}
