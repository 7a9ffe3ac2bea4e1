package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/lucasmedrano/tourmarket-backend/api/routes"
	"github.com/lucasmedrano/tourmarket-backend/internal/auditlogs"
	"github.com/lucasmedrano/tourmarket-backend/internal/carts"
	"github.com/lucasmedrano/tourmarket-backend/internal/notifications"
	"github.com/lucasmedrano/tourmarket-backend/internal/orders"
	"github.com/lucasmedrano/tourmarket-backend/internal/payments"
	"github.com/lucasmedrano/tourmarket-backend/internal/products"
	"github.com/lucasmedrano/tourmarket-backend/internal/qrcodes"
	"github.com/lucasmedrano/tourmarket-backend/internal/regions"
	"github.com/lucasmedrano/tourmarket-backend/pkg/config"
	"github.com/lucasmedrano/tourmarket-backend/pkg/db"
	"github.com/lucasmedrano/tourmarket-backend/pkg/logger"
	"github.com/lucasmedrano/tourmarket-backend/pkg/mail"
	"github.com/lucasmedrano/tourmarket-backend/pkg/migrate"
	"github.com/lucasmedrano/tourmarket-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	mailClient := mail.New(cfg.SMTP)

	auditService, err := auditlogs.NewService(auditlogs.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create audit log service", err)
		os.Exit(1)
	}

	regionsService, err := regions.NewService(regions.ServiceParams{
		Repo:   regions.NewRepository(dbClient.DB()),
		Audit:  auditService,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create regions service", err)
		os.Exit(1)
	}

	cartsService, err := carts.NewService(carts.ServiceParams{
		Repo:     carts.NewRepository(dbClient.DB()),
		Products: products.NewRepository(dbClient.DB()),
		Config:   cfg.Cart,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create carts service", err)
		os.Exit(1)
	}

	qrService, err := qrcodes.NewService(qrcodes.ServiceParams{
		Repo: qrcodes.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create qr codes service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	paymentsService, err := payments.NewService(payments.ServiceParams{
		Repo:   payments.NewRepository(dbClient.DB()),
		Orders: orders.NewRepository(dbClient.DB()),
		Tx:     dbClient,
		Audit:  auditService,
		Mailer: mailClient,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			DB:            dbClient,
			Redis:         redisClient,
			Mail:          mailClient,
			Regions:       regionsService,
			Carts:         cartsService,
			QRCodes:       qrService,
			Notifications: notificationsService,
			Payments:      paymentsService,
			AuditLogs:     auditService,
		}),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "api server shut down gracefully")
}
