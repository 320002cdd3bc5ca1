package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"storeadmin/internal/admin"
	"storeadmin/internal/config"
	"storeadmin/internal/database"
	"storeadmin/internal/logging"
	"storeadmin/internal/middleware"
	"storeadmin/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logrus.WithError(err).Fatal("mongo connect")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := database.Disconnect(shutdownCtx, client); err != nil {
			logrus.WithError(err).Warn("mongo disconnect")
		}
	}()

	db := client.Database(cfg.DBName)
	logrus.WithField("db", db.Name()).Info("MongoDB connected")

	if err := database.EnsureIndexes(ctx, db); err != nil {
		logrus.WithError(err).Warn("index bootstrap incomplete")
	}

	products := database.NewProductRepository(db, cfg.DBTimeout)
	orders := database.NewOrderRepository(db, cfg.DBTimeout)
	users := database.NewUserRepository(db, cfg.DBTimeout)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine := router.New(router.Deps{
		Catalog:        admin.NewCatalog(products),
		Orders:         admin.NewOrders(orders, products),
		Users:          users,
		JWTSecret:      cfg.JWTSecret,
		AccessTokenTTL: cfg.AccessTokenTTL,
		LoginLimiter:   middleware.NewRateLimiter(middleware.PerMinute(cfg.LoginRatePerMin), cfg.LoginBurst),
		Metrics:        middleware.NewMetrics(registry),
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, client)
		},
		Gatherer: registry,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	go func() {
		logrus.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}
