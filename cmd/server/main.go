package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/letteringshop/storefront/internal/cartcount"
	"github.com/letteringshop/storefront/internal/config"
	"github.com/letteringshop/storefront/internal/events"
	"github.com/letteringshop/storefront/internal/httpserver"
	authmw "github.com/letteringshop/storefront/internal/middleware/auth"
	loggingmw "github.com/letteringshop/storefront/internal/middleware/logging"
	"github.com/letteringshop/storefront/internal/repo"
	"github.com/letteringshop/storefront/internal/service"
	"github.com/letteringshop/storefront/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *events.Producer
	if cfg.KafkaAddress != "" {
		producer = events.NewProducer([]string{cfg.KafkaAddress})
	}

	gormRepo := &repo.GormRepo{DB: db}
	counts := cartcount.New()

	jwtSecret := []byte(cfg.JWTSecret)
	refreshSecret := []byte(cfg.RefreshSecret)

	deps := &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc:      &service.AuthService{Repo: gormRepo, JWTSecret: jwtSecret, RefreshSecret: refreshSecret},
			Producer: producer,
		},
		CartHandler: &httpserver.CartHTTP{
			Svc:      &service.CartService{Repo: gormRepo},
			Counts:   counts,
			Producer: producer,
		},
		CatalogHandler: &httpserver.CatalogHTTP{
			Svc:      &service.CatalogService{Repo: gormRepo},
			Producer: producer,
		},
		AccountHandler: &httpserver.AccountHTTP{
			Svc: &service.AccountService{Repo: gormRepo},
		},
		AuthMW: authmw.New(jwtSecret),
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting storefront server", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
