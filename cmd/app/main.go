package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lunar-dashboard/internal/config"
	"lunar-dashboard/internal/database"
	"lunar-dashboard/internal/domain"
	"lunar-dashboard/internal/handler"
	"lunar-dashboard/internal/source"
	"lunar-dashboard/internal/store"
	"lunar-dashboard/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	// Источник данных: JSON-фикстуры или PostgreSQL
	var src domain.Source
	switch cfg.DataSource {
	case "postgres":
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			logger.Fatalf("Database connection failed: %v", err)
		}
		defer db.Close()
		logger.Info("Database connected")
		src = source.NewPostgresSource(db)
	default:
		src = source.NewFileSource(cfg.UsersFile, cfg.StatsFile)
		logger.WithFields(logrus.Fields{
			"users": cfg.UsersFile,
			"stats": cfg.StatsFile,
		}).Info("Using file data source")
	}

	// Хранилище снимков с TTL-кэшем
	st := store.New(src, cfg.CacheTTL)

	// Use Cases
	userUC := usecase.NewUserUseCase(st)
	statsUC := usecase.NewStatsUseCase(st)

	// Echo + Handlers
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(logger)
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(handler.RequestIDMiddleware())
	e.Use(handler.LoggingMiddleware(logger))

	apiHandler := handler.NewAPIHandler(userUC, statsUC, logger)
	handler.RegisterRoutes(e, apiHandler)

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
