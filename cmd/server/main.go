// Package main initializes and starts the listpad API server, setting up
// configuration, logging, the database connection, repositories, services,
// handlers and the router.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"listpad/internal/config"
	"listpad/internal/db"
	"listpad/internal/logger"
	"listpad/internal/repository"
	"listpad/internal/server/handler/http"
	"listpad/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("token signing secret is required (-s or JWT_SECRET)")
	}
	secret := []byte(options.JWTSecret)

	// Initialize the PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Sweep tasks whose parent list predates the foreign key.
	db.StartOrphanTaskCleaner(context.Background(), postgresDB, time.Hour, zapLogger)

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	listRepo := repository.NewPostgresListRepository(postgresDB)
	taskRepo := repository.NewPostgresTaskRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, secret, time.Duration(options.TokenTTLHours)*time.Hour)
	listService := service.NewListService(listRepo, taskRepo)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService}
	listHandler := &http.ListHandler{ListsService: listService}
	taskHandler := &http.TaskHandler{TasksService: listService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, listHandler, taskHandler, zapLogger, secret)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
