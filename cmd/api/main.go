package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"profile-directory/config"
	_ "profile-directory/docs" // Important for Swagger
	"profile-directory/internal/dataset"
	v1 "profile-directory/internal/delivery/http/v1"
	"profile-directory/internal/repository/memory"
	"profile-directory/internal/usecase"
	"profile-directory/pkg/logger"
	"profile-directory/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Profile Directory API
// @version         1.0
// @description     Searchable directory of public-figure profiles with a single in-flight edit session.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting profile directory", "port", cfg.Port)

	// 3. Load Dataset
	profiles, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		logger.Log.Error("Failed to load dataset", "path", cfg.DatasetPath, "error", err)
		os.Exit(1)
	}
	logger.Log.Info("Dataset loaded", "profiles", len(profiles))

	// 4. Setup Repository
	profileRepo := memory.NewProfileRepository(profiles)

	// 5. Setup UseCases
	directoryUC, err := usecase.NewDirectoryUsecase(profileRepo, validation.New(), usecase.DirectoryOptions{
		AdultAge:        cfg.AdultAge,
		FilterCacheSize: cfg.FilterCacheSize,
	})
	if err != nil {
		logger.Log.Error("Failed to create directory usecase", "error", err)
		os.Exit(1)
	}
	healthUC := usecase.NewHealthUsecase(profileRepo)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		DirectoryUC: directoryUC,
		HealthUC:    healthUC,
		Config:      cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
