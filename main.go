package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"travel-booking/cmd"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/usecase"
	"travel-booking/internal/wire"
	"travel-booking/pkg/cache"
	"travel-booking/pkg/database"
	"travel-booking/pkg/storage"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if err := database.Migrate(ctx, db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	c, err := cache.New(ctx, config.Redis, logger)
	if err != nil {
		logger.Warn("Cache unavailable, reading through to the database", zap.Error(err))
		c = cache.Noop{}
	}
	defer c.Close()

	store, err := storage.New(config.Upload, logger)
	if err != nil {
		logger.Fatal("Failed to init image storage", zap.Error(err))
	}

	repos := repository.NewRepository(db, logger)
	service := usecase.NewService(repos, c, store, config, logger)
	app := wire.Wiring(repos, service, config, logger)

	if err := cmd.StartJobs(ctx, repos.Session, config.Session.CleanupSchedule, logger); err != nil {
		logger.Fatal("Failed to schedule jobs", zap.Error(err))
	}

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
