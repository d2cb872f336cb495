package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mapmysteps/location-backend-go/internal/api"
	"github.com/mapmysteps/location-backend-go/internal/config"
	"github.com/mapmysteps/location-backend-go/internal/database"
	"github.com/mapmysteps/location-backend-go/internal/handler"
	"github.com/mapmysteps/location-backend-go/internal/repository"
	"github.com/mapmysteps/location-backend-go/internal/service"
	"github.com/mapmysteps/location-backend-go/internal/watch"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve timezone")
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	entryRepo := repository.NewEntryRepository(db)
	hub := watch.NewHub()

	logService := service.NewLogService(entryRepo, hub, cfg.ThresholdMeters, loc)
	viewerService := service.NewViewerService(entryRepo, loc)

	entryHandler := handler.NewEntryHandler(logService, viewerService)
	watchHandler := handler.NewWatchHandler(viewerService, hub)

	router := api.SetupRouter(cfg, entryHandler, watchHandler)

	log.Info().
		Str("port", cfg.Port).
		Float64("threshold_m", cfg.ThresholdMeters).
		Str("time_zone", cfg.TimeZone).
		Msg("server starting")
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
