package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-learning-platform/internal/adapter"
	"github.com/MKhiriev/go-learning-platform/internal/config"
	"github.com/MKhiriev/go-learning-platform/internal/handler"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/server"
	"github.com/MKhiriev/go-learning-platform/internal/service"
	"github.com/MKhiriev/go-learning-platform/internal/store"
	"github.com/MKhiriev/go-learning-platform/internal/workers"
	"github.com/MKhiriev/go-learning-platform/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := newBuildInfo()
	fmt.Println(buildInfo)

	log := logger.NewLogger("learning-platform-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.VersionOr("dev")
	}
	if cfg.App.IsDevelopment() {
		log = logger.NewLogger("learning-platform-server", logger.WithConsole())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	adapters, err := adapter.NewAdapters(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating adapters")
	}

	services, err := service.NewServices(storages, adapters, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(storages, cfg.Workers, log).Run(ctx)

	// blocks until a termination signal arrives
	srv.RunServer()
}

func newBuildInfo() models.AppBuildInfo {
	return models.AppBuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit}
}
