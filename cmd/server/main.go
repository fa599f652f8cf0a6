package main

import (
	"context"
	"fmt"

	"github.com/GameServerX/dark-haven-website/internal/config"
	"github.com/GameServerX/dark-haven-website/internal/handler"
	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/internal/server"
	"github.com/GameServerX/dark-haven-website/internal/service"
	"github.com/GameServerX/dark-haven-website/internal/store"
	"github.com/GameServerX/dark-haven-website/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	log := logger.NewLogger("dark-haven-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Warn().Err(err).Str("level", cfg.App.LogLevel).Msg("unknown log level, keeping default")
	}
	if cfg.App.Version == "" && buildInfo.Known() {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log.Debug().Any("server", cfg.Server).Str("driver", cfg.Storage.DB.Driver).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	var objects store.ObjectStorage
	if cfg.Storage.Objects.Enabled() {
		objects, err = store.NewS3ObjectStorage(ctx, cfg.Storage.Objects, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating object storage")
		}
	}

	storages := store.NewStorages(db, objects, log)

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
