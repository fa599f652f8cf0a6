package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/GameServerX/dark-haven-website/internal/adapter"
	"github.com/GameServerX/dark-haven-website/internal/client"
	"github.com/GameServerX/dark-haven-website/internal/config"
	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, client.Usage)
		return 2
	}

	log := logger.NewClientLogger("dark-haven-client")
	if err = logger.SetLevel(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(*cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("create server adapter")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := client.NewApp(serverAdapter, os.Stdout, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err = app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, client.ErrUsage) {
			return 2
		}
		return 1
	}

	return 0
}
