package handler

import (
	"github.com/GameServerX/dark-haven-website/internal/config"
	"github.com/GameServerX/dark-haven-website/internal/handler/http"
	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewHandler(services, cfg, logger)}, nil
}
