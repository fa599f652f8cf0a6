package service

import (
	"context"
	"strings"

	"github.com/GameServerX/dark-haven-website/internal/config"
	"github.com/GameServerX/dark-haven-website/internal/logger"
)

// appInfoService serves static facts about the running backend.
type appInfoService struct {
	appVersion string

	logger *logger.Logger
}

// NewAppInfoService returns ErrVersionIsNotSpecified when cfg carries no
// version (surrounding whitespace does not count).
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Debug().Str("version", version).Msg("app info service created")

	return &appInfoService{
		appVersion: version,
		logger:     logger,
	}, nil
}

// GetAppVersion returns the version served by /api/version.
func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.appVersion
}
