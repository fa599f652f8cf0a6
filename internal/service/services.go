package service

import (
	"fmt"

	"github.com/GameServerX/dark-haven-website/internal/config"
	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/internal/store"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	MessageService MessageService
	AppInfoService AppInfoService

	// UploadService is nil when object storage is not configured.
	UploadService UploadService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	authService, err := NewAuthService(storages.UserRepository, cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating auth service: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	messageService := NewMessageValidationService().Wrap(
		NewMessageService(storages.MessageRepository, NewAuthorizer(), cfg.App, logger),
	)

	services := &Services{
		AuthService:    authService,
		UserService:    NewUserService(storages.UserRepository, storages.FriendRepository, logger),
		MessageService: messageService,
		AppInfoService: appInfoService,
	}
	if cfg.Storage.Objects.Enabled() {
		services.UploadService = NewUploadService(storages.ObjectStorage, cfg, logger)
	}

	return services, nil
}
