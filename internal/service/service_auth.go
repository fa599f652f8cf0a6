package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GameServerX/dark-haven-website/internal/config"
	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/internal/store"
	"github.com/GameServerX/dark-haven-website/internal/utils"
	"github.com/GameServerX/dark-haven-website/internal/validators"
	"github.com/GameServerX/dark-haven-website/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and opaque bearer
// token rotation using a UserRepository for persistence.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hasher produces digests with the configured scheme and verifies digests
	// of every supported scheme.
	hasher utils.PasswordHasher

	// tokens issues a fresh bearer token at registration and every login.
	tokens utils.TokenGenerator

	validator validators.Validator

	// adminUsername and adminPassword form the admin bootstrap pair.
	// Both are empty when the bootstrap is disabled.
	adminUsername string
	adminPassword string

	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// Returns utils.ErrUnknownHashScheme for an unsupported password scheme.
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) (AuthService, error) {
	hasher, err := utils.NewPasswordHasher(cfg.PasswordHashScheme)
	if err != nil {
		return nil, err
	}

	svc := &authService{
		userRepository: userRepository,
		hasher:         hasher,
		tokens:         utils.NewTokenGenerator(),
		validator:      validators.NewStructValidator(),
		now:            func() time.Time { return time.Now().UTC() },
		logger:         logger,
	}
	if cfg.AdminBootstrapEnabled() {
		svc.adminUsername = cfg.AdminUsername
		svc.adminPassword = cfg.AdminPassword
	}

	return svc, nil
}

// Register creates a new user account.
//
// The username is trimmed before validation. A case-insensitive match with an
// existing account is rejected up front; a concurrent registration of the same
// name is rejected by the store's unique index. Both surface as
// store.ErrLoginAlreadyExists.
//
// Returns the persisted user with its first token or:
//   - ErrInvalidDataProvided if the credentials break the length rules.
//   - store.ErrLoginAlreadyExists if the username is taken.
//   - A wrapped storage error for any other repository failure.
func (a *authService) Register(ctx context.Context, credentials models.Credentials) (models.Session, error) {
	log := logger.FromContext(ctx)

	credentials = normalizeCredentials(credentials)
	if err := a.validator.Validate(ctx, credentials); err != nil {
		log.Debug().Err(err).Str("username", credentials.Username).Msg("invalid registration data")
		return models.Session{}, invalidData(err)
	}

	_, err := a.userRepository.FindUserByUsername(ctx, credentials.Username)
	switch {
	case err == nil:
		return models.Session{}, store.ErrLoginAlreadyExists
	case !errors.Is(err, store.ErrNoUserWasFound):
		log.Err(err).Str("username", credentials.Username).Msg("username lookup failed")
		return models.Session{}, fmt.Errorf("username lookup failed: %w", err)
	}

	passwordHash, err := a.hasher.Hash(credentials.Password)
	if err != nil {
		return models.Session{}, fmt.Errorf("error hashing password: %w", err)
	}

	token, err := a.tokens.Generate()
	if err != nil {
		return models.Session{}, err
	}

	now := a.now()
	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     credentials.Username,
		PasswordHash: passwordHash,
		Token:        token,
		IsAdmin:      a.isAdminBootstrap(credentials),
		Email:        credentials.Email,
		OnlineStatus: models.OnlineStatusOnline,
		CreatedAt:    now,
		LastLogin:    &now,
		LastSeen:     &now,
	})
	if err != nil {
		log.Err(err).Str("username", credentials.Username).Msg("user creation ended with error")
		return models.Session{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	if registeredUser.IsAdmin {
		log.Info().Int64("user_id", registeredUser.UserID).Msg("admin account bootstrapped")
	}

	return models.Session{Token: token, User: registeredUser}, nil
}

// Login authenticates an existing user and rotates the bearer token.
//
// Returns the session with the new token or:
//   - ErrInvalidDataProvided if username or password is empty.
//   - ErrWrongPassword if the username is unknown or the password does not match.
//   - A wrapped storage error if the repository call fails.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.Session, error) {
	log := logger.FromContext(ctx)

	credentials = normalizeCredentials(credentials)
	if credentials.Username == "" || credentials.Password == "" {
		return models.Session{}, fmt.Errorf("%w: username and password required", ErrInvalidDataProvided)
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Session{}, ErrWrongPassword
		}
		log.Err(err).Str("username", credentials.Username).Msg("user search by username failed")
		return models.Session{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !a.hasher.Verify(credentials.Password, foundUser.PasswordHash) {
		log.Warn().Int64("id", foundUser.UserID).Msg("wrong password")
		return models.Session{}, ErrWrongPassword
	}

	// an empty hash keeps the stored digest
	newHash := ""
	if a.hasher.NeedsRehash(foundUser.PasswordHash) {
		if newHash, err = a.hasher.Hash(credentials.Password); err != nil {
			return models.Session{}, fmt.Errorf("error hashing password: %w", err)
		}
	}

	token, err := a.tokens.Generate()
	if err != nil {
		return models.Session{}, err
	}

	if err = a.userRepository.UpdateSession(ctx, foundUser.UserID, token, newHash); err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("session update failed")
		return models.Session{}, fmt.Errorf("session update failed: %w", err)
	}

	now := a.now()
	foundUser.Token = token
	foundUser.OnlineStatus = models.OnlineStatusOnline
	foundUser.LastLogin = &now
	foundUser.LastSeen = &now
	if newHash != "" {
		foundUser.PasswordHash = newHash
	}

	return models.Session{Token: token, User: foundUser}, nil
}

// Authenticate resolves header (an X-Authorization or Authorization value,
// with or without the "Bearer " prefix) into the owning user.
//
// Every failure to resolve the token is reported as ErrUnauthorized; store
// failures other than a miss are wrapped as they are.
func (a *authService) Authenticate(ctx context.Context, header string) (models.User, error) {
	token := utils.ParseBearerToken(header)
	if token == "" {
		return models.User{}, ErrUnauthorized
	}

	user, err := a.userRepository.FindUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUnauthorized
		}
		logger.FromContext(ctx).Err(err).Msg("token lookup failed")
		return models.User{}, fmt.Errorf("token lookup failed: %w", err)
	}

	return user, nil
}

func (a *authService) isAdminBootstrap(credentials models.Credentials) bool {
	return a.adminUsername != "" &&
		credentials.Username == a.adminUsername &&
		credentials.Password == a.adminPassword
}

func normalizeCredentials(credentials models.Credentials) models.Credentials {
	credentials.Username = strings.TrimSpace(credentials.Username)
	credentials.Email = strings.TrimSpace(credentials.Email)
	return credentials
}

// invalidData converts a validator failure into ErrInvalidDataProvided while
// keeping the field description.
func invalidData(err error) error {
	if errors.Is(err, validators.ErrValidationFailed) {
		_, detail, _ := strings.Cut(err.Error(), ": ")
		return fmt.Errorf("%w: %s", ErrInvalidDataProvided, detail)
	}
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}
