package service

import (
	"context"

	"github.com/GameServerX/dark-haven-website/models"
)

// AuthService owns credentials and bearer tokens.
type AuthService interface {
	// Register creates an account and returns it with its first token.
	Register(ctx context.Context, credentials models.Credentials) (models.Session, error)
	// Login checks the password and issues a new token, invalidating the previous one.
	Login(ctx context.Context, credentials models.Credentials) (models.Session, error)
	// Authenticate resolves a raw header value into a user.
	Authenticate(ctx context.Context, header string) (models.User, error)
}

// UserService serves profiles, user listings and friend lists.
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (models.User, error)
	Search(ctx context.Context, query string) ([]models.User, error)
	Online(ctx context.Context) ([]models.User, error)

	UpdateProfile(ctx context.Context, user models.User, update models.ProfileUpdate) (models.User, error)
	AddFriend(ctx context.Context, user models.User, friendID int64) ([]int64, error)
	RemoveFriend(ctx context.Context, user models.User, friendID int64) ([]int64, error)
}

type MessageService interface {
	Feed(ctx context.Context, request models.FeedRequest) ([]models.Message, error)
	Send(ctx context.Context, user models.User, text string) (models.Message, error)
	Edit(ctx context.Context, user models.User, messageID int64, text string) (models.Message, error)
	Delete(ctx context.Context, user models.User, messageID int64) error
}

type UploadService interface {
	Upload(ctx context.Context, user models.User, request models.UploadRequest) (models.UploadResult, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// Authorizer decides whether an authenticated user may act on a message.
// It returns nil when the action is allowed and ErrForbidden otherwise.
type Authorizer interface {
	CanEditMessage(user models.User, message models.Message) error
	CanDeleteMessage(user models.User, message models.Message) error
}

// MessageServiceWrapper defines middleware composition for MessageService.
// Implementations wrap an existing MessageService to add behavior such as
// validating.
type MessageServiceWrapper interface {
	Wrap(MessageService) MessageService // returns a decorated MessageService applying additional behavior
}
