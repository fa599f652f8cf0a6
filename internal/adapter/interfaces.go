// Package adapter is the client side of the Dark Haven REST API.
//
// [ServerAdapter] hides the JSON wire format and the token header. Error
// statuses are mapped to the sentinels in errors.go so that callers can use
// [errors.Is] (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/GameServerX/dark-haven-website/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter talks to a Dark Haven server on behalf of one user.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	// Register and Login call it on success.
	SetToken(token string)
	Token() string

	Register(ctx context.Context, credentials models.Credentials) (models.SessionResponse, error)
	Login(ctx context.Context, credentials models.Credentials) (models.SessionResponse, error)
	Verify(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.Profile, error)

	Feed(ctx context.Context, request models.FeedRequest) ([]models.MessageView, error)
	Send(ctx context.Context, text string) (models.MessageView, error)
	Edit(ctx context.Context, messageID int64, text string) (models.MessageView, error)
	Delete(ctx context.Context, messageID int64) error

	Profile(ctx context.Context, userID int64) (models.Profile, error)
	Search(ctx context.Context, query string) ([]models.UserSummary, error)
	Online(ctx context.Context) ([]models.UserSummary, error)
	AddFriend(ctx context.Context, friendID int64) ([]int64, error)
	RemoveFriend(ctx context.Context, friendID int64) ([]int64, error)

	Upload(ctx context.Context, request models.UploadRequest) (models.UploadResult, error)
	Version(ctx context.Context) (string, error)
}
