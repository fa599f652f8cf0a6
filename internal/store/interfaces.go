// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameServerX

package store

import (
	"context"

	"github.com/GameServerX/dark-haven-website/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store.go -package=mock

// UserRepository persists accounts and their profile data.
type UserRepository interface {
	// CreateUser inserts user and returns it with the assigned id.
	// A case-insensitive username clash yields ErrLoginAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByUsername matches the username case-insensitively.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	// FindUserByToken resolves a bearer token and refreshes last_seen.
	FindUserByToken(ctx context.Context, token string) (models.User, error)
	// UpdateSession stores a freshly issued token. A non-empty passwordHash
	// replaces the stored digest in the same statement.
	UpdateSession(ctx context.Context, userID int64, token, passwordHash string) error
	// UpdateProfile applies the non-nil fields of update in one statement.
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error)
	ListOnlineUsers(ctx context.Context, limit int) ([]models.User, error)
}

// MessageRepository persists chat messages.
type MessageRepository interface {
	// CreateMessage stores msg and credits its author in one transaction.
	CreateMessage(ctx context.Context, msg models.Message) (models.Message, error)
	GetMessage(ctx context.Context, messageID int64) (models.Message, error)
	ListMessages(ctx context.Context, request models.FeedRequest) ([]models.Message, error)
	UpdateMessageText(ctx context.Context, messageID int64, text string) (models.Message, error)
	DeleteMessage(ctx context.Context, messageID int64) error
}

// FriendRepository manages the one-directional friend edges. Every method
// returns the resulting friend ids in ascending order.
type FriendRepository interface {
	AddFriend(ctx context.Context, userID, friendID int64) ([]int64, error)
	RemoveFriend(ctx context.Context, userID, friendID int64) ([]int64, error)
	ListFriends(ctx context.Context, userID int64) ([]int64, error)
}

// ObjectStorage stores uploaded files and reports their public URL.
type ObjectStorage interface {
	PutObject(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// ErrorClassificator maps driver errors onto an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
