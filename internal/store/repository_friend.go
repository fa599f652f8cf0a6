// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameServerX

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/GameServerX/dark-haven-website/internal/logger"
)

// friendRepository stores friend edges in the "friends" join table. The
// (user_id, friend_id) primary key makes concurrent adds safe: duplicates
// collapse into one row and distinct ids never overwrite each other.
type friendRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewFriendRepository constructs a [FriendRepository].
func NewFriendRepository(db *DB, logger *logger.Logger) FriendRepository {
	logger.Debug().Msg("creating friend repository")
	return &friendRepository{
		DB:     db,
		logger: logger,
		now:    utcNow,
	}
}

// AddFriend is idempotent: adding an existing friend changes nothing.
func (f *friendRepository) AddFriend(ctx context.Context, userID, friendID int64) ([]int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertFriendQuery(f.builder, userID, friendID, f.now())
	if err != nil {
		log.Err(err).Str("func", "*friendRepository.AddFriend").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = f.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*friendRepository.AddFriend").
			Int64("user_id", userID).
			Int64("friend_id", friendID).
			Msg("failed to add friend")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return f.ListFriends(ctx, userID)
}

// RemoveFriend is idempotent: removing an absent id is a no-op.
func (f *friendRepository) RemoveFriend(ctx context.Context, userID, friendID int64) ([]int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteFriendQuery(f.builder, userID, friendID)
	if err != nil {
		log.Err(err).Str("func", "*friendRepository.RemoveFriend").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = f.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*friendRepository.RemoveFriend").
			Int64("user_id", userID).
			Int64("friend_id", friendID).
			Msg("failed to remove friend")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return f.ListFriends(ctx, userID)
}

func (f *friendRepository) ListFriends(ctx context.Context, userID int64) ([]int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListFriendsQuery(f.builder, userID)
	if err != nil {
		log.Err(err).Str("func", "*friendRepository.ListFriends").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := f.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*friendRepository.ListFriends").Int64("user_id", userID).Msg("failed to list friends")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	friends := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		friends = append(friends, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return friends, nil
}
