// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameServerX

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
	now    func() time.Time
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
		now:    utcNow,
	}
}

// CreateUser persists a new user record and returns it with the assigned id.
//
// Error handling:
//   - unique index violation (username or token) → [ErrLoginAlreadyExists].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now()
	}

	query, args, err := buildInsertUserQuery(r.db.builder, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	// create user in db
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&user.UserID); err != nil {
		if r.db.isUniqueViolation(err) {
			log.Warn().Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("username is taken")
			return models.User{}, ErrLoginAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindUserByUsername looks the user up by LOWER(username).
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByUsername", sq.Expr("LOWER(username) = LOWER(?)", username))
}

func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", sq.Eq{"id": userID})
}

// FindUserByToken resolves the token with a single UPDATE that also bumps
// last_seen, then loads the matched row.
func (r *userRepository) FindUserByToken(ctx context.Context, token string) (models.User, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.User{}, ErrNoUserWasFound
	}

	query, args, err := buildTouchTokenQuery(r.db.builder, token, r.now())
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByToken").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var userID int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByToken").Msg("error touching token")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return r.FindUserByID(ctx, userID)
}

func (r *userRepository) UpdateSession(ctx context.Context, userID int64, token, passwordHash string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateSessionQuery(r.db.builder, userID, token, passwordHash, r.now())
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateSession").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if r.db.isUniqueViolation(err) {
			// token collision; practically impossible with 256 random bits
			log.Error().Str("func", "*userRepository.UpdateSession").Int64("user_id", userID).Msg("token already in use")
		} else {
			log.Err(err).Str("func", "*userRepository.UpdateSession").Int64("user_id", userID).Msg("error updating session")
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrNoUserWasFound)
}

// UpdateProfile applies update in one statement. An empty update only
// reloads the user.
func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return r.FindUserByID(ctx, userID)
	}

	query, args, err := buildUpdateProfileQuery(r.db.builder, userID, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Int64("user_id", userID).Msg("error updating profile")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if err = expectAffected(result, ErrNoUserWasFound); err != nil {
		return models.User{}, err
	}

	return r.FindUserByID(ctx, userID)
}

func (r *userRepository) SearchUsers(ctx context.Context, search string, limit int) ([]models.User, error) {
	query, args, err := buildSearchUsersQuery(r.db.builder, search, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.findMany(ctx, "*userRepository.SearchUsers", query, args)
}

func (r *userRepository) ListOnlineUsers(ctx context.Context, limit int) ([]models.User, error) {
	query, args, err := buildOnlineUsersQuery(r.db.builder, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.findMany(ctx, "*userRepository.ListOnlineUsers", query, args)
}

func (r *userRepository) findOne(ctx context.Context, funcName string, where sq.Sqlizer) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserQuery(r.db.builder, where)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", funcName).Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

func (r *userRepository) findMany(ctx context.Context, funcName, query string, args []any) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads a row selected with userColumns.
func scanUser(row rowScanner) (models.User, error) {
	var (
		user      models.User
		token     sql.NullString
		lastLogin sql.NullTime
		lastSeen  sql.NullTime
	)

	err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.PasswordHash,
		&token,
		&user.IsAdmin,
		&user.Email,
		&user.AvatarURL,
		&user.Bio,
		&user.OnlineStatus,
		&user.Experience,
		&user.TotalMessages,
		&user.TotalTimeOnline,
		&user.CreatedAt,
		&lastLogin,
		&lastSeen,
	)
	if err != nil {
		return models.User{}, err
	}

	user.Token = token.String
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}
	if lastSeen.Valid {
		user.LastSeen = &lastSeen.Time
	}

	return user, nil
}

// expectAffected turns a zero-row result into notFound.
func expectAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
