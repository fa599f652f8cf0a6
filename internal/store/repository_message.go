// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameServerX

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/models"
)

// messageRepository is the SQL implementation of [MessageRepository].
// Reads join the author row so every message carries its author summary.
type messageRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewMessageRepository constructs a [MessageRepository].
func NewMessageRepository(db *DB, logger *logger.Logger) MessageRepository {
	logger.Debug().Msg("creating message repository")
	return &messageRepository{
		DB:     db,
		logger: logger,
		now:    utcNow,
	}
}

// CreateMessage inserts the message and credits its author with one message
// and [models.ExperiencePerMessage] experience inside a single transaction.
func (m *messageRepository) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	log := logger.FromContext(ctx)

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = m.now()
	}

	insertQuery, insertArgs, err := buildInsertMessageQuery(m.builder, msg)
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.CreateMessage").Msg("failed to build insert query")
		return models.Message{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	creditQuery, creditArgs, err := buildCreditAuthorQuery(m.builder, msg.UserID)
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.CreateMessage").Msg("failed to build credit query")
		return models.Message{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = m.WithTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, insertQuery, insertArgs...).Scan(&msg.ID); err != nil {
			log.Err(err).Str("func", "*messageRepository.CreateMessage").Int64("user_id", msg.UserID).Msg("failed to insert message")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		result, err := tx.ExecContext(ctx, creditQuery, creditArgs...)
		if err != nil {
			log.Err(err).Str("func", "*messageRepository.CreateMessage").Int64("user_id", msg.UserID).Msg("failed to credit author")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return expectAffected(result, ErrNoUserWasFound)
	})
	if err != nil {
		return models.Message{}, err
	}

	log.Debug().
		Str("func", "*messageRepository.CreateMessage").
		Int64("message_id", msg.ID).
		Int64("user_id", msg.UserID).
		Msg("message saved")

	return m.GetMessage(ctx, msg.ID)
}

func (m *messageRepository) GetMessage(ctx context.Context, messageID int64) (models.Message, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetMessageQuery(m.builder, messageID)
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.GetMessage").Msg("failed to build query")
		return models.Message{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	msg, err := scanMessage(m.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Message{}, ErrMessageNotFound
		}
		log.Err(err).Str("func", "*messageRepository.GetMessage").Int64("message_id", messageID).Msg("failed to scan message")
		return models.Message{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return msg, nil
}

// ListMessages returns one feed page in chronological order.
func (m *messageRepository) ListMessages(ctx context.Context, request models.FeedRequest) ([]models.Message, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFeedQuery(m.builder, request)
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.ListMessages").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := m.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.ListMessages").Msg("failed to execute feed query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0, request.Limit)
	for rows.Next() {
		msg, scanErr := scanMessage(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*messageRepository.ListMessages").Msg("failed to scan message row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		messages = append(messages, msg)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*messageRepository.ListMessages").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	slices.Reverse(messages)
	return messages, nil
}

// UpdateMessageText replaces the text and marks the message as edited.
func (m *messageRepository) UpdateMessageText(ctx context.Context, messageID int64, text string) (models.Message, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateMessageQuery(m.builder, messageID, text)
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.UpdateMessageText").Msg("failed to build query")
		return models.Message{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := m.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.UpdateMessageText").Int64("message_id", messageID).Msg("failed to update message")
		return models.Message{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if err = expectAffected(result, ErrMessageNotFound); err != nil {
		return models.Message{}, err
	}

	return m.GetMessage(ctx, messageID)
}

func (m *messageRepository) DeleteMessage(ctx context.Context, messageID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteMessageQuery(m.builder, messageID)
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.DeleteMessage").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := m.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.DeleteMessage").Int64("message_id", messageID).Msg("failed to delete message")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrMessageNotFound)
}

// scanMessage reads a row selected with messageColumns.
func scanMessage(row rowScanner) (models.Message, error) {
	var msg models.Message

	err := row.Scan(
		&msg.ID,
		&msg.UserID,
		&msg.Text,
		&msg.CreatedAt,
		&msg.Edited,
		&msg.Author.Username,
		&msg.Author.AvatarURL,
		&msg.Author.IsAdmin,
		&msg.Author.Experience,
		&msg.Author.OnlineStatus,
	)
	if err != nil {
		return models.Message{}, err
	}

	msg.Author.UserID = msg.UserID
	return msg, nil
}
