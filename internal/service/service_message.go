package service

import (
	"context"
	"fmt"

	"github.com/GameServerX/dark-haven-website/internal/config"
	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/internal/store"
	"github.com/GameServerX/dark-haven-website/models"
)

// messageService implements the feed and message mutations. Input is
// expected to be validated by the wrapping messageValidationService.
type messageService struct {
	messageRepository store.MessageRepository
	authorizer        Authorizer

	feedDefaultLimit int
	feedMaxLimit     int

	logger *logger.Logger
}

func NewMessageService(messageRepository store.MessageRepository, authorizer Authorizer, cfg config.App, logger *logger.Logger) MessageService {
	return &messageService{
		messageRepository: messageRepository,
		authorizer:        authorizer,
		feedDefaultLimit:  cfg.FeedDefaultLimit,
		feedMaxLimit:      cfg.FeedMaxLimit,
		logger:            logger,
	}
}

// Feed returns the newest messages in chronological order. A zero limit
// selects the default page size; larger limits are capped.
func (s *messageService) Feed(ctx context.Context, request models.FeedRequest) ([]models.Message, error) {
	if request.Limit == 0 {
		request.Limit = s.feedDefaultLimit
	}
	request.Limit = min(request.Limit, s.feedMaxLimit)

	messages, err := s.messageRepository.ListMessages(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("error loading feed: %w", err)
	}
	return messages, nil
}

// Send stores the message and credits its author in one transaction.
func (s *messageService) Send(ctx context.Context, user models.User, text string) (models.Message, error) {
	message, err := s.messageRepository.CreateMessage(ctx, models.Message{UserID: user.UserID, Text: text})
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", user.UserID).Msg("sending message failed")
		return models.Message{}, fmt.Errorf("sending message failed: %w", err)
	}
	return message, nil
}

// Edit replaces the text of the user's own message and marks it edited.
// A missing message is reported before a foreign one.
func (s *messageService) Edit(ctx context.Context, user models.User, messageID int64, text string) (models.Message, error) {
	message, err := s.messageRepository.GetMessage(ctx, messageID)
	if err != nil {
		return models.Message{}, fmt.Errorf("error loading message: %w", err)
	}

	if err = s.authorizer.CanEditMessage(user, message); err != nil {
		logger.FromContext(ctx).Warn().Int64("user_id", user.UserID).Int64("message_id", messageID).Msg("edit of a foreign message denied")
		return models.Message{}, err
	}

	edited, err := s.messageRepository.UpdateMessageText(ctx, messageID, text)
	if err != nil {
		return models.Message{}, fmt.Errorf("error editing message: %w", err)
	}
	return edited, nil
}

// Delete removes a message owned by the user, or any message when the user
// is an admin. A missing message is reported before a foreign one.
func (s *messageService) Delete(ctx context.Context, user models.User, messageID int64) error {
	message, err := s.messageRepository.GetMessage(ctx, messageID)
	if err != nil {
		return fmt.Errorf("error loading message: %w", err)
	}

	if err = s.authorizer.CanDeleteMessage(user, message); err != nil {
		logger.FromContext(ctx).Warn().Int64("user_id", user.UserID).Int64("message_id", messageID).Msg("delete of a foreign message denied")
		return err
	}

	if err = s.messageRepository.DeleteMessage(ctx, messageID); err != nil {
		return fmt.Errorf("error deleting message: %w", err)
	}

	logger.FromContext(ctx).Info().
		Int64("user_id", user.UserID).
		Int64("message_id", messageID).
		Bool("moderated", message.UserID != user.UserID).
		Msg("message deleted")
	return nil
}
