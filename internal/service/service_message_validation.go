package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/GameServerX/dark-haven-website/internal/validators"
	"github.com/GameServerX/dark-haven-website/models"
)

// MessageValidationService trims and validates message input before handing
// it to the wrapped MessageService.
type MessageValidationService struct {
	inner     MessageService
	validator validators.Validator
}

func NewMessageValidationService() MessageServiceWrapper {
	return &MessageValidationService{
		validator: validators.NewStructValidator(),
	}
}

func (v *MessageValidationService) Feed(ctx context.Context, request models.FeedRequest) ([]models.Message, error) {
	// a zero limit asks for the default page size
	var fields []string
	if request.Limit == 0 {
		fields = []string{"Before"}
	}
	if err := v.validator.Validate(ctx, request, fields...); err != nil {
		return nil, invalidData(err)
	}

	return v.inner.Feed(ctx, request)
}

func (v *MessageValidationService) Send(ctx context.Context, user models.User, text string) (models.Message, error) {
	text, err := v.validateText(ctx, text)
	if err != nil {
		return models.Message{}, err
	}

	return v.inner.Send(ctx, user, text)
}

func (v *MessageValidationService) Edit(ctx context.Context, user models.User, messageID int64, text string) (models.Message, error) {
	if err := validateMessageID(messageID); err != nil {
		return models.Message{}, err
	}

	text, err := v.validateText(ctx, text)
	if err != nil {
		return models.Message{}, err
	}

	return v.inner.Edit(ctx, user, messageID, text)
}

func (v *MessageValidationService) Delete(ctx context.Context, user models.User, messageID int64) error {
	if err := validateMessageID(messageID); err != nil {
		return err
	}

	return v.inner.Delete(ctx, user, messageID)
}

func (v *MessageValidationService) Wrap(wrapped MessageService) MessageService {
	v.inner = wrapped
	return v
}

// validateText returns the trimmed text when it is non-empty and at most
// models.MaxMessageLength characters long.
func (v *MessageValidationService) validateText(ctx context.Context, text string) (string, error) {
	input := models.MessageInput{Message: strings.TrimSpace(text)}
	if err := v.validator.Validate(ctx, input); err != nil {
		return "", invalidData(err)
	}
	return input.Message, nil
}

func validateMessageID(messageID int64) error {
	if messageID <= 0 {
		return fmt.Errorf("%w: message id required", ErrInvalidDataProvided)
	}
	return nil
}
