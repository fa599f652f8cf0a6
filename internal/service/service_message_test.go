package service

import (
	"context"
	"strings"
	"testing"

	"github.com/GameServerX/dark-haven-website/internal/config"
	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/internal/mock"
	"github.com/GameServerX/dark-haven-website/internal/store"
	"github.com/GameServerX/dark-haven-website/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	alice = models.User{UserID: 1, Username: "alice"}
	bob   = models.User{UserID: 2, Username: "bob"}
	admin = models.User{UserID: 3, Username: "GameServerX", IsAdmin: true}
)

// newTestMessageSvc returns the validating service wrapped around the core
// service, the same composition NewServices builds.
func newTestMessageSvc(t *testing.T, ctrl *gomock.Controller) (MessageService, *mock.MockMessageRepository) {
	t.Helper()
	messages := mock.NewMockMessageRepository(ctrl)
	cfg := config.App{FeedDefaultLimit: 50, FeedMaxLimit: 100}

	svc := NewMessageValidationService().Wrap(NewMessageService(messages, NewAuthorizer(), cfg, logger.Nop()))
	return svc, messages
}

// ── Feed ─────────────────────────────────────────────────────────────────────

func TestMessageService_Feed_Limits(t *testing.T) {
	tests := []struct {
		name      string
		request   models.FeedRequest
		wantLimit int
	}{
		{name: "default", request: models.FeedRequest{}, wantLimit: 50},
		{name: "explicit", request: models.FeedRequest{Limit: 10}, wantLimit: 10},
		{name: "capped", request: models.FeedRequest{Limit: 500}, wantLimit: 100},
		{name: "cursor kept", request: models.FeedRequest{Limit: 5, Before: 40}, wantLimit: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, messages := newTestMessageSvc(t, ctrl)
			ctx := context.Background()

			messages.EXPECT().ListMessages(ctx, models.FeedRequest{Limit: tt.wantLimit, Before: tt.request.Before}).
				Return([]models.Message{{ID: 1}}, nil)

			got, err := svc.Feed(ctx, tt.request)
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
}

func TestMessageService_Feed_InvalidRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestMessageSvc(t, ctrl)

	_, err := svc.Feed(context.Background(), models.FeedRequest{Limit: -1})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Feed(context.Background(), models.FeedRequest{Before: -1})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── Send ─────────────────────────────────────────────────────────────────────

func TestMessageService_Send_TrimsText(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, messages := newTestMessageSvc(t, ctrl)
	ctx := context.Background()

	messages.EXPECT().CreateMessage(ctx, models.Message{UserID: 1, Text: "hello"}).
		Return(models.Message{ID: 10, UserID: 1, Text: "hello", Author: alice}, nil)

	msg, err := svc.Send(ctx, alice, "  hello \n")
	require.NoError(t, err)
	assert.Equal(t, int64(10), msg.ID)
	assert.Equal(t, "alice", msg.View().User.Username)
}

func TestMessageService_Send_Length(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "empty", text: "", wantErr: true},
		{name: "whitespace only", text: " \t\n ", wantErr: true},
		{name: "exactly max", text: strings.Repeat("ж", models.MaxMessageLength)},
		{name: "one over max", text: strings.Repeat("ж", models.MaxMessageLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, messages := newTestMessageSvc(t, ctrl)
			ctx := context.Background()

			if !tt.wantErr {
				messages.EXPECT().CreateMessage(ctx, gomock.Any()).Return(models.Message{ID: 1}, nil)
			}

			_, err := svc.Send(ctx, alice, tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDataProvided)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMessageService_Send_UnknownAuthor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, messages := newTestMessageSvc(t, ctrl)
	ctx := context.Background()

	messages.EXPECT().CreateMessage(ctx, gomock.Any()).Return(models.Message{}, store.ErrNoUserWasFound)

	_, err := svc.Send(ctx, models.User{UserID: 42}, "hi")
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

// ── Edit ─────────────────────────────────────────────────────────────────────

func TestMessageService_Edit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, messages := newTestMessageSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		messages.EXPECT().GetMessage(ctx, int64(10)).Return(models.Message{ID: 10, UserID: alice.UserID, Text: "helo"}, nil),
		messages.EXPECT().UpdateMessageText(ctx, int64(10), "hello").
			Return(models.Message{ID: 10, UserID: alice.UserID, Text: "hello", Edited: true}, nil),
	)

	msg, err := svc.Edit(ctx, alice, 10, " hello ")
	require.NoError(t, err)
	assert.True(t, msg.Edited)
	assert.Equal(t, "hello", msg.Text)
}

func TestMessageService_Edit_Denied(t *testing.T) {
	for _, user := range []models.User{bob, admin} {
		t.Run(user.Username, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, messages := newTestMessageSvc(t, ctrl)
			ctx := context.Background()

			messages.EXPECT().GetMessage(ctx, int64(10)).Return(models.Message{ID: 10, UserID: alice.UserID}, nil)

			_, err := svc.Edit(ctx, user, 10, "mine now")
			assert.ErrorIs(t, err, ErrForbidden)
		})
	}
}

func TestMessageService_Edit_InvalidInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestMessageSvc(t, ctrl)

	_, err := svc.Edit(context.Background(), alice, 0, "text")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Edit(context.Background(), alice, 10, "   ")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestMessageService_Delete(t *testing.T) {
	owned := models.Message{ID: 10, UserID: alice.UserID}

	tests := []struct {
		name    string
		user    models.User
		found   error
		wantErr error
	}{
		{name: "owner", user: alice},
		{name: "admin", user: admin},
		{name: "non owner", user: bob, wantErr: ErrForbidden},
		{name: "missing before forbidden", user: bob, found: store.ErrMessageNotFound, wantErr: store.ErrMessageNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, messages := newTestMessageSvc(t, ctrl)
			ctx := context.Background()

			if tt.found != nil {
				messages.EXPECT().GetMessage(ctx, int64(10)).Return(models.Message{}, tt.found)
			} else {
				messages.EXPECT().GetMessage(ctx, int64(10)).Return(owned, nil)
			}
			if tt.wantErr == nil {
				messages.EXPECT().DeleteMessage(ctx, int64(10)).Return(nil)
			}

			err := svc.Delete(ctx, tt.user, 10)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMessageService_Delete_MissingID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestMessageSvc(t, ctrl)

	err := svc.Delete(context.Background(), alice, 0)
	require.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.Contains(t, err.Error(), "message id required")
}

// ── Authorizer ───────────────────────────────────────────────────────────────

func TestAuthorizer(t *testing.T) {
	authorizer := NewAuthorizer()
	msg := models.Message{ID: 10, UserID: alice.UserID}

	assert.NoError(t, authorizer.CanEditMessage(alice, msg))
	assert.ErrorIs(t, authorizer.CanEditMessage(bob, msg), ErrForbidden)
	assert.ErrorIs(t, authorizer.CanEditMessage(admin, msg), ErrForbidden)

	assert.NoError(t, authorizer.CanDeleteMessage(alice, msg))
	assert.NoError(t, authorizer.CanDeleteMessage(admin, msg))
	assert.ErrorIs(t, authorizer.CanDeleteMessage(bob, msg), ErrForbidden)
}
