package service

import (
	"context"
	"testing"

	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/internal/mock"
	"github.com/GameServerX/dark-haven-website/internal/store"
	"github.com/GameServerX/dark-haven-website/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestUserSvc(t *testing.T, ctrl *gomock.Controller) (UserService, *mock.MockUserRepository, *mock.MockFriendRepository) {
	t.Helper()
	users := mock.NewMockUserRepository(ctrl)
	friends := mock.NewMockFriendRepository(ctrl)

	return NewUserService(users, friends, logger.Nop()), users, friends
}

func ptr[T any](v T) *T { return &v }

// ── GetProfile ───────────────────────────────────────────────────────────────

func TestUserService_GetProfile_WithFriends(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, friends := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, int64(7)).Return(models.User{UserID: 7, Username: "alice", Experience: 250}, nil)
	friends.EXPECT().ListFriends(ctx, int64(7)).Return([]int64{2, 9}, nil)

	user, err := svc.GetProfile(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 9}, user.Friends)
	assert.Equal(t, int64(3), user.Level())
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, int64(404)).Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.GetProfile(ctx, 404)
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestUserService_GetProfile_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestUserSvc(t, ctrl)

	_, err := svc.GetProfile(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── Search / Online ──────────────────────────────────────────────────────────

func TestUserService_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestUserSvc(t, ctrl)
	ctx := context.Background()
	found := []models.User{{UserID: 1, Username: "alice"}, {UserID: 3, Username: "malice"}}

	users.EXPECT().SearchUsers(ctx, "lic", SearchLimit).Return(found, nil)

	got, err := svc.Search(ctx, "  lic ")
	require.NoError(t, err)
	assert.Equal(t, found, got)
}

func TestUserService_Search_BlankQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestUserSvc(t, ctrl)

	got, err := svc.Search(context.Background(), " ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestUserService_Online(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	users.EXPECT().ListOnlineUsers(ctx, OnlineLimit).Return(nil, store.ErrExecutingQuery)

	_, err := svc.Online(ctx)
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}

// ── UpdateProfile ────────────────────────────────────────────────────────────

func TestUserService_UpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, friends := newTestUserSvc(t, ctrl)
	ctx := context.Background()
	alice := models.User{UserID: 7, Username: "alice"}
	update := models.ProfileUpdate{Bio: ptr("hello"), Experience: ptr(int64(250))}

	users.EXPECT().UpdateProfile(ctx, int64(7), update).
		Return(models.User{UserID: 7, Username: "alice", Bio: "hello", Experience: 250}, nil)
	friends.EXPECT().ListFriends(ctx, int64(7)).Return([]int64{}, nil)

	updated, err := svc.UpdateProfile(ctx, alice, update)
	require.NoError(t, err)

	assert.Equal(t, "hello", updated.Bio)
	assert.Equal(t, int64(3), updated.Level())
}

func TestUserService_UpdateProfile_ExperienceResetsLevel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, friends := newTestUserSvc(t, ctrl)
	ctx := context.Background()
	update := models.ProfileUpdate{Experience: ptr(int64(0))}

	users.EXPECT().UpdateProfile(ctx, int64(7), update).Return(models.User{UserID: 7, Experience: 0}, nil)
	friends.EXPECT().ListFriends(ctx, int64(7)).Return([]int64{}, nil)

	updated, err := svc.UpdateProfile(ctx, models.User{UserID: 7, Experience: 990}, update)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Level())
}

func TestUserService_UpdateProfile_NegativeExperience(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestUserSvc(t, ctrl)

	_, err := svc.UpdateProfile(context.Background(), models.User{UserID: 7}, models.ProfileUpdate{Experience: ptr(int64(-5))})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.Contains(t, err.Error(), "experience must be greater than or equal to 0")
}

func TestUserService_UpdateProfile_EmptyUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, friends := newTestUserSvc(t, ctrl)
	ctx := context.Background()
	current := models.User{UserID: 7, Username: "alice", Bio: "unchanged"}

	users.EXPECT().UpdateProfile(ctx, int64(7), models.ProfileUpdate{}).Return(current, nil)
	friends.EXPECT().ListFriends(ctx, int64(7)).Return([]int64{3}, nil)

	got, err := svc.UpdateProfile(ctx, current, models.ProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "unchanged", got.Bio)
	assert.Equal(t, []int64{3}, got.Friends)
}

// ── Friends ──────────────────────────────────────────────────────────────────

func TestUserService_AddFriend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, friends := newTestUserSvc(t, ctrl)
	ctx := context.Background()
	alice := models.User{UserID: 7}

	friends.EXPECT().AddFriend(ctx, int64(7), int64(12)).Return([]int64{12}, nil).Times(2)

	first, err := svc.AddFriend(ctx, alice, 12)
	require.NoError(t, err)
	second, err := svc.AddFriend(ctx, alice, 12)
	require.NoError(t, err)

	assert.Equal(t, []int64{12}, first)
	assert.Equal(t, first, second)
}

func TestUserService_RemoveFriend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, friends := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	friends.EXPECT().RemoveFriend(ctx, int64(7), int64(99)).Return([]int64{12}, nil)

	got, err := svc.RemoveFriend(ctx, models.User{UserID: 7}, 99)
	require.NoError(t, err)
	assert.Equal(t, []int64{12}, got)
}

func TestUserService_FriendActions_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.AddFriend(ctx, models.User{UserID: 7}, 0)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RemoveFriend(ctx, models.User{UserID: 7}, -3)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestUserService_AddFriend_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, friends := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	friends.EXPECT().AddFriend(ctx, int64(7), int64(12)).Return(nil, store.ErrExecutingStatement)

	_, err := svc.AddFriend(ctx, models.User{UserID: 7}, 12)
	assert.ErrorIs(t, err, store.ErrExecutingStatement)
}
