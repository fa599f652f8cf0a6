package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/internal/store"
	"github.com/GameServerX/dark-haven-website/internal/validators"
	"github.com/GameServerX/dark-haven-website/models"
)

const (
	// SearchLimit caps the number of users returned by a username search.
	SearchLimit = 20
	// OnlineLimit caps the online users listing.
	OnlineLimit = 50
)

type userService struct {
	userRepository   store.UserRepository
	friendRepository store.FriendRepository
	validator        validators.Validator

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, friendRepository store.FriendRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository:   userRepository,
		friendRepository: friendRepository,
		validator:        validators.NewStructValidator(),
		logger:           logger,
	}
}

// GetProfile loads the user together with the ids on their friend list.
// An unknown id yields store.ErrNoUserWasFound.
func (s *userService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	if userID <= 0 {
		return models.User{}, fmt.Errorf("%w: id must be a positive integer", ErrInvalidDataProvided)
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("error loading user: %w", err)
	}

	return s.withFriends(ctx, user)
}

// Search returns at most SearchLimit users whose name contains query,
// ignoring case. A blank query matches nobody.
func (s *userService) Search(ctx context.Context, query string) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.User{}, nil
	}

	users, err := s.userRepository.SearchUsers(ctx, query, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("error searching users: %w", err)
	}
	return users, nil
}

func (s *userService) Online(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.ListOnlineUsers(ctx, OnlineLimit)
	if err != nil {
		return nil, fmt.Errorf("error listing online users: %w", err)
	}
	return users, nil
}

// UpdateProfile applies the allow-listed fields of update to the user's own
// row. An update without any recognised field returns the current profile.
func (s *userService) UpdateProfile(ctx context.Context, user models.User, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, update); err != nil {
		return models.User{}, invalidData(err)
	}

	updated, err := s.userRepository.UpdateProfile(ctx, user.UserID, update)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	return s.withFriends(ctx, updated)
}

// AddFriend puts friendID on the user's list. Adding an id twice keeps one
// entry. The id is not checked against existing users.
func (s *userService) AddFriend(ctx context.Context, user models.User, friendID int64) ([]int64, error) {
	if err := s.validateFriendAction(ctx, models.FriendActionAdd, friendID); err != nil {
		return nil, err
	}

	friends, err := s.friendRepository.AddFriend(ctx, user.UserID, friendID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", user.UserID).Int64("friend_id", friendID).Msg("adding friend failed")
		return nil, fmt.Errorf("adding friend failed: %w", err)
	}
	return friends, nil
}

// RemoveFriend drops friendID from the user's list; absent ids are a no-op.
func (s *userService) RemoveFriend(ctx context.Context, user models.User, friendID int64) ([]int64, error) {
	if err := s.validateFriendAction(ctx, models.FriendActionRemove, friendID); err != nil {
		return nil, err
	}

	friends, err := s.friendRepository.RemoveFriend(ctx, user.UserID, friendID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", user.UserID).Int64("friend_id", friendID).Msg("removing friend failed")
		return nil, fmt.Errorf("removing friend failed: %w", err)
	}
	return friends, nil
}

func (s *userService) validateFriendAction(ctx context.Context, action string, friendID int64) error {
	if err := s.validator.Validate(ctx, models.FriendRequest{Action: action, FriendID: friendID}); err != nil {
		return invalidData(err)
	}
	return nil
}

func (s *userService) withFriends(ctx context.Context, user models.User) (models.User, error) {
	friends, err := s.friendRepository.ListFriends(ctx, user.UserID)
	if err != nil {
		return models.User{}, fmt.Errorf("error loading friends: %w", err)
	}
	user.Friends = friends
	return user, nil
}
