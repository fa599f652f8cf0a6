package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/GameServerX/dark-haven-website/internal/service"
	"github.com/GameServerX/dark-haven-website/internal/utils"
	"github.com/GameServerX/dark-haven-website/models"
)

// users serves GET /api/users: a public profile for ?id=, a username search
// for ?search=, and the online users otherwise.
func (h *Handler) users(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	switch {
	case query.Has("id"):
		h.userProfile(w, r, query.Get("id"))
	case query.Has("search"):
		users, err := h.services.UserService.Search(r.Context(), query.Get("search"))
		writeUsers(w, r, users, err)
	default:
		users, err := h.services.UserService.Online(r.Context())
		writeUsers(w, r, users, err)
	}
}

func (h *Handler) userProfile(w http.ResponseWriter, r *http.Request, rawID string) {
	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: id must be a positive integer", service.ErrInvalidDataProvided))
		return
	}

	user, err := h.services.UserService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UserResponse{User: user.Profile(false)}, http.StatusOK)
}

// friendAction serves POST /api/users with {action: add|remove, friendId}.
func (h *Handler) friendAction(w http.ResponseWriter, r *http.Request) {
	var request models.FriendRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	var (
		friends []int64
		err     error
	)
	switch request.Action {
	case models.FriendActionAdd:
		friends, err = h.services.UserService.AddFriend(r.Context(), userFromRequest(r), request.FriendID)
	case models.FriendActionRemove:
		friends, err = h.services.UserService.RemoveFriend(r.Context(), userFromRequest(r), request.FriendID)
	default:
		err = ErrInvalidAction
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	if friends == nil {
		friends = []int64{}
	}
	utils.WriteJSON(w, models.FriendsResponse{Friends: friends}, http.StatusOK)
}

func writeUsers(w http.ResponseWriter, r *http.Request, users []models.User, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, user.Summary())
	}

	utils.WriteJSON(w, models.UsersResponse{Users: summaries}, http.StatusOK)
}
