// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameServerX

package models

// Actions accepted by the auth endpoint.
const (
	AuthActionRegister      = "register"
	AuthActionLogin         = "login"
	AuthActionVerify        = "verify"
	AuthActionUpdateProfile = "update_profile"
)

// Actions accepted by the friend endpoint.
const (
	FriendActionAdd    = "add"
	FriendActionRemove = "remove"
)

// AuthRequest is the body of the auth endpoint. Fields that do not belong to
// the selected action are ignored.
type AuthRequest struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`

	// ProfileUpdate fields sit at the top level of the body and are read
	// only by the update_profile action.
	ProfileUpdate
}

// Credentials returns the registration/login part of the request.
func (r AuthRequest) Credentials() Credentials {
	return Credentials{Username: r.Username, Password: r.Password, Email: r.Email}
}

// FriendRequest is the body of the friend endpoint.
type FriendRequest struct {
	Action   string `json:"action" validate:"required,oneof=add remove"`
	FriendID int64  `json:"friendId" validate:"required,gt=0"`
}

// UploadRequest is the body of the upload endpoint. File is base64 encoded and
// may carry a data URL prefix.
type UploadRequest struct {
	File     string `json:"file" validate:"required"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

// UploadResult describes a stored object.
type UploadResult struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

// SessionResponse is returned by register and login.
type SessionResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// UserResponse wraps a single profile.
type UserResponse struct {
	User Profile `json:"user"`
}

// ProfileUpdatedResponse is returned by update_profile.
type ProfileUpdatedResponse struct {
	Message string  `json:"message"`
	User    Profile `json:"user"`
}

// UsersResponse wraps a user listing.
type UsersResponse struct {
	Users []UserSummary `json:"users"`
}

// FeedResponse wraps a page of messages in chronological order.
type FeedResponse struct {
	Messages []MessageView `json:"messages"`
}

// MessageResponse wraps a single message.
type MessageResponse struct {
	Message MessageView `json:"message"`
}

// FriendsResponse carries the resulting friend list.
type FriendsResponse struct {
	Friends []int64 `json:"friends"`
}

// StatusResponse carries a human-readable confirmation.
type StatusResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
