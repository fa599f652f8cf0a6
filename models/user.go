// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameServerX

package models

import "time"

// ExperiencePerLevel is the amount of experience a user needs to advance one level.
const ExperiencePerLevel = 100

// OnlineStatusOnline is the status value that makes a user appear in the
// online users listing. The status itself is free-form.
const OnlineStatusOnline = "online"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes, credential-related data and the social
// profile. Sensitive fields must never be exposed outside trusted boundaries;
// use [User.Profile] or [User.Summary] to build client-facing views.
type User struct {
	// UserID is the store-assigned identifier. Immutable once created.
	UserID int64 `json:"-"`

	// Username is unique case-insensitively and at least three characters long.
	Username string `json:"-"`

	// PasswordHash is the output of the configured password hasher.
	// The plaintext password is never stored.
	PasswordHash string `json:"-"`

	// Token is the current bearer token. Empty when none was issued yet.
	// A new login overwrites it, invalidating the previous value.
	Token string `json:"-"`

	// IsAdmin is set once during registration and never changed afterwards.
	IsAdmin bool `json:"-"`

	Email        string `json:"-"`
	AvatarURL    string `json:"-"`
	Bio          string `json:"-"`
	OnlineStatus string `json:"-"`

	// Experience is a non-negative counter. The level is derived from it.
	Experience    int64 `json:"-"`
	TotalMessages int64 `json:"-"`

	// TotalTimeOnline is kept for clients that display it. Nothing in the
	// backend increments it.
	TotalTimeOnline int64 `json:"-"`

	CreatedAt time.Time  `json:"-"`
	LastLogin *time.Time `json:"-"`
	LastSeen  *time.Time `json:"-"`

	// Friends holds the ids this user has added. Filled only by callers that
	// load the friend list explicitly.
	Friends []int64 `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// LevelFor computes the level that corresponds to the given experience.
func LevelFor(experience int64) int64 {
	if experience < 0 {
		experience = 0
	}
	return experience/ExperiencePerLevel + 1
}

// Level returns the level derived from the user's current experience.
func (u User) Level() int64 {
	return LevelFor(u.Experience)
}

// Profile builds the JSON view of the user. When self is false the email is
// omitted, which is how other users see the profile.
func (u User) Profile(self bool) Profile {
	p := Profile{
		ID:            u.UserID,
		Username:      u.Username,
		IsAdmin:       u.IsAdmin,
		AvatarURL:     u.AvatarURL,
		Bio:           u.Bio,
		Level:         u.Level(),
		Experience:    u.Experience,
		TotalMessages: u.TotalMessages,
		TotalTime:     u.TotalTimeOnline,
		Achievements:  []string{},
		Friends:       u.Friends,
		OnlineStatus:  u.OnlineStatus,
		CreatedAt:     u.CreatedAt,
		LastLogin:     u.LastLogin,
		LastSeen:      u.LastSeen,
	}
	if self {
		p.Email = u.Email
	}
	if p.Friends == nil {
		p.Friends = []int64{}
	}
	return p
}

// Summary builds the short author/listing view of the user.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:           u.UserID,
		Username:     u.Username,
		AvatarURL:    u.AvatarURL,
		IsAdmin:      u.IsAdmin,
		Level:        u.Level(),
		OnlineStatus: u.OnlineStatus,
	}
}

// Profile is the full client-facing representation of a user.
type Profile struct {
	ID            int64      `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email,omitempty"`
	IsAdmin       bool       `json:"isAdmin"`
	AvatarURL     string     `json:"avatarUrl"`
	Bio           string     `json:"bio"`
	Level         int64      `json:"level"`
	Experience    int64      `json:"experience"`
	TotalMessages int64      `json:"totalMessages"`
	TotalTime     int64      `json:"totalTimeOnline"`
	Achievements  []string   `json:"achievements"`
	Friends       []int64    `json:"friends"`
	OnlineStatus  string     `json:"onlineStatus"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	LastSeen      *time.Time `json:"lastSeen,omitempty"`
}

// UserSummary is the compact user view embedded into messages and listings.
type UserSummary struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	AvatarURL    string `json:"avatarUrl"`
	IsAdmin      bool   `json:"isAdmin"`
	Level        int64  `json:"level"`
	OnlineStatus string `json:"onlineStatus"`
}

// Credentials carries the username and plaintext password received from the
// client during registration and login. Never persisted.
type Credentials struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=4"`
	Email    string `json:"email,omitempty"`
}

// ProfileUpdate is a partial profile update. Only non-nil fields are applied.
// Any other field in the request payload is ignored.
type ProfileUpdate struct {
	Bio          *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	AvatarURL    *string `json:"avatarUrl,omitempty" validate:"omitempty,max=2048"`
	OnlineStatus *string `json:"onlineStatus,omitempty" validate:"omitempty,max=64"`
	Experience   *int64  `json:"experience,omitempty" validate:"omitempty,gte=0"`
}

// IsEmpty reports whether the update carries no recognised field.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Bio == nil && u.AvatarURL == nil && u.OnlineStatus == nil && u.Experience == nil
}

// Session is the result of a successful registration or login.
type Session struct {
	Token string
	User  User
}
