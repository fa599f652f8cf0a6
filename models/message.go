// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameServerX

package models

import "time"

const (
	// MaxMessageLength is the maximum message length in characters after trimming.
	MaxMessageLength = 1000

	// ExperiencePerMessage is credited to the author of every sent message.
	ExperiencePerMessage = 10
)

// Message is a single chat message together with its author.
type Message struct {
	ID        int64
	UserID    int64
	Text      string
	CreatedAt time.Time
	Edited    bool

	// Author is populated by feed queries and after sending.
	Author User
}

// TableName returns the name of the database table
// associated with the Message model.
func (m Message) TableName() string {
	return "messages"
}

// View builds the client-facing representation of the message.
func (m Message) View() MessageView {
	return MessageView{
		ID:        m.ID,
		Message:   m.Text,
		Timestamp: m.CreatedAt,
		Edited:    m.Edited,
		User:      m.Author.Summary(),
	}
}

// MessageView is the JSON shape of a message.
type MessageView struct {
	ID        int64       `json:"id"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	Edited    bool        `json:"edited"`
	User      UserSummary `json:"user"`
}

// MessageInput is the body of the send and edit requests.
type MessageInput struct {
	Message string `json:"message" validate:"required,max=1000"`
}

// FeedRequest selects a page of the feed: the newest Limit messages strictly
// older than Before (when Before is non-zero).
type FeedRequest struct {
	Limit  int   `json:"limit" validate:"gt=0"`
	Before int64 `json:"before" validate:"gte=0"`
}
