// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameServerX

package store

import "github.com/GameServerX/dark-haven-website/internal/logger"

// Storages groups every repository the services depend on.
type Storages struct {
	UserRepository    UserRepository
	MessageRepository MessageRepository
	FriendRepository  FriendRepository
	ObjectStorage     ObjectStorage
}

// NewStorages wires the SQL repositories over db. A nil objects falls back
// to the disabled object storage.
func NewStorages(db *DB, objects ObjectStorage, log *logger.Logger) *Storages {
	if objects == nil {
		objects = NewDisabledObjectStorage()
	}

	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		MessageRepository: NewMessageRepository(db, log),
		FriendRepository:  NewFriendRepository(db, log),
		ObjectStorage:     objects,
	}
}
