package service

import "github.com/GameServerX/dark-haven-website/models"

// ownershipAuthorizer grants message actions by ownership. Admins may
// additionally delete any message but edit only their own.
type ownershipAuthorizer struct{}

func NewAuthorizer() Authorizer {
	return ownershipAuthorizer{}
}

func (ownershipAuthorizer) CanEditMessage(user models.User, message models.Message) error {
	if message.UserID != user.UserID {
		return ErrForbidden
	}
	return nil
}

func (ownershipAuthorizer) CanDeleteMessage(user models.User, message models.Message) error {
	if message.UserID != user.UserID && !user.IsAdmin {
		return ErrForbidden
	}
	return nil
}
