// Package validators checks request models before they reach the store.
//
// Rules live in `validate` struct tags on the types in the models package
// (credentials, profile updates, message input, friend and upload requests).
// Failures wrap [ErrValidationFailed] with a short field message that the
// service layer forwards to the client as a 400 response.
package validators

import "context"

// Validator validates a request model. The optional field names limit the
// check to those struct fields.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
