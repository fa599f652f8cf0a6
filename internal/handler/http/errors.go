package http

import (
	"fmt"

	"github.com/GameServerX/dark-haven-website/internal/service"
)

// Request errors produced by the transport layer itself. All of them wrap
// [service.ErrInvalidDataProvided] and are answered with 400.
var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = fmt.Errorf("%w: invalid JSON was passed", service.ErrInvalidDataProvided)

	// ErrInvalidAction is returned for an unknown "action" value.
	ErrInvalidAction = fmt.Errorf("%w: invalid action", service.ErrInvalidDataProvided)

	// ErrMessageIDRequired is returned when the "id" query parameter is absent.
	ErrMessageIDRequired = fmt.Errorf("%w: message id required", service.ErrInvalidDataProvided)
)

// methodNotAllowedMessage is the body text of every 405 response.
const methodNotAllowedMessage = "Method not allowed"
