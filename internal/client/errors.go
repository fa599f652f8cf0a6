package client

import "errors"

var (
	// ErrUsage is returned for an unknown command or malformed arguments.
	ErrUsage = errors.New("usage error")
)
