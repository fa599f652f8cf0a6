package server

import "errors"

// errNoServersAreCreated is returned when neither an HTTP address nor an HTTP
// handler is available, so there is nothing to listen with.
var errNoServersAreCreated = errors.New("no servers are created: http address and handler are required")
