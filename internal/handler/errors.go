package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when the server
// configuration has no HTTP address. The application fails at startup.
var errNoHandlersAreCreated = errors.New("no handlers are created")
