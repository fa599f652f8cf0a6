package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/internal/service"
	"github.com/GameServerX/dark-haven-website/internal/store"
	"github.com/GameServerX/dark-haven-website/internal/utils"
)

// internalErrorMessage is sent for failures that match no known sentinel.
const internalErrorMessage = "internal error"

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:   http.StatusBadRequest,
	service.ErrWrongPassword:         http.StatusUnauthorized,
	service.ErrUnauthorized:          http.StatusUnauthorized,
	service.ErrForbidden:             http.StatusForbidden,
	service.ErrVersionIsNotSpecified: http.StatusInternalServerError,

	store.ErrLoginAlreadyExists:    http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrMessageNotFound:       http.StatusNotFound,
	store.ErrObjectStorageDisabled: http.StatusServiceUnavailable,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
	store.ErrPuttingObject:        http.StatusBadGateway,
}

// statusFromError returns the status of the first known sentinel err wraps,
// together with that sentinel. Unknown errors map to 500 and a nil sentinel.
func statusFromError(err error) (int, error) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status, target
		}
	}
	return http.StatusInternalServerError, nil
}

// errorMessage builds the client-facing text. Validation failures keep their
// field description; every other error is reduced to its sentinel text so
// driver and wrapping details never leave the server.
func errorMessage(err, sentinel error) string {
	switch {
	case sentinel == nil:
		return internalErrorMessage
	case errors.Is(sentinel, service.ErrInvalidDataProvided):
		text := err.Error()
		if i := strings.Index(text, sentinel.Error()); i >= 0 {
			return text[i:]
		}
		return sentinel.Error()
	default:
		return sentinel.Error()
	}
}

// writeError logs err and answers with the mapped status and {"error": ...} body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, sentinel := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteError(w, errorMessage(err, sentinel), status)
}
