package http

import (
	"net/http"
	"runtime/debug"

	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/internal/utils"
)

// withRecover turns a panic in a downstream handler into a logged 500 with
// the usual JSON error body. http.ErrAbortHandler is re-panicked.
func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			logger.FromRequest(r).Error().
				Interface("panic", rvr).
				Bytes("stack", debug.Stack()).
				Msg("handler panicked")

			utils.WriteError(w, internalErrorMessage, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
