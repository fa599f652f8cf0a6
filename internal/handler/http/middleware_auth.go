package http

import (
	"net/http"

	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/internal/utils"
	"github.com/GameServerX/dark-haven-website/models"
)

// Headers that may carry the bearer token, in lookup order.
const (
	customAuthHeader   = "X-Authorization"
	standardAuthHeader = "Authorization"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It reads the token from the "X-Authorization" header, falling back to
// "Authorization" when the former is absent, resolves it via
// [service.AuthService.Authenticate] and, on success, stores the user in the
// request context under [utils.UserCtxKey] before delegating to the next
// handler.
//
// A missing, empty or unknown token is answered with 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.authenticate(w, r)
		if !ok {
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), user)))
	})
}

// authenticate resolves the request's bearer token. On failure it writes the
// error response itself and returns false.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, err := h.services.AuthService.Authenticate(r.Context(), authHeaderValue(r))
	if err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("authentication failed")
		writeError(w, r, err)
		return models.User{}, false
	}

	return user, true
}

// authHeaderValue returns the raw value of the first present token header.
func authHeaderValue(r *http.Request) string {
	if values, ok := r.Header[customAuthHeader]; ok && len(values) > 0 {
		return values[0]
	}
	return r.Header.Get(standardAuthHeader)
}

// userFromRequest returns the user stored by the auth middleware.
func userFromRequest(r *http.Request) models.User {
	user, _ := utils.GetUserFromContext(r.Context())
	return user
}
