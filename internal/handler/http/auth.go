package http

import (
	"encoding/json"
	"net/http"

	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/internal/utils"
	"github.com/GameServerX/dark-haven-website/models"
)

// authAction dispatches POST /api/auth by the "action" field of the body.
// register and login are public; verify and update_profile need a token.
func (h *Handler) authAction(w http.ResponseWriter, r *http.Request) {
	var request models.AuthRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	switch request.Action {
	case models.AuthActionRegister:
		h.register(w, r, request)
	case models.AuthActionLogin:
		h.login(w, r, request)
	case models.AuthActionVerify:
		h.verify(w, r)
	case models.AuthActionUpdateProfile:
		h.updateProfile(w, r, request)
	default:
		writeError(w, r, ErrInvalidAction)
	}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request, request models.AuthRequest) {
	session, err := h.services.AuthService.Register(r.Context(), request.Credentials())
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", session.User.UserID).Msg("user registered")

	utils.WriteJSON(w, models.SessionResponse{Token: session.Token, User: session.User.Profile(true)}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, request models.AuthRequest) {
	ctx := r.Context()

	session, err := h.services.AuthService.Login(ctx, request.Credentials())
	if err != nil {
		writeError(w, r, err)
		return
	}

	// reload to include the friend list
	user, err := h.services.UserService.GetProfile(ctx, session.User.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Int64("user_id", user.UserID).Msg("user successfully logged in")

	utils.WriteJSON(w, models.SessionResponse{Token: session.Token, User: user.Profile(true)}, http.StatusOK)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	current, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	user, err := h.services.UserService.GetProfile(r.Context(), current.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UserResponse{User: user.Profile(true)}, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request, request models.AuthRequest) {
	current, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	user, err := h.services.UserService.UpdateProfile(r.Context(), current, request.ProfileUpdate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ProfileUpdatedResponse{Message: "Profile updated", User: user.Profile(true)}, http.StatusOK)
}

// decodeJSON decodes the request body into dst. Unknown fields are ignored.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("invalid JSON was passed")
		return ErrInvalidJSON
	}
	return nil
}
