package http

import (
	"net/http"

	"github.com/GameServerX/dark-haven-website/internal/utils"
	"github.com/GameServerX/dark-haven-website/models"
)

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	var request models.UploadRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.services.UploadService.Upload(r.Context(), userFromRequest(r), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
