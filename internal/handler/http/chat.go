package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/GameServerX/dark-haven-website/internal/service"
	"github.com/GameServerX/dark-haven-website/internal/utils"
	"github.com/GameServerX/dark-haven-website/models"
)

// feed serves GET /api/chat?limit=&before=.
func (h *Handler) feed(w http.ResponseWriter, r *http.Request) {
	request, err := feedRequestFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	messages, err := h.services.MessageService.Feed(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	views := make([]models.MessageView, 0, len(messages))
	for _, message := range messages {
		views = append(views, message.View())
	}

	utils.WriteJSON(w, models.FeedResponse{Messages: views}, http.StatusOK)
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	var input models.MessageInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	message, err := h.services.MessageService.Send(r.Context(), userFromRequest(r), input.Message)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: message.View()}, http.StatusOK)
}

func (h *Handler) editMessage(w http.ResponseWriter, r *http.Request) {
	messageID, err := messageIDFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input models.MessageInput
	if err = decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	message, err := h.services.MessageService.Edit(r.Context(), userFromRequest(r), messageID, input.Message)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: message.View()}, http.StatusOK)
}

func (h *Handler) deleteMessage(w http.ResponseWriter, r *http.Request) {
	messageID, err := messageIDFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.MessageService.Delete(r.Context(), userFromRequest(r), messageID); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Message: "Message deleted"}, http.StatusOK)
}

// feedRequestFromQuery parses limit and before. An absent limit stays zero,
// which selects the default page size.
func feedRequestFromQuery(r *http.Request) (models.FeedRequest, error) {
	query := r.URL.Query()
	var request models.FeedRequest

	if query.Has("limit") {
		limit, err := strconv.Atoi(query.Get("limit"))
		if err != nil || limit <= 0 {
			return models.FeedRequest{}, fmt.Errorf("%w: limit must be a positive integer", service.ErrInvalidDataProvided)
		}
		request.Limit = limit
	}

	if query.Has("before") {
		before, err := strconv.ParseInt(query.Get("before"), 10, 64)
		if err != nil || before <= 0 {
			return models.FeedRequest{}, fmt.Errorf("%w: before must be a positive integer", service.ErrInvalidDataProvided)
		}
		request.Before = before
	}

	return request, nil
}

func messageIDFromQuery(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		return 0, ErrMessageIDRequired
	}

	messageID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || messageID <= 0 {
		return 0, fmt.Errorf("%w: message id must be a positive integer", service.ErrInvalidDataProvided)
	}
	return messageID, nil
}
