package api

import (
	"net/http"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Message domain.ChatMessage `json:"message"`
	Reply   domain.ChatMessage `json:"reply"`
}

// HandleSendChat stores the message and waits for the bot reply.
func (h *Handler) HandleSendChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !h.decode(w, r, &req) {
		return
	}

	msg, reply, err := h.hub.SendChat(r.Context(), req.Message)
	if err != nil {
		h.writeHubError(w, err, "failed to send chat message")
		return
	}

	select {
	case bot := <-reply:
		h.writeJSON(w, http.StatusOK, chatResponse{Message: msg, Reply: bot})
	case <-r.Context().Done():
	}
}

func (h *Handler) HandleChatHistory(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.hub.ChatHistory())
}
