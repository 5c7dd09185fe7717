package notify

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"time"
)

type Handler struct {
	latency time.Duration
	sleep   func(time.Duration)
	logger  *slog.Logger
}

// NewHandler returns the delivery endpoint. Each send waits up to latency
// to imitate a provider round trip.
func NewHandler(latency time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		latency: latency,
		sleep:   time.Sleep,
		logger:  logger,
	}
}

type sendResponse struct {
	Status  string  `json:"status"`
	Channel Channel `json:"channel"`
}

func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var n Notification
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := n.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.latency > 0 {
		h.sleep(time.Duration(rand.Int63n(int64(h.latency))))
	}

	h.logger.Info("notification sent", "channel", n.Channel, "to", n.To, "subject", n.Subject)

	h.writeJSON(w, http.StatusOK, sendResponse{Status: "sent", Channel: n.Channel})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
