// Package api exposes the hub over JSON HTTP endpoints.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/joao-fontenele/msme-business-hub/internal/billing"
	"github.com/joao-fontenele/msme-business-hub/internal/hub"
	"github.com/joao-fontenele/msme-business-hub/internal/records"
	"github.com/joao-fontenele/msme-business-hub/internal/telemetry"
)

const defaultRecentLimit = 10

type Handler struct {
	hub         *hub.Hub
	business    billing.Business
	chatLimiter *ClientLimiter
	logger      *slog.Logger
}

// NewHandler returns the API handler. A nil chatLimiter disables chat rate
// limiting.
func NewHandler(h *hub.Hub, business billing.Business, chatLimiter *ClientLimiter, logger *slog.Logger) *Handler {
	return &Handler{
		hub:         h,
		business:    business,
		chatLimiter: chatLimiter,
		logger:      logger,
	}
}

// Register adds every API route to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	route := func(pattern string, fn http.HandlerFunc) {
		mux.HandleFunc(pattern, telemetry.WithHTTPRoute(fn))
	}

	route("GET /inventory", h.HandleListInventory)
	route("GET /inventory/stats", h.HandleInventoryStats)
	route("POST /inventory", h.HandleAddProduct)
	route("PUT /inventory/{id}", h.HandleUpdateProduct)
	route("DELETE /inventory/{id}", h.HandleDeleteProduct)
	route("POST /inventory/recompute", h.HandleRecomputeInventory)

	route("POST /payments/verify", h.HandleVerifyPayment)
	route("GET /payments", h.HandleListPayments)

	route("POST /pickups", h.HandleSchedulePickup)
	route("GET /pickups", h.HandleListPickups)
	route("GET /waste-types", h.HandleWasteTypes)

	route("GET /products", h.HandleListProducts)
	route("POST /bills", h.HandleGenerateBill)
	route("POST /bills/totals", h.HandlePreviewTotals)
	route("GET /bills", h.HandleListBills)
	route("GET /bills/{id}", h.HandleGetBill)
	route("GET /bills/{id}/invoice", h.HandleInvoice)

	route("POST /chat", h.chatLimiter.Limit(h.HandleSendChat))
	route("GET /chat", h.HandleChatHistory)

	route("GET /schemes", h.HandleListSchemes)
	route("GET /schemes/{id}", h.HandleGetScheme)

	route("GET /dashboard", h.HandleDashboard)
	route("GET /health", h.HandleHealth)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.hub.Dashboard())
}

// writeHubError maps hub and validation errors onto status codes.
func (h *Handler) writeHubError(w http.ResponseWriter, err error, msg string, args ...any) {
	var verr *records.ValidationError
	switch {
	case errors.As(err, &verr):
		h.writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, hub.ErrNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, hub.ErrEmptyMessage),
		errors.Is(err, billing.ErrNoSelection),
		errors.Is(err, billing.ErrInvalidPrice),
		errors.Is(err, billing.ErrTotalTooLarge),
		errors.Is(err, billing.ErrUnknownProduct):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(msg, append([]any{"error", err}, args...)...)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// limitParam reads ?limit=, defaulting to the last ten records.
func (h *Handler) limitParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultRecentLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		h.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return 0, false
	}
	return n, true
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

// flexString accepts a JSON string or number, the way form fields arrive
// from different clients.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*f = flexString(str)
		return nil
	}
	*f = flexString(s)
	return nil
}
