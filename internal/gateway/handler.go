package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const apiPrefix = "/api"

// copiedResponseHeaders are passed back to the client from the hub.
var copiedResponseHeaders = []string{"Content-Type", "Content-Disposition", "Retry-After"}

type Handler struct {
	hubProxy *ServiceProxy
	logger   *slog.Logger
}

func NewHandler(hubProxy *ServiceProxy, logger *slog.Logger) *Handler {
	return &Handler{
		hubProxy: hubProxy,
		logger:   logger,
	}
}

// HandleAPI forwards /api/... to the hub with the prefix removed.
func (h *Handler) HandleAPI(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, apiPrefix)
	if path == "" {
		path = "/"
	}
	h.proxyRequest(w, r, h.hubProxy, path)
}

func (h *Handler) proxyRequest(w http.ResponseWriter, r *http.Request, proxy *ServiceProxy, path string) {
	resp, err := proxy.ForwardRequest(r.Context(), r, path)
	if err != nil {
		h.logger.Error("failed to forward request", "error", err, "path", path)
		h.writeError(w, http.StatusBadGateway, "service unavailable")
		return
	}
	defer func() { _ = resp.Body.Close() }()

	for _, name := range copiedResponseHeaders {
		if v := resp.Header.Get(name); v != "" {
			w.Header().Set(name, v)
		}
	}

	w.WriteHeader(resp.StatusCode)

	h.logger.Info("request proxied", "method", r.Method, "path", path, "status", resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.Error("failed to copy response body", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		h.logger.Error("failed to encode error response", "error", err)
	}
}
