package api

import (
	"net/http"
	"strconv"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
)

func (h *Handler) HandleListSchemes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.writeJSON(w, http.StatusOK, h.hub.Schemes(domain.SchemeType(q.Get("type")), q.Get("q")))
}

func (h *Handler) HandleGetScheme(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid scheme id")
		return
	}

	scheme, err := h.hub.Scheme(id)
	if err != nil {
		h.writeHubError(w, err, "failed to get scheme")
		return
	}
	h.writeJSON(w, http.StatusOK, scheme)
}
