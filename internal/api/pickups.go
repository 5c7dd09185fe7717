package api

import (
	"net/http"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
	"github.com/joao-fontenele/msme-business-hub/internal/records"
)

type pickupRequest struct {
	WasteType    string     `json:"wasteType"`
	Quantity     flexString `json:"quantity"`
	DateTime     string     `json:"dateTime"`
	Instructions string     `json:"instructions"`
}

type wasteTypeResponse struct {
	Value domain.WasteType `json:"value"`
	Label string           `json:"label"`
}

func (h *Handler) HandleSchedulePickup(w http.ResponseWriter, r *http.Request) {
	var req pickupRequest
	if !h.decode(w, r, &req) {
		return
	}

	pickup, err := h.hub.SchedulePickup(r.Context(), records.PickupInput{
		WasteType:    req.WasteType,
		Quantity:     string(req.Quantity),
		DateTime:     req.DateTime,
		Instructions: req.Instructions,
	})
	if err != nil {
		h.writeHubError(w, err, "failed to schedule pickup")
		return
	}

	h.writeJSON(w, http.StatusCreated, pickup)
}

func (h *Handler) HandleListPickups(w http.ResponseWriter, r *http.Request) {
	n, ok := h.limitParam(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.hub.RecentPickups(n))
}

func (h *Handler) HandleWasteTypes(w http.ResponseWriter, _ *http.Request) {
	types := make([]wasteTypeResponse, 0, len(domain.WasteTypes))
	for _, t := range domain.WasteTypes {
		types = append(types, wasteTypeResponse{Value: t, Label: t.Label()})
	}
	h.writeJSON(w, http.StatusOK, types)
}
