package api

import (
	"net/http"
	"strconv"

	"github.com/joao-fontenele/msme-business-hub/internal/records"
)

type productRequest struct {
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

func (p productRequest) input() records.ProductInput {
	return records.ProductInput{Name: p.Name, SKU: p.SKU, Quantity: p.Quantity, Price: p.Price}
}

func (h *Handler) HandleListInventory(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.hub.SearchInventory(r.URL.Query().Get("q")))
}

func (h *Handler) HandleInventoryStats(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.hub.InventoryStats())
}

func (h *Handler) HandleAddProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !h.decode(w, r, &req) {
		return
	}

	item, err := h.hub.AddProduct(r.Context(), req.input())
	if err != nil {
		h.writeHubError(w, err, "failed to add product")
		return
	}

	h.writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	var req productRequest
	if !h.decode(w, r, &req) {
		return
	}

	item, err := h.hub.UpdateProduct(r.Context(), id, req.input())
	if err != nil {
		h.writeHubError(w, err, "failed to update product", "item_id", id)
		return
	}

	h.writeJSON(w, http.StatusOK, item)
}

func (h *Handler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	if err := h.hub.DeleteProduct(r.Context(), id); err != nil {
		h.writeHubError(w, err, "failed to delete product", "item_id", id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleRecomputeInventory(w http.ResponseWriter, r *http.Request) {
	changed, err := h.hub.RecomputeInventory(r.Context())
	if err != nil {
		h.writeHubError(w, err, "failed to recompute inventory")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]int{"changed": changed})
}

func (h *Handler) itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid item id")
		return 0, false
	}
	return id, true
}
