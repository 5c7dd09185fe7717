package api

import (
	"bytes"
	"net/http"

	"github.com/joao-fontenele/msme-business-hub/internal/billing"
	"github.com/joao-fontenele/msme-business-hub/internal/domain"
	"github.com/joao-fontenele/msme-business-hub/internal/hub"
)

type billRequest struct {
	Customer   domain.Customer   `json:"customer"`
	ProductIDs []int             `json:"productIds"`
	Items      []domain.LineItem `json:"items"`
}

func (h *Handler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.hub.Products(r.URL.Query().Get("q")))
}

func (h *Handler) HandleGenerateBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if !h.decode(w, r, &req) {
		return
	}

	bill, err := h.hub.GenerateBill(r.Context(), hub.BillRequest{
		Customer:   req.Customer,
		ProductIDs: req.ProductIDs,
		Items:      req.Items,
	})
	if err != nil {
		h.writeHubError(w, err, "failed to generate bill")
		return
	}

	h.writeJSON(w, http.StatusCreated, bill)
}

// HandlePreviewTotals prices a selection without creating a bill.
func (h *Handler) HandlePreviewTotals(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if !h.decode(w, r, &req) {
		return
	}

	items, err := billing.LookupProducts(req.ProductIDs)
	if err != nil {
		h.writeHubError(w, err, "failed to look up products")
		return
	}
	items = append(items, req.Items...)

	totals, err := billing.ComputeTotals(billing.Prices(items))
	if err != nil {
		h.writeHubError(w, err, "failed to compute totals")
		return
	}

	h.writeJSON(w, http.StatusOK, totals)
}

func (h *Handler) HandleListBills(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("limit") {
		n, ok := h.limitParam(w, r)
		if !ok {
			return
		}
		h.writeJSON(w, http.StatusOK, h.hub.RecentBills(n))
		return
	}
	h.writeJSON(w, http.StatusOK, h.hub.Bills())
}

func (h *Handler) HandleGetBill(w http.ResponseWriter, r *http.Request) {
	bill, err := h.hub.Bill(r.PathValue("id"))
	if err != nil {
		h.writeHubError(w, err, "failed to get bill")
		return
	}
	h.writeJSON(w, http.StatusOK, bill)
}

func (h *Handler) HandleInvoice(w http.ResponseWriter, r *http.Request) {
	bill, err := h.hub.Bill(r.PathValue("id"))
	if err != nil {
		h.writeHubError(w, err, "failed to get bill")
		return
	}

	var buf bytes.Buffer
	if err := billing.RenderInvoice(&buf, bill, h.business); err != nil {
		h.logger.Error("failed to render invoice", "error", err, "bill_id", bill.ID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+bill.ID+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write invoice", "error", err, "bill_id", bill.ID)
	}
}
