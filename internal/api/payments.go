package api

import (
	"net/http"

	"github.com/joao-fontenele/msme-business-hub/internal/records"
)

type verifyRequest struct {
	ID     string     `json:"id"`
	Amount flexString `json:"amount"`
}

// HandleVerifyPayment blocks until the delayed verification completes. If
// the client goes away first the result is still recorded.
func (h *Handler) HandleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.hub.VerifyPayment(r.Context(), records.TransactionInput{ID: req.ID, Amount: string(req.Amount)})
	if err != nil {
		h.writeHubError(w, err, "failed to verify payment")
		return
	}

	select {
	case res := <-result:
		if res.Err != nil {
			h.writeHubError(w, res.Err, "failed to record verification", "transaction_id", req.ID)
			return
		}
		h.writeJSON(w, http.StatusOK, res.Transaction)
	case <-r.Context().Done():
		h.logger.Info("client left before verification finished", "transaction_id", req.ID)
	}
}

func (h *Handler) HandleListPayments(w http.ResponseWriter, r *http.Request) {
	n, ok := h.limitParam(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.hub.RecentTransactions(n))
}
