package hub

import (
	"context"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
	"github.com/joao-fontenele/msme-business-hub/internal/records"
)

// VerificationResult is delivered once the gateway has answered. Err is set
// when the gateway or the store failed; a failed verification is not an
// error and is reported through Transaction.Status.
type VerificationResult struct {
	Transaction domain.Transaction
	Err         error
}

// VerifyPayment validates the request and schedules the gateway check. The
// returned channel receives exactly one result after VerifyDelay, even if ctx
// is cancelled in the meantime.
func (h *Hub) VerifyPayment(ctx context.Context, in records.TransactionInput) (<-chan VerificationResult, error) {
	id, amount, err := h.factory.ParseTransaction(in)
	if err != nil {
		return nil, err
	}

	result := make(chan VerificationResult, 1)
	detached := context.WithoutCancel(ctx)

	h.scheduler.After(h.cfg.VerifyDelay, func() {
		result <- h.completeVerification(detached, id, amount)
	})

	return result, nil
}

func (h *Hub) completeVerification(ctx context.Context, id string, amount float64) VerificationResult {
	status, err := h.verifier.Verify(ctx, id, amount)
	if err != nil {
		h.logger.Error("payment verification failed", "error", err, "transaction_id", id)
		return VerificationResult{Err: err}
	}

	h.mu.Lock()
	txn := h.factory.NewTransaction(id, amount, status)
	h.state.Transactions = append(h.state.Transactions, txn)
	err = h.persistLocked(ctx)
	h.mu.Unlock()
	if err != nil {
		return VerificationResult{Transaction: txn, Err: err}
	}

	h.metrics.paymentVerified(ctx, string(status))
	h.logger.Info("payment checked", "transaction_id", id, "amount", amount, "status", status)

	eventType := domain.EventPaymentVerified
	if status == domain.TransactionStatusFailed {
		eventType = domain.EventPaymentFailed
	}
	h.publish(ctx, eventType, txn.ID, txn)

	return VerificationResult{Transaction: txn}
}

// RecentTransactions returns the last n transactions, newest first.
func (h *Hub) RecentTransactions(n int) []domain.Transaction {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Recent(h.state.Transactions, n)
}
