// Package payments decides whether a submitted transaction is genuine.
package payments

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
)

// DefaultSuccessRate is the share of transactions the simulated gateway accepts.
const DefaultSuccessRate = 0.7

// Verifier checks a transaction against a payment gateway.
type Verifier interface {
	Verify(ctx context.Context, id string, amount float64) (domain.TransactionStatus, error)
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(ctx context.Context, id string, amount float64) (domain.TransactionStatus, error)

func (f VerifierFunc) Verify(ctx context.Context, id string, amount float64) (domain.TransactionStatus, error) {
	return f(ctx, id, amount)
}

// RandomVerifier stands in for a real gateway: each call is an independent
// draw that succeeds with the configured probability.
type RandomVerifier struct {
	mu          sync.Mutex
	rng         *rand.Rand
	successRate float64
}

// NewRandomVerifier returns a verifier drawing from rng. A nil rng is seeded
// from the clock.
func NewRandomVerifier(rng *rand.Rand, successRate float64) *RandomVerifier {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomVerifier{rng: rng, successRate: successRate}
}

func (v *RandomVerifier) Verify(ctx context.Context, id string, amount float64) (domain.TransactionStatus, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	v.mu.Lock()
	draw := v.rng.Float64()
	v.mu.Unlock()

	if draw < v.successRate {
		return domain.TransactionStatusVerified, nil
	}
	return domain.TransactionStatusFailed, nil
}
