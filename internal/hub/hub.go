// Package hub owns the business state. Every operation runs under a single
// lock and persists before returning, so concurrent callers see the same
// sequence of changes a single user would.
package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joao-fontenele/msme-business-hub/internal/chat"
	"github.com/joao-fontenele/msme-business-hub/internal/domain"
	"github.com/joao-fontenele/msme-business-hub/internal/inventory"
	"github.com/joao-fontenele/msme-business-hub/internal/payments"
	"github.com/joao-fontenele/msme-business-hub/internal/records"
	"github.com/joao-fontenele/msme-business-hub/internal/store"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrEmptyMessage = errors.New("message is empty")
)

// Scheduler runs fn once after d. Scheduled functions are never cancelled.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// TimerScheduler schedules on the runtime timer.
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Publisher delivers domain events to interested services.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Config struct {
	VerifyDelay  time.Duration
	ChatDelayMin time.Duration
	ChatDelayMax time.Duration
}

func DefaultConfig() Config {
	return Config{
		VerifyDelay:  1500 * time.Millisecond,
		ChatDelayMin: time.Second,
		ChatDelayMax: 3 * time.Second,
	}
}

// Deps are the collaborators of a Hub. Only Store is required.
type Deps struct {
	Store     *store.Store
	Factory   *records.Factory
	Verifier  payments.Verifier
	Responder *chat.Responder
	Scheduler Scheduler
	Publisher Publisher
	Rand      *rand.Rand
	Metrics   *Metrics
	Logger    *slog.Logger
}

type Hub struct {
	mu    sync.Mutex
	state store.State

	store     *store.Store
	factory   *records.Factory
	verifier  payments.Verifier
	responder *chat.Responder
	scheduler Scheduler
	publisher Publisher
	rng       *rand.Rand
	metrics   *Metrics
	logger    *slog.Logger
	cfg       Config
}

// New loads the persisted state, recomputes stock statuses and persists the
// result if anything changed.
func New(ctx context.Context, deps Deps, cfg Config) (*Hub, error) {
	if deps.Store == nil {
		return nil, errors.New("hub: store is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if deps.Factory == nil {
		deps.Factory = records.NewFactory(time.Now, nil)
	}
	if deps.Verifier == nil {
		deps.Verifier = payments.NewRandomVerifier(rand.New(rand.NewSource(deps.Rand.Int63())), payments.DefaultSuccessRate)
	}
	if deps.Responder == nil {
		deps.Responder = chat.NewResponder(rand.New(rand.NewSource(deps.Rand.Int63())))
	}
	if deps.Scheduler == nil {
		deps.Scheduler = TimerScheduler{}
	}
	if deps.Metrics == nil {
		m, err := NewMetrics(nil)
		if err != nil {
			return nil, err
		}
		deps.Metrics = m
	}
	if cfg.ChatDelayMax < cfg.ChatDelayMin {
		cfg.ChatDelayMax = cfg.ChatDelayMin
	}

	state, err := deps.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	h := &Hub{
		state:     state,
		store:     deps.Store,
		factory:   deps.Factory,
		verifier:  deps.Verifier,
		responder: deps.Responder,
		scheduler: deps.Scheduler,
		publisher: deps.Publisher,
		rng:       deps.Rand,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		cfg:       cfg,
	}

	if changed := inventory.RecomputeAll(h.state.Inventory); changed > 0 {
		h.logger.Info("stock statuses corrected on load", "changed", changed)
		if err := h.persistLocked(ctx); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// Snapshot returns a deep copy of the current state.
func (h *Hub) Snapshot() store.State {
	h.mu.Lock()
	defer h.mu.Unlock()

	return store.State{
		Inventory:    clone(h.state.Inventory),
		Transactions: clone(h.state.Transactions),
		Pickups:      clone(h.state.Pickups),
		Bills:        cloneBills(h.state.Bills),
		ChatHistory:  clone(h.state.ChatHistory),
	}
}

// persistLocked writes the whole state. The caller holds h.mu. The in-memory
// change is kept even when the write fails.
func (h *Hub) persistLocked(ctx context.Context) error {
	if err := h.store.Persist(ctx, h.state); err != nil {
		h.metrics.persistFailed(ctx)
		h.logger.Error("failed to persist state", "error", err)
		return err
	}
	return nil
}

func (h *Hub) publish(ctx context.Context, eventType domain.EventType, key string, payload any) {
	if h.publisher == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode event payload", "error", err, "event_type", eventType)
		return
	}

	event := domain.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   data,
	}
	if err := h.publisher.Publish(ctx, key, event); err != nil {
		h.logger.Error("failed to publish event", "error", err, "event_type", eventType, "key", key)
	}
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func cloneBills(bills []domain.Bill) []domain.Bill {
	out := make([]domain.Bill, len(bills))
	for i, b := range bills {
		b.Products = clone(b.Products)
		out[i] = b
	}
	return out
}

// Recent returns up to n items newest first without touching items. A
// non-positive n returns everything.
func Recent[T any](items []T, n int) []T {
	if n <= 0 || n > len(items) {
		n = len(items)
	}
	out := make([]T, 0, n)
	for i := len(items) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, items[i])
	}
	return out
}
