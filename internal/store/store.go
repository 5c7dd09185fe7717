// Package store persists the hub state as five independently keyed JSON
// blobs in a flat key-value medium.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
	"github.com/joao-fontenele/msme-business-hub/internal/inventory"
)

// Keys of the persisted collections, before the namespace prefix.
const (
	KeyInventory    = "inventory"
	KeyTransactions = "transactions"
	KeyPickups      = "pickups"
	KeyBills        = "bills"
	KeyChatHistory  = "chatHistory"
)

const DefaultPrefix = "msme:"

// ErrNotFound is returned by a KV when a key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is a flat key-value medium. SetAll must apply every entry or none, as
// far as the medium allows.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetAll(ctx context.Context, entries map[string][]byte) error
}

// State is the full set of records owned by the hub. Every collection is in
// insertion order, newest last.
type State struct {
	Inventory    []domain.InventoryItem `json:"inventory"`
	Transactions []domain.Transaction   `json:"transactions"`
	Pickups      []domain.Pickup        `json:"pickups"`
	Bills        []domain.Bill          `json:"bills"`
	ChatHistory  []domain.ChatMessage   `json:"chatHistory"`
}

// DefaultState is what a fresh install starts with: the seed inventory and
// nothing else.
func DefaultState() State {
	return State{
		Inventory:    inventory.DefaultItems(),
		Transactions: []domain.Transaction{},
		Pickups:      []domain.Pickup{},
		Bills:        []domain.Bill{},
		ChatHistory:  []domain.ChatMessage{},
	}
}

type Store struct {
	kv     KV
	prefix string
	logger *slog.Logger
}

func New(kv KV, prefix string, logger *slog.Logger) *Store {
	return &Store{kv: kv, prefix: prefix, logger: logger}
}

// Load restores every collection. A missing or corrupt blob falls back to
// that collection's default; a failing medium is returned as an error.
func (s *Store) Load(ctx context.Context) (State, error) {
	def := DefaultState()
	var (
		state State
		err   error
	)

	if state.Inventory, err = load(ctx, s, KeyInventory, def.Inventory); err != nil {
		return State{}, err
	}
	if state.Transactions, err = load(ctx, s, KeyTransactions, def.Transactions); err != nil {
		return State{}, err
	}
	if state.Pickups, err = load(ctx, s, KeyPickups, def.Pickups); err != nil {
		return State{}, err
	}
	if state.Bills, err = load(ctx, s, KeyBills, def.Bills); err != nil {
		return State{}, err
	}
	if state.ChatHistory, err = load(ctx, s, KeyChatHistory, def.ChatHistory); err != nil {
		return State{}, err
	}

	return state, nil
}

func load[T any](ctx context.Context, s *Store, key string, fallback []T) ([]T, error) {
	raw, err := s.kv.Get(ctx, s.prefix+key)
	if errors.Is(err, ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Warn("discarding unreadable collection", "key", key, "error", err)
		return fallback, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Persist writes all five collections in a single batch.
func (s *Store) Persist(ctx context.Context, state State) error {
	blobs := map[string]any{
		KeyInventory:    nonNil(state.Inventory),
		KeyTransactions: nonNil(state.Transactions),
		KeyPickups:      nonNil(state.Pickups),
		KeyBills:        nonNil(state.Bills),
		KeyChatHistory:  nonNil(state.ChatHistory),
	}

	entries := make(map[string][]byte, len(blobs))
	for key, v := range blobs {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		entries[s.prefix+key] = raw
	}

	if err := s.kv.SetAll(ctx, entries); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
