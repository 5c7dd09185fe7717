package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joao-fontenele/msme-business-hub/internal/billing"
	"github.com/joao-fontenele/msme-business-hub/internal/domain"
	"github.com/joao-fontenele/msme-business-hub/internal/hub"
	"github.com/joao-fontenele/msme-business-hub/internal/store"
)

func memoryOpener(t *testing.T, kv *store.MemoryKV) Opener {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return func(ctx context.Context, _ string) (*Session, error) {
		h, err := hub.New(ctx, hub.Deps{Store: store.New(kv, store.DefaultPrefix, logger), Logger: logger}, hub.DefaultConfig())
		if err != nil {
			return nil, err
		}
		return &Session{
			Hub:      h,
			Business: billing.Business{Name: "Sharma Stationers"},
			Close:    func() error { return nil },
		}, nil
	}
}

func run(t *testing.T, open Opener, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(open)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInventoryList(t *testing.T) {
	open := memoryOpener(t, store.NewMemoryKV())

	out, err := run(t, open, "inventory", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NB001")
	assert.Contains(t, out, "Calculator")

	out, err = run(t, open, "inventory", "list", "-q", "pen")
	require.NoError(t, err)
	assert.Contains(t, out, "PEN001")
	assert.NotContains(t, out, "NB001")
}

func TestInventoryRecompute(t *testing.T) {
	out, err := run(t, memoryOpener(t, store.NewMemoryKV()), "inventory", "recompute")
	require.NoError(t, err)
	assert.Equal(t, "0 item(s) reclassified\n", out)
}

func TestStats(t *testing.T) {
	out, err := run(t, memoryOpener(t, store.NewMemoryKV()), "stats")
	require.NoError(t, err)

	var got hub.Dashboard
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Zero(t, got.Bills)
	assert.Positive(t, got.Inventory.Total)
}

func TestBills(t *testing.T) {
	kv := store.NewMemoryKV()
	open := memoryOpener(t, kv)

	s, err := open(context.Background(), "")
	require.NoError(t, err)
	bill, err := s.Hub.GenerateBill(context.Background(), hub.BillRequest{
		Customer:   domain.Customer{Name: "Asha", Phone: "9876543210"},
		ProductIDs: []int{1, 2},
	})
	require.NoError(t, err)

	out, err := run(t, open, "bills", "list")
	require.NoError(t, err)
	assert.Contains(t, out, bill.ID)
	assert.Contains(t, out, "Asha")
	assert.Contains(t, out, "82.60")

	path := filepath.Join(t.TempDir(), "invoice.pdf")
	out, err = run(t, open, "bills", "invoice", bill.ID, "-o", path)
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))

	_, err = run(t, open, "bills", "invoice", "BILL_missing", "-o", path)
	assert.ErrorIs(t, err, hub.ErrNotFound)
}
