package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
	"github.com/joao-fontenele/msme-business-hub/internal/inventory"
	"github.com/joao-fontenele/msme-business-hub/internal/notify"
)

// InventorySource returns the current inventory.
type InventorySource interface {
	Inventory(ctx context.Context) ([]domain.InventoryItem, error)
}

// HubClient reads inventory from the hub service.
type HubClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHubClient(baseURL string, httpClient *http.Client) *HubClient {
	return &HubClient{baseURL: baseURL, httpClient: httpClient}
}

func (c *HubClient) Inventory(ctx context.Context) ([]domain.InventoryItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/inventory", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hub service returned status %d", resp.StatusCode)
	}

	var items []domain.InventoryItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	return items, nil
}

// StockSweeper alerts the owner about items that need restocking.
type StockSweeper struct {
	source   InventorySource
	notifier Notifier
	owner    Owner
	logger   *slog.Logger
}

func NewStockSweeper(source InventorySource, notifier Notifier, owner Owner, logger *slog.Logger) *StockSweeper {
	return &StockSweeper{
		source:   source,
		notifier: notifier,
		owner:    owner,
		logger:   logger,
	}
}

// Run sends one alert listing every low or out of stock item. Nothing is
// sent when stock is healthy.
func (s *StockSweeper) Run(ctx context.Context) error {
	items, err := s.source.Inventory(ctx)
	if err != nil {
		return fmt.Errorf("fetch inventory: %w", err)
	}

	restock := inventory.NeedsRestock(items)
	if len(restock) == 0 {
		s.logger.Info("stock sweep found nothing to restock", "items", len(items))
		return nil
	}

	var b strings.Builder
	b.WriteString("The following items need restocking:\n")
	for _, item := range restock {
		fmt.Fprintf(&b, "- %s (%s): %d left, %s\n", item.Name, item.SKU, item.Quantity, item.Status.Label())
	}

	if err := s.notifier.Send(ctx, notify.Notification{
		Channel: notify.ChannelEmail,
		To:      s.owner.Email,
		Subject: fmt.Sprintf("%d item(s) need restocking", len(restock)),
		Body:    b.String(),
	}); err != nil {
		return fmt.Errorf("send restock alert: %w", err)
	}

	s.logger.Info("restock alert sent", "items", len(restock))
	return nil
}

// StartSweeps runs the sweeper every interval until ctx is done.
func StartSweeps(ctx context.Context, interval time.Duration, sweeper *StockSweeper, logger *slog.Logger) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := sweeper.Run(ctx); err != nil {
				logger.Error("stock sweep failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	scheduler.Start()
	<-ctx.Done()

	return scheduler.Shutdown()
}
