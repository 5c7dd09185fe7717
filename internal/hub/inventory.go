package hub

import (
	"context"
	"fmt"
	"strings"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
	"github.com/joao-fontenele/msme-business-hub/internal/inventory"
	"github.com/joao-fontenele/msme-business-hub/internal/records"
)

const (
	actionAdded   = "added"
	actionUpdated = "updated"
	actionDeleted = "deleted"
)

func (h *Hub) Inventory() []domain.InventoryItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	return clone(h.state.Inventory)
}

func (h *Hub) SearchInventory(term string) []domain.InventoryItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	return inventory.Search(h.state.Inventory, term)
}

func (h *Hub) InventoryStats() inventory.Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return inventory.Summarize(h.state.Inventory)
}

func (h *Hub) AddProduct(ctx context.Context, in records.ProductInput) (domain.InventoryItem, error) {
	h.mu.Lock()

	item, err := h.factory.NewInventoryItem(h.nextItemIDLocked(), in)
	if err != nil {
		h.mu.Unlock()
		return domain.InventoryItem{}, err
	}
	if h.skuTakenLocked(item.SKU, 0) {
		h.mu.Unlock()
		return domain.InventoryItem{}, &records.ValidationError{Field: "sku", Reason: "sku " + item.SKU + " already exists"}
	}

	h.state.Inventory = append(h.state.Inventory, item)
	inventory.RecomputeAll(h.state.Inventory)
	err = h.persistLocked(ctx)
	h.mu.Unlock()
	if err != nil {
		return item, err
	}

	h.metrics.inventoryChanged(ctx, actionAdded)
	h.logger.Info("product added", "item_id", item.ID, "sku", item.SKU, "status", item.Status)
	h.publish(ctx, domain.EventInventoryChanged, item.SKU, domain.InventoryChangedEvent{Action: actionAdded, Item: item})
	return item, nil
}

// UpdateProduct replaces every editable field of an item, keeping its id.
func (h *Hub) UpdateProduct(ctx context.Context, id int64, in records.ProductInput) (domain.InventoryItem, error) {
	h.mu.Lock()

	idx := h.itemIndexLocked(id)
	if idx < 0 {
		h.mu.Unlock()
		return domain.InventoryItem{}, fmt.Errorf("inventory item %d: %w", id, ErrNotFound)
	}

	item, err := h.factory.NewInventoryItem(id, in)
	if err != nil {
		h.mu.Unlock()
		return domain.InventoryItem{}, err
	}
	if h.skuTakenLocked(item.SKU, id) {
		h.mu.Unlock()
		return domain.InventoryItem{}, &records.ValidationError{Field: "sku", Reason: "sku " + item.SKU + " already exists"}
	}

	h.state.Inventory[idx] = item
	inventory.RecomputeAll(h.state.Inventory)
	err = h.persistLocked(ctx)
	h.mu.Unlock()
	if err != nil {
		return item, err
	}

	h.metrics.inventoryChanged(ctx, actionUpdated)
	h.logger.Info("product updated", "item_id", item.ID, "quantity", item.Quantity, "status", item.Status)
	h.publish(ctx, domain.EventInventoryChanged, item.SKU, domain.InventoryChangedEvent{Action: actionUpdated, Item: item})
	return item, nil
}

func (h *Hub) DeleteProduct(ctx context.Context, id int64) error {
	h.mu.Lock()

	idx := h.itemIndexLocked(id)
	if idx < 0 {
		h.mu.Unlock()
		return fmt.Errorf("inventory item %d: %w", id, ErrNotFound)
	}

	item := h.state.Inventory[idx]
	h.state.Inventory = append(h.state.Inventory[:idx], h.state.Inventory[idx+1:]...)
	inventory.RecomputeAll(h.state.Inventory)
	err := h.persistLocked(ctx)
	h.mu.Unlock()
	if err != nil {
		return err
	}

	h.metrics.inventoryChanged(ctx, actionDeleted)
	h.logger.Info("product deleted", "item_id", item.ID, "sku", item.SKU)
	h.publish(ctx, domain.EventInventoryChanged, item.SKU, domain.InventoryChangedEvent{Action: actionDeleted, Item: item})
	return nil
}

// RecomputeInventory re-derives every stock status and persists. It returns
// how many statuses changed.
func (h *Hub) RecomputeInventory(ctx context.Context) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	changed := inventory.RecomputeAll(h.state.Inventory)
	if err := h.persistLocked(ctx); err != nil {
		return changed, err
	}
	return changed, nil
}

func (h *Hub) nextItemIDLocked() int64 {
	var maxID int64
	for _, item := range h.state.Inventory {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	return maxID + 1
}

func (h *Hub) itemIndexLocked(id int64) int {
	for i, item := range h.state.Inventory {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (h *Hub) skuTakenLocked(sku string, exceptID int64) bool {
	for _, item := range h.state.Inventory {
		if item.ID != exceptID && strings.EqualFold(item.SKU, sku) {
			return true
		}
	}
	return false
}
