package hub

import (
	"context"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
	"github.com/joao-fontenele/msme-business-hub/internal/records"
)

func (h *Hub) SchedulePickup(ctx context.Context, in records.PickupInput) (domain.Pickup, error) {
	pickup, err := h.factory.NewPickup(in)
	if err != nil {
		return domain.Pickup{}, err
	}

	h.mu.Lock()
	h.state.Pickups = append(h.state.Pickups, pickup)
	err = h.persistLocked(ctx)
	h.mu.Unlock()
	if err != nil {
		return pickup, err
	}

	h.metrics.pickupScheduled(ctx, string(pickup.WasteType), pickup.Quantity)
	h.logger.Info("pickup scheduled", "pickup_id", pickup.ID, "waste_type", pickup.WasteType, "quantity_kg", pickup.Quantity)
	h.publish(ctx, domain.EventPickupScheduled, pickup.ID, pickup)
	return pickup, nil
}

// RecentPickups returns the last n pickups, newest first.
func (h *Hub) RecentPickups(n int) []domain.Pickup {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Recent(h.state.Pickups, n)
}
