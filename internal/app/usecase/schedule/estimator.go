package schedule

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tcarranza/go-delivery-core/internal/app/entity"
)

type KitchenViewer interface {
	FindOrdersByStates(ctx context.Context, denominations ...string) (entity.Orders, error)
	CountEmployeesByRole(ctx context.Context, role string) (int64, error)
}

// Estimator derives a promised delivery time from the current kitchen load
// and the order's own preparation time.
type Estimator struct {
	storage           KitchenViewer
	cookRole          string
	deliveryBufferMin int
}

func NewEstimator(storage KitchenViewer, cookRole string, deliveryBufferMin int) *Estimator {
	return &Estimator{
		storage:           storage,
		cookRole:          cookRole,
		deliveryBufferMin: deliveryBufferMin,
	}
}

// TotalPreparationMinutes sums the preparation time of every manufactured
// item across the lines. Direct stock lines need no kitchen work.
func TotalPreparationMinutes(lines []entity.OrderLine) int {
	total := 0
	for _, line := range lines {
		if item, ok := line.Item.(entity.ManufacturedLine); ok {
			total += item.Item.PrepMinutes
		}
	}

	return total
}

// Estimate computes the promised time for an order entering at entry.
// Orders already in the kitchen (in-process or delayed) queue ahead of it:
// their summed preparation minutes divided by the cook headcount (integer
// division) is added as waiting time, then the order's own minutes, then
// the delivery buffer for home deliveries.
func (e *Estimator) Estimate(ctx context.Context, entry time.Time, ownPrepMinutes int, isDelivery bool) (time.Time, error) {
	kitchenOrders, err := e.storage.FindOrdersByStates(ctx, entity.StateInProcess, entity.StateDelayed)
	if err != nil {
		return time.Time{}, fmt.Errorf("error while listing kitchen orders: %w", err)
	}

	promised := entry

	if len(kitchenOrders) > 0 {
		kitchenMinutes := 0
		for _, kitchenOrder := range kitchenOrders {
			kitchenMinutes += kitchenOrder.PrepMinutes
		}

		cooks, err := e.storage.CountEmployeesByRole(ctx, e.cookRole)
		if err != nil {
			return time.Time{}, fmt.Errorf("error while counting cooks: %w", err)
		}

		if cooks > 0 {
			waitMinutes := kitchenMinutes / int(cooks)
			promised = promised.Add(time.Duration(waitMinutes) * time.Minute)
		} else {
			// Nobody to cook the backlog; without a headcount the queueing
			// delay is unknowable, so it is skipped rather than dividing by
			// zero.
			zap.L().Warn("no employees with cook role, skipping queueing delay",
				zap.String("cook_role", e.cookRole),
				zap.Int("kitchen_minutes", kitchenMinutes),
			)
		}
	}

	promised = promised.Add(time.Duration(ownPrepMinutes) * time.Minute)

	if isDelivery {
		promised = promised.Add(time.Duration(e.deliveryBufferMin) * time.Minute)
	}

	return promised, nil
}
