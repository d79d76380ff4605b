package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tcarranza/go-delivery-core/internal/app/entity"
	err_usecase "github.com/tcarranza/go-delivery-core/internal/app/usecase/errors"
)

// StockKeeper is the slice of storage the ledger needs.
type StockKeeper interface {
	GetStockItem(ctx context.Context, id uuid.UUID) (entity.StockItem, error)
	SaveStockItem(ctx context.Context, item entity.StockItem) (entity.StockItem, error)
}

// Ledger owns raw-material quantities and their append-only movement
// history. Every stock mutation in the system goes through it.
type Ledger struct {
	storage StockKeeper
	now     func() time.Time
}

// NewLedger builds a ledger over the given storage. A nil clock means
// time.Now.
func NewLedger(storage StockKeeper, clock func() time.Time) *Ledger {
	if clock == nil {
		clock = time.Now
	}

	return &Ledger{
		storage: storage,
		now:     clock,
	}
}

// CreateStockItem registers a new raw material. A positive initial quantity
// is recorded as the first increase movement so the history invariant holds
// from the start.
func (l *Ledger) CreateStockItem(ctx context.Context, item entity.StockItem) (entity.StockItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	timestamp := l.now()
	item.UpdatedAt = timestamp

	if item.CurrentStock.IsPositive() {
		item.Movements = append(item.Movements, entity.StockMovement{
			Quantity: item.CurrentStock,
			At:       timestamp,
			Increase: true,
		})
	}

	saved, err := l.storage.SaveStockItem(ctx, item)
	if err != nil {
		return entity.StockItem{}, fmt.Errorf("error while creating stock item: %w", err)
	}

	return saved, nil
}

// AddStock increments the item quantity and appends an increase movement.
func (l *Ledger) AddStock(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) (entity.StockItem, error) {
	if !quantity.IsPositive() {
		return entity.StockItem{}, err_usecase.ErrInvalidQuantity
	}

	item, err := l.storage.GetStockItem(ctx, itemID)
	if err != nil {
		return entity.StockItem{}, fmt.Errorf("error while getting stock item for addition: %w", err)
	}

	timestamp := l.now()
	item.CurrentStock = item.CurrentStock.Add(quantity)
	item.UpdatedAt = timestamp
	item.Movements = append(item.Movements, entity.StockMovement{
		Quantity: quantity,
		At:       timestamp,
		Increase: true,
	})

	saved, err := l.storage.SaveStockItem(ctx, item)
	if err != nil {
		return entity.StockItem{}, fmt.Errorf("error while saving stock addition: %w", err)
	}

	return saved, nil
}

// RemoveStock decrements the item quantity and appends a decrease movement.
// The removal succeeds only while the current quantity is strictly greater
// than the requested one; asking for exactly the remaining stock fails.
func (l *Ledger) RemoveStock(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) (entity.StockItem, error) {
	if !quantity.IsPositive() {
		return entity.StockItem{}, err_usecase.ErrInvalidQuantity
	}

	item, err := l.storage.GetStockItem(ctx, itemID)
	if err != nil {
		return entity.StockItem{}, fmt.Errorf("error while getting stock item for removal: %w", err)
	}

	if !item.CurrentStock.GreaterThan(quantity) {
		zap.L().Info("stock removal rejected",
			zap.String("stock_item_id", itemID.String()),
			zap.String("requested", quantity.String()),
			zap.String("available", item.CurrentStock.String()),
		)
		return entity.StockItem{}, err_usecase.ErrInsufficientStock
	}

	timestamp := l.now()
	item.CurrentStock = item.CurrentStock.Sub(quantity)
	item.UpdatedAt = timestamp
	item.Movements = append(item.Movements, entity.StockMovement{
		Quantity: quantity,
		At:       timestamp,
		Increase: false,
	})

	saved, err := l.storage.SaveStockItem(ctx, item)
	if err != nil {
		return entity.StockItem{}, fmt.Errorf("error while saving stock removal: %w", err)
	}

	return saved, nil
}
