package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tcarranza/go-delivery-core/internal/app/entity"
	err_usecase "github.com/tcarranza/go-delivery-core/internal/app/usecase/errors"
	"github.com/tcarranza/go-delivery-core/internal/app/usecase/recipe"
	"github.com/tcarranza/go-delivery-core/internal/app/usecase/stock"
)

type StockReader interface {
	GetStockItem(ctx context.Context, id uuid.UUID) (entity.StockItem, error)
}

// Engine validates and applies stock consumption for a set of order lines.
// Availability checks read fresh quantities from storage; consumption goes
// through the ledger so every deduction lands in the movement history.
type Engine struct {
	storage StockReader
	recipes *recipe.Resolver
	ledger  *stock.Ledger
	now     func() time.Time
}

func NewEngine(storage StockReader, recipes *recipe.Resolver, ledger *stock.Ledger, clock func() time.Time) *Engine {
	if clock == nil {
		clock = time.Now
	}

	return &Engine{
		storage: storage,
		recipes: recipes,
		ledger:  ledger,
		now:     clock,
	}
}

// CheckAvailability reports whether current stock covers every line.
// A manufactured line needs recipe-quantity × line-quantity of each raw
// material; a direct stock line needs its own quantity. The check stops at
// the first shortage and has no side effects.
func (e *Engine) CheckAvailability(ctx context.Context, lines []entity.OrderLine) (bool, error) {
	for _, line := range lines {
		switch item := line.Item.(type) {
		case entity.ManufacturedLine:
			recipeLines, err := e.recipes.Resolve(ctx, item.Item.ID)
			if err != nil {
				return false, err
			}
			for _, recipeLine := range recipeLines {
				required := recipeLine.Quantity.Mul(decimal.NewFromInt(line.Quantity))
				covered, err := e.covers(ctx, recipeLine.StockItemID, required)
				if err != nil {
					return false, err
				}
				if !covered {
					return false, nil
				}
			}
		case entity.StockLine:
			covered, err := e.covers(ctx, item.Item.ID, decimal.NewFromInt(line.Quantity))
			if err != nil {
				return false, err
			}
			if !covered {
				return false, nil
			}
		default:
			return false, err_usecase.ErrUnknownLineItem
		}
	}

	return true, nil
}

// ApplyConsumption deducts stock for every line, re-resolving each consumed
// item from the ledger rather than trusting the embedded snapshot. Must run
// after CheckAvailability passed for the same lines; if a concurrent
// consumer depleted an item in between, the operation fails with
// ErrInsufficientStock and deductions already applied stay committed.
func (e *Engine) ApplyConsumption(ctx context.Context, lines []entity.OrderLine) ([]entity.OrderLine, error) {
	timestamp := e.now()

	out := make([]entity.OrderLine, len(lines))
	for i, line := range lines {
		switch item := line.Item.(type) {
		case entity.ManufacturedLine:
			recipeLines, err := e.recipes.Resolve(ctx, item.Item.ID)
			if err != nil {
				return nil, err
			}
			for _, recipeLine := range recipeLines {
				required := recipeLine.Quantity.Mul(decimal.NewFromInt(line.Quantity))
				if _, err := e.ledger.RemoveStock(ctx, recipeLine.StockItemID, required); err != nil {
					return nil, fmt.Errorf("error while consuming stock for manufactured line: %w", err)
				}
			}
			line.UpdatedAt = timestamp
		case entity.StockLine:
			fresh, err := e.ledger.RemoveStock(ctx, item.Item.ID, decimal.NewFromInt(line.Quantity))
			if err != nil {
				return nil, fmt.Errorf("error while consuming stock for direct line: %w", err)
			}
			line.Item = entity.StockLine{Item: fresh}
			line.UpdatedAt = timestamp
		default:
			return nil, err_usecase.ErrUnknownLineItem
		}
		out[i] = line
	}

	zap.L().Debug("stock consumption applied", zap.Int("lines", len(out)))

	return out, nil
}

func (e *Engine) covers(ctx context.Context, itemID uuid.UUID, required decimal.Decimal) (bool, error) {
	item, err := e.storage.GetStockItem(ctx, itemID)
	if err != nil {
		return false, fmt.Errorf("error while reading stock for availability check: %w", err)
	}

	return !item.CurrentStock.LessThan(required), nil
}
