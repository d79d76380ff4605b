package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMovement is one append-only ledger entry for a stock item.
// Quantity is always positive; Increase tells the direction.
type StockMovement struct {
	Quantity decimal.Decimal
	At       time.Time
	Increase bool
}

// Signed returns the movement delta with its direction applied.
func (m StockMovement) Signed() decimal.Decimal {
	if m.Increase {
		return m.Quantity
	}

	return m.Quantity.Neg()
}

// StockItem is a raw material with a tracked quantity and its movement history.
type StockItem struct {
	ID           uuid.UUID
	Denomination string
	CurrentStock decimal.Decimal
	UpdatedAt    time.Time
	Movements    []StockMovement
}

// MovementSum returns the signed sum of the whole movement history.
func (s StockItem) MovementSum() decimal.Decimal {
	sum := decimal.Zero
	for _, m := range s.Movements {
		sum = sum.Add(m.Signed())
	}

	return sum
}
