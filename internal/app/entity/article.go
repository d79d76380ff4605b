package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecipeLine binds a manufactured item to one of its raw materials.
// Quantity is the amount of the stock item needed for one unit.
// The order engine never mutates recipes.
type RecipeLine struct {
	StockItemID uuid.UUID
	Quantity    decimal.Decimal
}

// ManufacturedItem is a prepared product consumed via its recipe.
type ManufacturedItem struct {
	ID           uuid.UUID
	Denomination string
	PrepMinutes  int
	Recipe       []RecipeLine
}
