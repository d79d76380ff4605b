package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderedItem is the tagged union behind an order line: a line references
// either a manufactured item or a raw stock item, never both. Type switches
// over OrderedItem must carry a default branch surfacing the unknown variant.
type OrderedItem interface {
	orderedItem()
}

// ManufacturedLine references a prepared product consumed via its recipe.
type ManufacturedLine struct {
	Item ManufacturedItem
}

// StockLine references a raw material sold as-is.
type StockLine struct {
	Item StockItem
}

func (ManufacturedLine) orderedItem() {}
func (StockLine) orderedItem()        {}

// OrderLine is one position of an order. The embedded item is a snapshot;
// the reservation engine refreshes it after consuming stock.
type OrderLine struct {
	ID        uuid.UUID
	Quantity  int64
	Item      OrderedItem
	UpdatedAt time.Time
}

type Order struct {
	ID            uuid.UUID
	Customer      Customer
	Lines         []OrderLine
	State         OrderState
	CreatedAt     time.Time
	UpdatedAt     time.Time
	PrepMinutes   int
	PromisedAt    time.Time
	IsDelivery    bool
	PaymentMethod string
	Courier       *Employee
}

type Orders []Order
