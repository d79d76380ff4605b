package model

import (
	"context"

	"github.com/google/uuid"

	"github.com/tcarranza/go-delivery-core/internal/app/entity"
)

// Storage is the narrow persistence-and-query surface the fulfillment core
// depends on. Predicate construction (filtering, sorting, paging) lives
// behind the implementations; the core only asks for catalog lookups,
// saves, and the two aggregate queries the kitchen scheduling needs.
type Storage interface {
	Close() error

	GetStockItem(ctx context.Context, id uuid.UUID) (entity.StockItem, error)
	SaveStockItem(ctx context.Context, item entity.StockItem) (entity.StockItem, error)

	GetManufacturedItem(ctx context.Context, id uuid.UUID) (entity.ManufacturedItem, error)

	GetCustomerByUID(ctx context.Context, uid string) (entity.Customer, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (entity.Employee, error)
	CountEmployeesByRole(ctx context.Context, role string) (int64, error)

	GetStateByDenomination(ctx context.Context, denomination string) (entity.OrderState, error)

	GetOrder(ctx context.Context, id uuid.UUID) (entity.Order, error)
	SaveOrder(ctx context.Context, order entity.Order) (entity.Order, error)
	FindOrdersByStates(ctx context.Context, denominations ...string) (entity.Orders, error)
	FindCustomerOrdersByStates(ctx context.Context, uid string, denominations ...string) (entity.Orders, error)
}
