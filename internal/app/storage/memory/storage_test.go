package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcarranza/go-delivery-core/internal/app/entity"
	err_storage "github.com/tcarranza/go-delivery-core/internal/app/storage/api/errors"
)

func TestStockItemRoundTrip(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	_, err := store.GetStockItem(ctx, uuid.New())
	assert.ErrorIs(t, err, err_storage.ErrStockItemNotFound)

	item := entity.StockItem{
		ID:           uuid.New(),
		Denomination: "tomato",
		CurrentStock: decimal.NewFromInt(7),
		UpdatedAt:    time.Now().UTC(),
		Movements: []entity.StockMovement{
			{Quantity: decimal.NewFromInt(7), At: time.Now().UTC(), Increase: true},
		},
	}

	_, err = store.SaveStockItem(ctx, item)
	require.NoError(t, err)

	got, err := store.GetStockItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Denomination, got.Denomination)
	assert.True(t, got.CurrentStock.Equal(item.CurrentStock))
	require.Len(t, got.Movements, 1)
}

func TestStockItemIsolation(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	item := entity.StockItem{
		ID:           uuid.New(),
		CurrentStock: decimal.NewFromInt(5),
		Movements: []entity.StockMovement{
			{Quantity: decimal.NewFromInt(5), Increase: true},
		},
	}
	_, err := store.SaveStockItem(ctx, item)
	require.NoError(t, err)

	// Mutating a read copy must not leak into the store.
	got, err := store.GetStockItem(ctx, item.ID)
	require.NoError(t, err)
	got.Movements[0].Increase = false
	got.Movements = append(got.Movements, entity.StockMovement{Quantity: decimal.NewFromInt(1)})

	fresh, err := store.GetStockItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, fresh.Movements, 1)
	assert.True(t, fresh.Movements[0].Increase)
}

func TestCatalogLookups(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	_, err := store.GetCustomerByUID(ctx, "missing")
	assert.ErrorIs(t, err, err_storage.ErrCustomerNotFound)

	_, err = store.GetStateByDenomination(ctx, "missing")
	assert.ErrorIs(t, err, err_storage.ErrStateNotFound)

	_, err = store.GetManufacturedItem(ctx, uuid.New())
	assert.ErrorIs(t, err, err_storage.ErrManufacturedItemNotFound)

	_, err = store.GetEmployee(ctx, uuid.New())
	assert.ErrorIs(t, err, err_storage.ErrEmployeeNotFound)

	customer := entity.Customer{ID: uuid.New(), UID: "uid-7", Name: "Bruno"}
	store.PutCustomer(customer)
	gotCustomer, err := store.GetCustomerByUID(ctx, "uid-7")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, gotCustomer.ID)

	state := entity.OrderState{ID: uuid.New(), Denomination: entity.StatePending}
	store.PutState(state)
	gotState, err := store.GetStateByDenomination(ctx, entity.StatePending)
	require.NoError(t, err)
	assert.Equal(t, state.ID, gotState.ID)
}

func TestCountEmployeesByRole(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		store.PutEmployee(entity.Employee{ID: uuid.New(), Role: entity.RoleCook})
	}
	store.PutEmployee(entity.Employee{ID: uuid.New(), Role: entity.RoleCourier})

	cooks, err := store.CountEmployeesByRole(ctx, entity.RoleCook)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cooks)

	waiters, err := store.CountEmployeesByRole(ctx, "waiter")
	require.NoError(t, err)
	assert.Equal(t, int64(0), waiters)
}

func TestFindOrdersByStates(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	pending := entity.OrderState{ID: uuid.New(), Denomination: entity.StatePending}
	inProcess := entity.OrderState{ID: uuid.New(), Denomination: entity.StateInProcess}
	delivered := entity.OrderState{ID: uuid.New(), Denomination: entity.StateDelivered}

	orders := []entity.Order{
		{ID: uuid.New(), State: pending, Customer: entity.Customer{UID: "a"}},
		{ID: uuid.New(), State: inProcess, Customer: entity.Customer{UID: "a"}},
		{ID: uuid.New(), State: delivered, Customer: entity.Customer{UID: "b"}},
	}
	for _, order := range orders {
		_, err := store.SaveOrder(ctx, order)
		require.NoError(t, err)
	}

	kitchen, err := store.FindOrdersByStates(ctx, entity.StateInProcess, entity.StateDelayed)
	require.NoError(t, err)
	require.Len(t, kitchen, 1)
	assert.Equal(t, orders[1].ID, kitchen[0].ID)

	forA, err := store.FindCustomerOrdersByStates(ctx, "a", entity.StatePending, entity.StateInProcess)
	require.NoError(t, err)
	assert.Len(t, forA, 2)

	forB, err := store.FindCustomerOrdersByStates(ctx, "b", entity.StatePending)
	require.NoError(t, err)
	assert.Empty(t, forB)
}

func TestOrderRoundTripKeepsLineVariants(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	burger := entity.ManufacturedItem{ID: uuid.New(), Denomination: "burger", PrepMinutes: 15}
	soda := entity.StockItem{ID: uuid.New(), Denomination: "soda", CurrentStock: decimal.NewFromInt(3)}

	order := entity.Order{
		ID:    uuid.New(),
		State: entity.OrderState{ID: uuid.New(), Denomination: entity.StatePending},
		Lines: []entity.OrderLine{
			{ID: uuid.New(), Quantity: 1, Item: entity.ManufacturedLine{Item: burger}},
			{ID: uuid.New(), Quantity: 2, Item: entity.StockLine{Item: soda}},
		},
		Courier: &entity.Employee{ID: uuid.New(), Role: entity.RoleCourier},
	}

	_, err := store.SaveOrder(ctx, order)
	require.NoError(t, err)

	got, err := store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 2)

	manufactured, ok := got.Lines[0].Item.(entity.ManufacturedLine)
	require.True(t, ok)
	assert.Equal(t, burger.ID, manufactured.Item.ID)

	direct, ok := got.Lines[1].Item.(entity.StockLine)
	require.True(t, ok)
	assert.Equal(t, soda.ID, direct.Item.ID)

	require.NotNil(t, got.Courier)
	assert.Equal(t, order.Courier.ID, got.Courier.ID)
}
