package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcarranza/go-delivery-core/internal/app/entity"
	"github.com/tcarranza/go-delivery-core/internal/app/storage/memory"
)

var entryTime = time.Date(2024, 5, 14, 20, 0, 0, 0, time.UTC)

func seedKitchen(t *testing.T, store *memory.Memory, prepMinutes []int, cooks int) {
	t.Helper()
	ctx := context.Background()

	inProcess := entity.OrderState{ID: uuid.New(), Denomination: entity.StateInProcess}
	delayed := entity.OrderState{ID: uuid.New(), Denomination: entity.StateDelayed}
	store.PutState(inProcess)
	store.PutState(delayed)

	for i, minutes := range prepMinutes {
		state := inProcess
		if i%2 == 1 {
			state = delayed
		}

		_, err := store.SaveOrder(ctx, entity.Order{
			ID:          uuid.New(),
			State:       state,
			PrepMinutes: minutes,
		})
		require.NoError(t, err)
	}

	for i := 0; i < cooks; i++ {
		store.PutEmployee(entity.Employee{ID: uuid.New(), Name: "cook", Role: entity.RoleCook})
	}
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		name        string
		kitchen     []int
		cooks       int
		ownMinutes  int
		isDelivery  bool
		wantMinutes int
	}{
		{
			name:        "empty kitchen pickup",
			kitchen:     nil,
			cooks:       2,
			ownMinutes:  15,
			wantMinutes: 15,
		},
		{
			name:        "empty kitchen delivery adds the buffer",
			kitchen:     nil,
			cooks:       2,
			ownMinutes:  15,
			isDelivery:  true,
			wantMinutes: 25,
		},
		{
			name:        "kitchen load divided by cooks, truncated",
			kitchen:     []int{30, 31},
			cooks:       2,
			ownMinutes:  20,
			wantMinutes: 30 + 20, // floor(61/2) = 30
		},
		{
			name:        "single cook takes the whole backlog",
			kitchen:     []int{10, 20, 15},
			cooks:       1,
			ownMinutes:  5,
			isDelivery:  true,
			wantMinutes: 45 + 5 + 10,
		},
		{
			name:        "no cooks skips the queueing delay",
			kitchen:     []int{30, 30},
			cooks:       0,
			ownMinutes:  20,
			wantMinutes: 20,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := memory.NewMemoryStorage()
			seedKitchen(t, store, test.kitchen, test.cooks)
			estimator := NewEstimator(store, entity.RoleCook, 10)

			promised, err := estimator.Estimate(context.Background(), entryTime, test.ownMinutes, test.isDelivery)

			require.NoError(t, err)
			assert.Equal(t, entryTime.Add(time.Duration(test.wantMinutes)*time.Minute), promised)
		})
	}
}

func TestTotalPreparationMinutes(t *testing.T) {
	burger := entity.ManufacturedItem{ID: uuid.New(), PrepMinutes: 15}
	pizza := entity.ManufacturedItem{ID: uuid.New(), PrepMinutes: 20}
	soda := entity.StockItem{ID: uuid.New(), Denomination: "soda"}

	tests := []struct {
		name  string
		lines []entity.OrderLine
		want  int
	}{
		{
			name: "no lines",
			want: 0,
		},
		{
			name: "direct stock lines need no kitchen time",
			lines: []entity.OrderLine{
				{Quantity: 3, Item: entity.StockLine{Item: soda}},
			},
			want: 0,
		},
		{
			name: "manufactured lines summed once per line regardless of quantity",
			lines: []entity.OrderLine{
				{Quantity: 2, Item: entity.ManufacturedLine{Item: burger}},
				{Quantity: 1, Item: entity.ManufacturedLine{Item: pizza}},
				{Quantity: 4, Item: entity.StockLine{Item: soda}},
			},
			want: 35,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, TotalPreparationMinutes(test.lines))
		})
	}
}
