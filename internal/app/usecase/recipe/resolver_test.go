package recipe

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcarranza/go-delivery-core/internal/app/entity"
	err_storage "github.com/tcarranza/go-delivery-core/internal/app/storage/api/errors"
	"github.com/tcarranza/go-delivery-core/internal/app/storage/memory"
)

func TestResolve(t *testing.T) {
	store := memory.NewMemoryStorage()

	flourID := uuid.New()
	burger := entity.ManufacturedItem{
		ID:          uuid.New(),
		PrepMinutes: 15,
		Recipe: []entity.RecipeLine{
			{StockItemID: flourID, Quantity: decimal.NewFromInt(3)},
		},
	}
	store.PutManufacturedItem(burger)

	resolver := NewResolver(store)

	lines, err := resolver.Resolve(context.Background(), burger.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, flourID, lines[0].StockItemID)
	assert.True(t, lines[0].Quantity.Equal(decimal.NewFromInt(3)))
}

func TestResolveUnknownItem(t *testing.T) {
	resolver := NewResolver(memory.NewMemoryStorage())

	_, err := resolver.Resolve(context.Background(), uuid.New())

	assert.ErrorIs(t, err, err_storage.ErrManufacturedItemNotFound)
}
