package recipe

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tcarranza/go-delivery-core/internal/app/entity"
)

type Catalog interface {
	GetManufacturedItem(ctx context.Context, id uuid.UUID) (entity.ManufacturedItem, error)
}

// Resolver maps a manufactured item to the raw materials it consumes.
// Pure lookup; recipes are mutated only by the catalog side.
type Resolver struct {
	catalog Catalog
}

func NewResolver(catalog Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

func (r *Resolver) Resolve(ctx context.Context, manufacturedID uuid.UUID) ([]entity.RecipeLine, error) {
	item, err := r.catalog.GetManufacturedItem(ctx, manufacturedID)
	if err != nil {
		return nil, fmt.Errorf("error while resolving recipe: %w", err)
	}

	return item.Recipe, nil
}
