package converter

import (
	"github.com/golang-module/carbon/v2"

	"github.com/tcarranza/go-delivery-core/internal/app/entity"
	"github.com/tcarranza/go-delivery-core/internal/app/model"
)

func ConvertStockItemToResponse(item entity.StockItem) model.StockItemResponse {
	out := model.StockItemResponse{
		ID:           item.ID.String(),
		Denomination: item.Denomination,
		CurrentStock: item.CurrentStock,
		UpdatedAt:    carbon.CreateFromStdTime(item.UpdatedAt).ToRfc3339String(),
		Movements:    make([]model.StockMovementResponse, 0, len(item.Movements)),
	}

	for _, movement := range item.Movements {
		out.Movements = append(out.Movements, model.StockMovementResponse{
			Quantity: movement.Quantity,
			At:       carbon.CreateFromStdTime(movement.At).ToRfc3339String(),
			Increase: movement.Increase,
		})
	}

	return out
}
