package converter

import (
	"github.com/golang-module/carbon/v2"

	"github.com/tcarranza/go-delivery-core/internal/app/entity"
	"github.com/tcarranza/go-delivery-core/internal/app/model"
)

func ConvertOrderToResponse(order entity.Order) model.OrderResponse {
	out := model.OrderResponse{
		ID:            order.ID.String(),
		CustomerUID:   order.Customer.UID,
		State:         order.State.Denomination,
		CreatedAt:     carbon.CreateFromStdTime(order.CreatedAt).ToRfc3339String(),
		UpdatedAt:     carbon.CreateFromStdTime(order.UpdatedAt).ToRfc3339String(),
		PrepMinutes:   order.PrepMinutes,
		PromisedAt:    carbon.CreateFromStdTime(order.PromisedAt).ToRfc3339String(),
		IsDelivery:    order.IsDelivery,
		PaymentMethod: order.PaymentMethod,
		Lines:         make([]model.OrderLineResponse, 0, len(order.Lines)),
	}

	if order.Courier != nil {
		out.CourierID = order.Courier.ID.String()
	}

	for _, line := range order.Lines {
		lineOut := model.OrderLineResponse{
			ID:       line.ID.String(),
			Quantity: line.Quantity,
		}

		switch item := line.Item.(type) {
		case entity.ManufacturedLine:
			lineOut.ManufacturedItemID = item.Item.ID.String()
		case entity.StockLine:
			lineOut.StockItemID = item.Item.ID.String()
		}

		out.Lines = append(out.Lines, lineOut)
	}

	return out
}

func ConvertOrdersToResponse(orders entity.Orders) []model.OrderResponse {
	out := make([]model.OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, ConvertOrderToResponse(order))
	}

	return out
}
