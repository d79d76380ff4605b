package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	httputils "github.com/tcarranza/go-delivery-core/internal/app/controller/http/utils"
	"github.com/tcarranza/go-delivery-core/internal/app/converter"
	"github.com/tcarranza/go-delivery-core/internal/app/entity"
	"github.com/tcarranza/go-delivery-core/internal/app/model"
	err_storage "github.com/tcarranza/go-delivery-core/internal/app/storage/api/errors"
	err_usecase "github.com/tcarranza/go-delivery-core/internal/app/usecase/errors"
	"github.com/tcarranza/go-delivery-core/internal/app/usecase/order"
)

// ItemResolver turns line references from the request into catalog
// snapshots.
type ItemResolver interface {
	GetManufacturedItem(ctx context.Context, id uuid.UUID) (entity.ManufacturedItem, error)
	GetStockItem(ctx context.Context, id uuid.UUID) (entity.StockItem, error)
}

type Orders struct {
	service  *order.Service
	resolver ItemResolver
}

func New(service *order.Service, resolver ItemResolver) Orders {
	return Orders{
		service:  service,
		resolver: resolver,
	}
}

func (p *Orders) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), httputils.RequestTimeout)
		defer cancel()

		var request model.CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			zap.L().Error("error while decoding create order request", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		lines, err := p.resolveLines(ctx, request.Lines)
		if err != nil {
			zap.L().Error("error while resolving order lines", zap.Error(err))
			p.writeResolveError(w, err)
			return
		}

		created, err := p.service.CreateOrder(ctx, order.CreateOrderInput{
			CustomerUID:   request.CustomerUID,
			Lines:         lines,
			IsDelivery:    request.IsDelivery,
			PaymentMethod: request.PaymentMethod,
		})
		if err != nil {
			switch {
			case errors.Is(err, err_storage.ErrCustomerNotFound):
				w.WriteHeader(http.StatusNotFound)
			case errors.Is(err, err_usecase.ErrOutOfStock):
				w.WriteHeader(http.StatusConflict)
			case errors.Is(err, err_usecase.ErrInvalidQuantity):
				w.WriteHeader(http.StatusUnprocessableEntity)
			default:
				zap.L().Error("error while creating order", zap.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
			}
			return
		}

		sendOrder(w, http.StatusCreated, created, "")
	}
}

func (p *Orders) AdvanceState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), httputils.RequestTimeout)
		defer cancel()

		orderID, err := parseID(r, "orderID")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var request model.AdvanceStateRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		advanced, outcome, err := p.service.AdvanceState(ctx, orderID, request.State)
		if err != nil {
			switch {
			case errors.Is(err, err_storage.ErrOrderNotFound), errors.Is(err, err_storage.ErrStateNotFound):
				w.WriteHeader(http.StatusNotFound)
			case errors.Is(err, err_usecase.ErrInvalidTransition):
				w.WriteHeader(http.StatusConflict)
			default:
				zap.L().Error("error while advancing order state", zap.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
			}
			return
		}

		sendOrder(w, http.StatusOK, advanced, outcome.String())
	}
}

func (p *Orders) AssignCourier() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), httputils.RequestTimeout)
		defer cancel()

		orderID, err := parseID(r, "orderID")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var request model.AssignCourierRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		employeeID, err := uuid.Parse(request.EmployeeID)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		assigned, err := p.service.AssignCourier(ctx, orderID, employeeID)
		if err != nil {
			switch {
			case errors.Is(err, err_storage.ErrOrderNotFound), errors.Is(err, err_storage.ErrEmployeeNotFound):
				w.WriteHeader(http.StatusNotFound)
			default:
				zap.L().Error("error while assigning courier", zap.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
			}
			return
		}

		sendOrder(w, http.StatusOK, assigned, "")
	}
}

func (p *Orders) KitchenOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), httputils.RequestTimeout)
		defer cancel()

		orders, err := p.service.KitchenOrders(ctx)
		if err != nil {
			zap.L().Error("error while listing kitchen orders", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		sendOrders(w, orders)
	}
}

func (p *Orders) ActiveCustomerOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), httputils.RequestTimeout)
		defer cancel()

		orders, err := p.service.ActiveCustomerOrders(ctx, chi.URLParam(r, "customerUID"))
		if err != nil {
			zap.L().Error("error while listing active customer orders", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		sendOrders(w, orders)
	}
}

func (p *Orders) PastCustomerOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), httputils.RequestTimeout)
		defer cancel()

		orders, err := p.service.PastCustomerOrders(ctx, chi.URLParam(r, "customerUID"))
		if err != nil {
			zap.L().Error("error while listing past customer orders", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		sendOrders(w, orders)
	}
}

func (p *Orders) resolveLines(ctx context.Context, requests []model.OrderLineRequest) ([]entity.OrderLine, error) {
	lines := make([]entity.OrderLine, 0, len(requests))
	for i, request := range requests {
		line := entity.OrderLine{
			Quantity: request.Quantity,
		}

		hasManufactured := request.ManufacturedItemID != ""
		hasStock := request.StockItemID != ""
		if hasManufactured == hasStock {
			return nil, fmt.Errorf("line %d must reference exactly one of manufactured item or stock item", i)
		}

		if hasManufactured {
			id, err := uuid.Parse(request.ManufacturedItemID)
			if err != nil {
				return nil, fmt.Errorf("line %d has invalid manufactured item id: %w", i, err)
			}
			item, err := p.resolver.GetManufacturedItem(ctx, id)
			if err != nil {
				return nil, err
			}
			line.Item = entity.ManufacturedLine{Item: item}
		} else {
			id, err := uuid.Parse(request.StockItemID)
			if err != nil {
				return nil, fmt.Errorf("line %d has invalid stock item id: %w", i, err)
			}
			item, err := p.resolver.GetStockItem(ctx, id)
			if err != nil {
				return nil, err
			}
			line.Item = entity.StockLine{Item: item}
		}

		lines = append(lines, line)
	}

	return lines, nil
}

func (p *Orders) writeResolveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, err_storage.ErrManufacturedItemNotFound), errors.Is(err, err_storage.ErrStockItemNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func parseID(r *http.Request, param string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, param))
}

func sendOrder(w http.ResponseWriter, status int, order entity.Order, outcome string) {
	response := converter.ConvertOrderToResponse(order)
	response.Outcome = outcome

	out, err := json.Marshal(response)
	if err != nil {
		zap.L().Error("error while marshalling order response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(out)
}

func sendOrders(w http.ResponseWriter, orders entity.Orders) {
	out, err := json.Marshal(converter.ConvertOrdersToResponse(orders))
	if err != nil {
		zap.L().Error("error while marshalling orders response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}
