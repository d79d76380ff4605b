package stock

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	httputils "github.com/tcarranza/go-delivery-core/internal/app/controller/http/utils"
	"github.com/tcarranza/go-delivery-core/internal/app/converter"
	"github.com/tcarranza/go-delivery-core/internal/app/entity"
	"github.com/tcarranza/go-delivery-core/internal/app/model"
	err_storage "github.com/tcarranza/go-delivery-core/internal/app/storage/api/errors"
	err_usecase "github.com/tcarranza/go-delivery-core/internal/app/usecase/errors"
	"github.com/tcarranza/go-delivery-core/internal/app/usecase/stock"
)

type StockViewer interface {
	GetStockItem(ctx context.Context, id uuid.UUID) (entity.StockItem, error)
}

type Stock struct {
	ledger *stock.Ledger
	viewer StockViewer
}

func New(ledger *stock.Ledger, viewer StockViewer) Stock {
	return Stock{
		ledger: ledger,
		viewer: viewer,
	}
}

func (p *Stock) GetItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), httputils.RequestTimeout)
		defer cancel()

		itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		item, err := p.viewer.GetStockItem(ctx, itemID)
		if err != nil {
			if errors.Is(err, err_storage.ErrStockItemNotFound) {
				w.WriteHeader(http.StatusNotFound)
			} else {
				zap.L().Error("error while getting stock item", zap.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
			}
			return
		}

		sendStockItem(w, http.StatusOK, item)
	}
}

func (p *Stock) AddStock() http.HandlerFunc {
	return p.adjust(p.ledger.AddStock)
}

func (p *Stock) RemoveStock() http.HandlerFunc {
	return p.adjust(p.ledger.RemoveStock)
}

func (p *Stock) adjust(op func(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) (entity.StockItem, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), httputils.RequestTimeout)
		defer cancel()

		itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var request model.StockAdjustmentRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		item, err := op(ctx, itemID, request.Quantity)
		if err != nil {
			switch {
			case errors.Is(err, err_storage.ErrStockItemNotFound):
				w.WriteHeader(http.StatusNotFound)
			case errors.Is(err, err_usecase.ErrInvalidQuantity):
				w.WriteHeader(http.StatusUnprocessableEntity)
			case errors.Is(err, err_usecase.ErrInsufficientStock):
				w.WriteHeader(http.StatusConflict)
			default:
				zap.L().Error("error while adjusting stock", zap.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
			}
			return
		}

		sendStockItem(w, http.StatusOK, item)
	}
}

func sendStockItem(w http.ResponseWriter, status int, item entity.StockItem) {
	out, err := json.Marshal(converter.ConvertStockItemToResponse(item))
	if err != nil {
		zap.L().Error("error while marshalling stock item response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(out)
}
