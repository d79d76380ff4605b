package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tcarranza/go-delivery-core/internal/app/config"
	"github.com/tcarranza/go-delivery-core/internal/app/controller/http/middleware/logger"
	orders_controller "github.com/tcarranza/go-delivery-core/internal/app/controller/http/orders"
	stock_controller "github.com/tcarranza/go-delivery-core/internal/app/controller/http/stock"
	storage "github.com/tcarranza/go-delivery-core/internal/app/storage/api/model"
	"github.com/tcarranza/go-delivery-core/internal/app/usecase/order"
	"github.com/tcarranza/go-delivery-core/internal/app/usecase/recipe"
	"github.com/tcarranza/go-delivery-core/internal/app/usecase/reservation"
	"github.com/tcarranza/go-delivery-core/internal/app/usecase/schedule"
	"github.com/tcarranza/go-delivery-core/internal/app/usecase/stock"
)

type HTTPServer struct {
	server *http.Server

	config  config.Config
	storage storage.Storage
}

func New(config config.Config, storage storage.Storage) *HTTPServer {
	ledger := stock.NewLedger(storage, nil)
	resolver := recipe.NewResolver(storage)
	engine := reservation.NewEngine(storage, resolver, ledger, nil)
	estimator := schedule.NewEstimator(storage, config.CookRole, config.DeliveryBufferMin)
	orderService := order.NewService(storage, engine, estimator, config.DelayExtensionMin, nil)

	ordersController := orders_controller.New(orderService, storage)
	stockController := stock_controller.New(ledger, storage)

	mux := createMux(ordersController, stockController)

	server := &http.Server{
		Addr:    config.NetAddr,
		Handler: mux,
	}

	return &HTTPServer{
		server:  server,
		config:  config,
		storage: storage,
	}
}

func (s *HTTPServer) StartHTTPServer() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer cancel()

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("fatal error while starting server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	zap.L().Info("Got interruption signal. Shutting down HTTP server gracefully...")
	err := s.server.Shutdown(context.Background())
	if err != nil {
		zap.L().Error("error while shutting down server", zap.Error(err))
	}
}

func createMux(orders orders_controller.Orders, stock stock_controller.Stock) *chi.Mux {
	r := chi.NewRouter()

	r.Use(logger.LoggerMiddleware)

	r.Post("/api/orders", orders.CreateOrder())
	r.Put("/api/orders/{orderID}/state", orders.AdvanceState())
	r.Put("/api/orders/{orderID}/courier", orders.AssignCourier())
	r.Get("/api/orders/kitchen", orders.KitchenOrders())
	r.Get("/api/customers/{customerUID}/orders/active", orders.ActiveCustomerOrders())
	r.Get("/api/customers/{customerUID}/orders/past", orders.PastCustomerOrders())

	r.Get("/api/stock/{itemID}", stock.GetItem())
	r.Post("/api/stock/{itemID}/add", stock.AddStock())
	r.Post("/api/stock/{itemID}/remove", stock.RemoveStock())

	return r
}
