package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tcarranza/go-delivery-core/internal/app/entity"
	err_usecase "github.com/tcarranza/go-delivery-core/internal/app/usecase/errors"
	"github.com/tcarranza/go-delivery-core/internal/app/usecase/reservation"
	"github.com/tcarranza/go-delivery-core/internal/app/usecase/schedule"
)

// Outcome distinguishes a normal transition from the compensating one the
// state machine performs when stock ran out before cooking started.
type Outcome int

const (
	OutcomeAdvanced Outcome = iota
	OutcomeCancelledDueToStock
)

func (o Outcome) String() string {
	if o == OutcomeCancelledDueToStock {
		return "cancelled-due-to-stock"
	}

	return "advanced"
}

// OrderKeeper is the slice of storage the state machine drives.
type OrderKeeper interface {
	GetOrder(ctx context.Context, id uuid.UUID) (entity.Order, error)
	SaveOrder(ctx context.Context, order entity.Order) (entity.Order, error)
	FindOrdersByStates(ctx context.Context, denominations ...string) (entity.Orders, error)
	FindCustomerOrdersByStates(ctx context.Context, uid string, denominations ...string) (entity.Orders, error)
	GetCustomerByUID(ctx context.Context, uid string) (entity.Customer, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (entity.Employee, error)
	GetStateByDenomination(ctx context.Context, denomination string) (entity.OrderState, error)
}

// Service owns the order lifecycle. It validates stock through the
// reservation engine and derives timing through the estimator; it is the
// only writer of order state.
type Service struct {
	storage     OrderKeeper
	reservation *reservation.Engine
	estimator   *schedule.Estimator
	delayExt    time.Duration
	now         func() time.Time
}

func NewService(storage OrderKeeper, engine *reservation.Engine, estimator *schedule.Estimator, delayExtensionMin int, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}

	return &Service{
		storage:     storage,
		reservation: engine,
		estimator:   estimator,
		delayExt:    time.Duration(delayExtensionMin) * time.Minute,
		now:         clock,
	}
}

type CreateOrderInput struct {
	CustomerUID   string
	Lines         []entity.OrderLine
	IsDelivery    bool
	PaymentMethod string
}

// CreateOrder validates the lines, the customer and the stock, derives the
// timing and persists the order in the pending state. Stock is only checked
// here; nothing is deducted until the order moves to in-process.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (entity.Order, error) {
	for i, line := range input.Lines {
		if line.Quantity <= 0 {
			return entity.Order{}, fmt.Errorf("line %d: %w", i, err_usecase.ErrInvalidQuantity)
		}
	}

	customer, err := s.storage.GetCustomerByUID(ctx, input.CustomerUID)
	if err != nil {
		return entity.Order{}, fmt.Errorf("error while resolving customer: %w", err)
	}

	pending, err := s.storage.GetStateByDenomination(ctx, entity.StatePending)
	if err != nil {
		return entity.Order{}, fmt.Errorf("error while resolving pending state: %w", err)
	}

	timestamp := s.now()
	prepMinutes := schedule.TotalPreparationMinutes(input.Lines)

	promisedAt, err := s.estimator.Estimate(ctx, timestamp, prepMinutes, input.IsDelivery)
	if err != nil {
		return entity.Order{}, fmt.Errorf("error while estimating delivery time: %w", err)
	}

	available, err := s.reservation.CheckAvailability(ctx, input.Lines)
	if err != nil {
		return entity.Order{}, fmt.Errorf("error while validating stock: %w", err)
	}
	if !available {
		return entity.Order{}, err_usecase.ErrOutOfStock
	}

	lines := make([]entity.OrderLine, len(input.Lines))
	for i, line := range input.Lines {
		if line.ID == uuid.Nil {
			line.ID = uuid.New()
		}
		line.UpdatedAt = timestamp
		lines[i] = line
	}

	order := entity.Order{
		ID:            uuid.New(),
		Customer:      customer,
		Lines:         lines,
		State:         pending,
		CreatedAt:     timestamp,
		UpdatedAt:     timestamp,
		PrepMinutes:   prepMinutes,
		PromisedAt:    promisedAt,
		IsDelivery:    input.IsDelivery,
		PaymentMethod: input.PaymentMethod,
	}

	saved, err := s.storage.SaveOrder(ctx, order)
	if err != nil {
		return entity.Order{}, fmt.Errorf("error while saving order: %w", err)
	}

	zap.L().Info("order created",
		zap.String("order_id", saved.ID.String()),
		zap.String("customer_uid", customer.UID),
		zap.Time("promised_at", saved.PromisedAt),
	)

	return saved, nil
}

// AdvanceState moves the order to the state with the given denomination.
// Moving to delayed pushes the promised time out by the configured
// extension. Moving to in-process re-checks availability: when stock still
// covers the order it is consumed, otherwise the order is cancelled and the
// outcome says so instead of an error. Every other catalog state is
// assigned as-is.
func (s *Service) AdvanceState(ctx context.Context, orderID uuid.UUID, denomination string) (entity.Order, Outcome, error) {
	order, err := s.storage.GetOrder(ctx, orderID)
	if err != nil {
		return entity.Order{}, OutcomeAdvanced, fmt.Errorf("error while getting order: %w", err)
	}

	target, err := s.storage.GetStateByDenomination(ctx, denomination)
	if err != nil {
		return entity.Order{}, OutcomeAdvanced, fmt.Errorf("error while resolving target state: %w", err)
	}

	if !entity.CanTransition(order.State.Denomination, target.Denomination) {
		return entity.Order{}, OutcomeAdvanced, fmt.Errorf(
			"%w: %s -> %s", err_usecase.ErrInvalidTransition, order.State.Denomination, target.Denomination)
	}

	outcome := OutcomeAdvanced

	switch target.Denomination {
	case entity.StateDelayed:
		order.PromisedAt = order.PromisedAt.Add(s.delayExt)
		order.State = target
	case entity.StateInProcess:
		order, outcome, err = s.moveToKitchen(ctx, order, target)
		if err != nil {
			return entity.Order{}, OutcomeAdvanced, err
		}
	default:
		order.State = target
	}

	order.UpdatedAt = s.now()

	saved, err := s.storage.SaveOrder(ctx, order)
	if err != nil {
		return entity.Order{}, OutcomeAdvanced, fmt.Errorf("error while saving advanced order: %w", err)
	}

	zap.L().Info("order state advanced",
		zap.String("order_id", saved.ID.String()),
		zap.String("state", saved.State.Denomination),
		zap.String("outcome", outcome.String()),
	)

	return saved, outcome, nil
}

// moveToKitchen applies consumption when stock still covers the order and
// cancels it otherwise. The cancellation is a named outcome, not an error.
func (s *Service) moveToKitchen(ctx context.Context, order entity.Order, target entity.OrderState) (entity.Order, Outcome, error) {
	available, err := s.reservation.CheckAvailability(ctx, order.Lines)
	if err != nil {
		return entity.Order{}, OutcomeAdvanced, fmt.Errorf("error while re-checking stock: %w", err)
	}

	if !available {
		cancelled, err := s.storage.GetStateByDenomination(ctx, entity.StateCancelled)
		if err != nil {
			return entity.Order{}, OutcomeAdvanced, fmt.Errorf("error while resolving cancelled state: %w", err)
		}

		order.State = cancelled

		zap.L().Info("order cancelled for lack of stock", zap.String("order_id", order.ID.String()))

		return order, OutcomeCancelledDueToStock, nil
	}

	lines, err := s.reservation.ApplyConsumption(ctx, order.Lines)
	if err != nil {
		return entity.Order{}, OutcomeAdvanced, fmt.Errorf("error while consuming stock: %w", err)
	}

	order.Lines = lines
	order.State = target

	return order, OutcomeAdvanced, nil
}

// AssignCourier sets the courier on the order and forces it en-route.
func (s *Service) AssignCourier(ctx context.Context, orderID, employeeID uuid.UUID) (entity.Order, error) {
	order, err := s.storage.GetOrder(ctx, orderID)
	if err != nil {
		return entity.Order{}, fmt.Errorf("error while getting order: %w", err)
	}

	courier, err := s.storage.GetEmployee(ctx, employeeID)
	if err != nil {
		return entity.Order{}, fmt.Errorf("error while resolving courier: %w", err)
	}

	enRoute, err := s.storage.GetStateByDenomination(ctx, entity.StateEnRoute)
	if err != nil {
		return entity.Order{}, fmt.Errorf("error while resolving en-route state: %w", err)
	}

	order.Courier = &courier
	order.State = enRoute
	order.UpdatedAt = s.now()

	saved, err := s.storage.SaveOrder(ctx, order)
	if err != nil {
		return entity.Order{}, fmt.Errorf("error while saving courier assignment: %w", err)
	}

	return saved, nil
}

// EstimateDeliveryTime exposes the estimator at the service boundary.
func (s *Service) EstimateDeliveryTime(ctx context.Context, entry time.Time, ownPrepMinutes int, isDelivery bool) (time.Time, error) {
	return s.estimator.Estimate(ctx, entry, ownPrepMinutes, isDelivery)
}

// KitchenOrders lists the orders currently being cooked or delayed.
func (s *Service) KitchenOrders(ctx context.Context) (entity.Orders, error) {
	return s.storage.FindOrdersByStates(ctx, entity.StateInProcess, entity.StateDelayed)
}

// ActiveCustomerOrders lists a customer's orders still moving through the
// lifecycle.
func (s *Service) ActiveCustomerOrders(ctx context.Context, customerUID string) (entity.Orders, error) {
	return s.storage.FindCustomerOrdersByStates(ctx, customerUID,
		entity.StatePending, entity.StateInProcess, entity.StateDelayed, entity.StateReady, entity.StateEnRoute)
}

// PastCustomerOrders lists a customer's finished orders.
func (s *Service) PastCustomerOrders(ctx context.Context, customerUID string) (entity.Orders, error) {
	return s.storage.FindCustomerOrdersByStates(ctx, customerUID,
		entity.StateDelivered, entity.StateCancelled)
}
