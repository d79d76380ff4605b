package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tcarranza/go-delivery-core/internal/app/entity"
	err_storage "github.com/tcarranza/go-delivery-core/internal/app/storage/api/errors"
)

// Memory keeps the whole catalog and order book in maps. It backs local
// runs without a database and the test suites. Entities are deep-copied on
// the way in and out so callers never alias stored state.
type Memory struct {
	mutex sync.RWMutex

	stockItems        map[uuid.UUID]entity.StockItem
	manufacturedItems map[uuid.UUID]entity.ManufacturedItem
	customers         map[string]entity.Customer
	employees         map[uuid.UUID]entity.Employee
	states            map[string]entity.OrderState
	orders            map[uuid.UUID]entity.Order
}

func NewMemoryStorage() *Memory {
	return &Memory{
		stockItems:        make(map[uuid.UUID]entity.StockItem),
		manufacturedItems: make(map[uuid.UUID]entity.ManufacturedItem),
		customers:         make(map[string]entity.Customer),
		employees:         make(map[uuid.UUID]entity.Employee),
		states:            make(map[string]entity.OrderState),
		orders:            make(map[uuid.UUID]entity.Order),
	}
}

func (s *Memory) Close() error {
	return nil
}

func (s *Memory) GetStockItem(_ context.Context, id uuid.UUID) (entity.StockItem, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	item, ok := s.stockItems[id]
	if !ok {
		return entity.StockItem{}, err_storage.ErrStockItemNotFound
	}

	return cloneStockItem(item), nil
}

func (s *Memory) SaveStockItem(_ context.Context, item entity.StockItem) (entity.StockItem, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.stockItems[item.ID] = cloneStockItem(item)

	return item, nil
}

func (s *Memory) GetManufacturedItem(_ context.Context, id uuid.UUID) (entity.ManufacturedItem, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	item, ok := s.manufacturedItems[id]
	if !ok {
		return entity.ManufacturedItem{}, err_storage.ErrManufacturedItemNotFound
	}

	return cloneManufacturedItem(item), nil
}

// PutManufacturedItem seeds the catalog. Recipe management is an external
// collaborator, so this sits outside the Storage interface.
func (s *Memory) PutManufacturedItem(item entity.ManufacturedItem) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.manufacturedItems[item.ID] = cloneManufacturedItem(item)
}

func (s *Memory) GetCustomerByUID(_ context.Context, uid string) (entity.Customer, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	customer, ok := s.customers[uid]
	if !ok {
		return entity.Customer{}, err_storage.ErrCustomerNotFound
	}

	return customer, nil
}

func (s *Memory) PutCustomer(customer entity.Customer) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.customers[customer.UID] = customer
}

func (s *Memory) GetEmployee(_ context.Context, id uuid.UUID) (entity.Employee, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	employee, ok := s.employees[id]
	if !ok {
		return entity.Employee{}, err_storage.ErrEmployeeNotFound
	}

	return employee, nil
}

func (s *Memory) PutEmployee(employee entity.Employee) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.employees[employee.ID] = employee
}

func (s *Memory) CountEmployeesByRole(_ context.Context, role string) (int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var count int64
	for _, employee := range s.employees {
		if employee.Role == role {
			count++
		}
	}

	return count, nil
}

func (s *Memory) GetStateByDenomination(_ context.Context, denomination string) (entity.OrderState, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	state, ok := s.states[denomination]
	if !ok {
		return entity.OrderState{}, err_storage.ErrStateNotFound
	}

	return state, nil
}

func (s *Memory) PutState(state entity.OrderState) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.states[state.Denomination] = state
}

func (s *Memory) GetOrder(_ context.Context, id uuid.UUID) (entity.Order, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return entity.Order{}, err_storage.ErrOrderNotFound
	}

	return cloneOrder(order), nil
}

func (s *Memory) SaveOrder(_ context.Context, order entity.Order) (entity.Order, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.orders[order.ID] = cloneOrder(order)

	return order, nil
}

func (s *Memory) FindOrdersByStates(_ context.Context, denominations ...string) (entity.Orders, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	wanted := make(map[string]bool, len(denominations))
	for _, denomination := range denominations {
		wanted[denomination] = true
	}

	orders := make(entity.Orders, 0)
	for _, order := range s.orders {
		if wanted[order.State.Denomination] {
			orders = append(orders, cloneOrder(order))
		}
	}

	return orders, nil
}

func (s *Memory) FindCustomerOrdersByStates(_ context.Context, uid string, denominations ...string) (entity.Orders, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	wanted := make(map[string]bool, len(denominations))
	for _, denomination := range denominations {
		wanted[denomination] = true
	}

	orders := make(entity.Orders, 0)
	for _, order := range s.orders {
		if order.Customer.UID == uid && wanted[order.State.Denomination] {
			orders = append(orders, cloneOrder(order))
		}
	}

	return orders, nil
}

func cloneStockItem(item entity.StockItem) entity.StockItem {
	out := item
	out.Movements = make([]entity.StockMovement, len(item.Movements))
	copy(out.Movements, item.Movements)

	return out
}

func cloneManufacturedItem(item entity.ManufacturedItem) entity.ManufacturedItem {
	out := item
	out.Recipe = make([]entity.RecipeLine, len(item.Recipe))
	copy(out.Recipe, item.Recipe)

	return out
}

func cloneOrder(order entity.Order) entity.Order {
	out := order
	out.Lines = make([]entity.OrderLine, len(order.Lines))
	for i, line := range order.Lines {
		cloned := line
		switch item := line.Item.(type) {
		case entity.ManufacturedLine:
			cloned.Item = entity.ManufacturedLine{Item: cloneManufacturedItem(item.Item)}
		case entity.StockLine:
			cloned.Item = entity.StockLine{Item: cloneStockItem(item.Item)}
		}
		out.Lines[i] = cloned
	}

	if order.Courier != nil {
		courier := *order.Courier
		out.Courier = &courier
	}

	return out
}
