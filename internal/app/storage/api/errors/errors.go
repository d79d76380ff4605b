package storage

import "errors"

var (
	ErrStockItemNotFound        = errors.New("stock item with given id doesn't exist in storage")
	ErrManufacturedItemNotFound = errors.New("manufactured item with given id doesn't exist in storage")
	ErrCustomerNotFound         = errors.New("customer with given uid doesn't exist in storage")
	ErrOrderNotFound            = errors.New("order with given id doesn't exist in storage")
	ErrStateNotFound            = errors.New("state with given denomination doesn't exist in storage")
	ErrEmployeeNotFound         = errors.New("employee with given id doesn't exist in storage")
)
