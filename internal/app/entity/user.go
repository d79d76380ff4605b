package entity

import "github.com/google/uuid"

const (
	RoleCook    = "cook"
	RoleCourier = "courier"
)

// Customer is resolved by its external UID when an order is created.
type Customer struct {
	ID      uuid.UUID
	UID     string
	Name    string
	Surname string
}

type Employee struct {
	ID   uuid.UUID
	Name string
	Role string
}
