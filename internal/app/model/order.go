package model

type OrderLineRequest struct {
	Quantity           int64  `json:"quantity"`
	ManufacturedItemID string `json:"manufactured_item_id,omitempty"`
	StockItemID        string `json:"stock_item_id,omitempty"`
}

type CreateOrderRequest struct {
	CustomerUID   string             `json:"customer_uid"`
	IsDelivery    bool               `json:"is_delivery"`
	PaymentMethod string             `json:"payment_method"`
	Lines         []OrderLineRequest `json:"lines"`
}

type AdvanceStateRequest struct {
	State string `json:"state"`
}

type AssignCourierRequest struct {
	EmployeeID string `json:"employee_id"`
}

type OrderLineResponse struct {
	ID                 string `json:"id"`
	Quantity           int64  `json:"quantity"`
	ManufacturedItemID string `json:"manufactured_item_id,omitempty"`
	StockItemID        string `json:"stock_item_id,omitempty"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerUID   string              `json:"customer_uid"`
	State         string              `json:"state"`
	Outcome       string              `json:"outcome,omitempty"`
	CreatedAt     string              `json:"created_at"`
	UpdatedAt     string              `json:"updated_at"`
	PrepMinutes   int                 `json:"prep_minutes"`
	PromisedAt    string              `json:"promised_at"`
	IsDelivery    bool                `json:"is_delivery"`
	PaymentMethod string              `json:"payment_method"`
	CourierID     string              `json:"courier_id,omitempty"`
	Lines         []OrderLineResponse `json:"lines"`
}
