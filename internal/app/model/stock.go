package model

import "github.com/shopspring/decimal"

type StockAdjustmentRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

type StockMovementResponse struct {
	Quantity decimal.Decimal `json:"quantity"`
	At       string          `json:"at"`
	Increase bool            `json:"increase"`
}

type StockItemResponse struct {
	ID           string                  `json:"id"`
	Denomination string                  `json:"denomination"`
	CurrentStock decimal.Decimal         `json:"current_stock"`
	UpdatedAt    string                  `json:"updated_at"`
	Movements    []StockMovementResponse `json:"movements"`
}
