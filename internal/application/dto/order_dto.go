package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BuyRequest compra de un producto por parte de un customer.
type BuyRequest struct {
	CustomerID string `json:"customer_id"`
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
}

// BuySurpriseBagRequest compra de una surprise bag (cantidad fija 1).
type BuySurpriseBagRequest struct {
	CustomerID string `json:"customer_id"`
	ProductID  string `json:"product_id"`
}

// OrderResponse orden de venta o de retiro.
type OrderResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	CustomerID *string         `json:"customer_id,omitempty"`
	FarmerID   string          `json:"farmer_id"`
	Quantity   int             `json:"quantity"`
	Cost       decimal.Decimal `json:"cost"`
	OrderDate  time.Time       `json:"order_date"`
	IsRemoval  bool            `json:"is_removal"`
}
