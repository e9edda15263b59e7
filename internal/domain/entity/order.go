package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order registro inmutable de venta o de retiro de producto (append-only).
// IsRemoval distingue el retiro/auditoría (costo 0, sin customer) de una venta real.
type Order struct {
	ID         string
	ProductID  string
	CustomerID *string // nil en retiros
	FarmerID   string
	Quantity   int
	Cost       decimal.Decimal
	OrderDate  time.Time
	IsRemoval  bool
}
