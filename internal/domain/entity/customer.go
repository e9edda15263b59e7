package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer perfil de comprador, extensión uno-a-uno de una Account con rol TYPE_CUSTOMER.
// Balance se recarga vía top-up; las compras no lo debitan (cash-on-delivery).
type Customer struct {
	ID        string
	AccountID string
	Login     string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
