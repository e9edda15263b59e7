package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Farmer perfil de vendedor, extensión uno-a-uno de una Account con rol TYPE_FARMER.
// Balance acumula lo cobrado por ventas (se acredita dentro de la tx de compra).
type Farmer struct {
	ID              string
	AccountID       string
	Login           string
	AdditionalPhone string
	Balance         decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
