package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dailyfarm/market-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para ProductItem (DIP).
type ProductRepository interface {
	Create(product *entity.ProductItem) error
	GetByID(id string) (*entity.ProductItem, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE); solo tiene sentido dentro de una tx.
	GetForUpdate(id string) (*entity.ProductItem, error)
	Update(product *entity.ProductItem) error
	// DecrementQuantity descuenta qty de forma condicional (quantity >= qty y no borrado).
	// Devuelve false si la condición no se cumplió y no se descontó nada.
	DecrementQuantity(id string, qty int) (bool, error)
	// MarkDeleted aplica soft-delete; el registro se conserva por integridad del historial.
	MarkDeleted(id string) error
	ListByFarmer(farmerID string) ([]*entity.ProductItem, error)
	ListByPriceRange(min, max decimal.Decimal) ([]*entity.ProductItem, error)
	ListAll() ([]*entity.ProductItem, error)
	// ListSurpriseBags devuelve las surprise bags no borradas (el filtro de ventana lo aplica el caso de uso).
	ListSurpriseBags() ([]*entity.ProductItem, error)
	// ListExpiredSurpriseBagsForUpdate bloquea y devuelve las bags vencidas a la hora dada (para el barrido).
	ListExpiredSurpriseBagsForUpdate(now time.Time) ([]*entity.ProductItem, error)
	// ListSoldByFarmer devuelve los productos distintos referenciados por órdenes de venta del farmer.
	ListSoldByFarmer(farmerID string) ([]*entity.ProductItem, error)
}
