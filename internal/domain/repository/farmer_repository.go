package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dailyfarm/market-api/internal/domain/entity"
)

// FarmerRepository define el puerto de persistencia para Farmer (DIP).
type FarmerRepository interface {
	Create(farmer *entity.Farmer) error
	GetByID(id string) (*entity.Farmer, error)
	GetByLogin(login string) (*entity.Farmer, error)
	List() ([]*entity.Farmer, error)
	Update(farmer *entity.Farmer) error
	Delete(id string) error
	// CreditBalance suma amount al balance del farmer (usado dentro de la tx de compra).
	CreditBalance(id string, amount decimal.Decimal) error
}
