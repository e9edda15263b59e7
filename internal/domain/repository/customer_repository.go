package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dailyfarm/market-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByLogin(login string) (*entity.Customer, error)
	List() ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
	// CreditBalance suma amount al balance del customer (top-up).
	CreditBalance(id string, amount decimal.Decimal) error
}
