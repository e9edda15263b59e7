package repository

import "github.com/dailyfarm/market-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order (DIP).
// Las órdenes son append-only: no hay Update ni Delete.
type OrderRepository interface {
	Create(order *entity.Order) error
	ListSalesByFarmer(farmerID string) ([]*entity.Order, error)
	ListSalesByCustomer(customerID string) ([]*entity.Order, error)
	ListRemovalsByFarmer(farmerID string) ([]*entity.Order, error)
}
