package postgres

import (
	"context"
	"fmt"

	"github.com/dailyfarm/market-api/internal/domain/entity"
	"github.com/dailyfarm/market-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
// Las órdenes son append-only: solo INSERT y lecturas.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, product_id, customer_id, farmer_id, quantity, cost, order_date, is_removal`

// Create persiste una orden (venta o retiro).
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.ProductID, order.CustomerID, order.FarmerID,
		order.Quantity, order.Cost, order.OrderDate, order.IsRemoval,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// ListSalesByFarmer devuelve las órdenes de venta (no retiros) de un farmer.
func (r *OrderRepo) ListSalesByFarmer(farmerID string) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE farmer_id = $1 AND NOT is_removal ORDER BY order_date DESC`
	return r.list(query, farmerID)
}

// ListSalesByCustomer devuelve las órdenes de venta de un customer.
func (r *OrderRepo) ListSalesByCustomer(customerID string) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE customer_id = $1 AND NOT is_removal ORDER BY order_date DESC`
	return r.list(query, customerID)
}

// ListRemovalsByFarmer devuelve las órdenes de retiro (auditoría) de un farmer.
func (r *OrderRepo) ListRemovalsByFarmer(farmerID string) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE farmer_id = $1 AND is_removal ORDER BY order_date DESC`
	return r.list(query, farmerID)
}

func (r *OrderRepo) list(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.ProductID, &o.CustomerID, &o.FarmerID,
			&o.Quantity, &o.Cost, &o.OrderDate, &o.IsRemoval); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
