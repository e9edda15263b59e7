package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dailyfarm/market-api/internal/domain/entity"
	"github.com/dailyfarm/market-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, farmer_id, name, quantity, price, img_url, is_surprise_bag,
	start_time, end_time, deleted, created_at, updated_at`

// Create persiste una publicación nueva.
func (r *ProductRepo) Create(product *entity.ProductItem) error {
	query := `
		INSERT INTO product_items (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.FarmerID, product.Name, product.Quantity, product.Price,
		product.ImgURL, product.IsSurpriseBag, product.StartTime, product.EndTime,
		product.Deleted, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.ProductItem, error) {
	query := `SELECT ` + productColumns + ` FROM product_items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE); usar dentro de una tx.
func (r *ProductRepo) GetForUpdate(id string) (*entity.ProductItem, error) {
	query := `SELECT ` + productColumns + ` FROM product_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.ProductItem, error) {
	var p entity.ProductItem
	err := row.Scan(
		&p.ID, &p.FarmerID, &p.Name, &p.Quantity, &p.Price, &p.ImgURL, &p.IsSurpriseBag,
		&p.StartTime, &p.EndTime, &p.Deleted, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update persiste los campos mutables de la publicación (no toca deleted ni farmer_id).
func (r *ProductRepo) Update(product *entity.ProductItem) error {
	query := `
		UPDATE product_items
		SET name = $2, quantity = $3, price = $4, img_url = $5, start_time = $6, end_time = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Quantity, product.Price, product.ImgURL,
		product.StartTime, product.EndTime, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// DecrementQuantity descuenta qty solo si hay stock suficiente y la publicación no está borrada.
// Devuelve false cuando la condición no se cumplió (cero filas afectadas).
func (r *ProductRepo) DecrementQuantity(id string, qty int) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE product_items
		 SET quantity = quantity - $2, updated_at = now()
		 WHERE id = $1 AND quantity >= $2 AND NOT deleted`,
		id, qty,
	)
	if err != nil {
		return false, fmt.Errorf("decrement product quantity: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// MarkDeleted aplica soft-delete; el registro se conserva por integridad del historial.
func (r *ProductRepo) MarkDeleted(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE product_items SET deleted = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark product deleted: %w", err)
	}
	return nil
}

// ListByFarmer lista las publicaciones no borradas de un farmer.
func (r *ProductRepo) ListByFarmer(farmerID string) ([]*entity.ProductItem, error) {
	query := `
		SELECT ` + productColumns + ` FROM product_items
		WHERE farmer_id = $1 AND NOT deleted ORDER BY created_at DESC`
	return r.list(query, farmerID)
}

// ListByPriceRange lista productos no borrados con precio en [min, max].
func (r *ProductRepo) ListByPriceRange(min, max decimal.Decimal) ([]*entity.ProductItem, error) {
	query := `
		SELECT ` + productColumns + ` FROM product_items
		WHERE price BETWEEN $1 AND $2 AND NOT deleted ORDER BY price`
	return r.list(query, min, max)
}

// ListAll lista todas las publicaciones no borradas.
func (r *ProductRepo) ListAll() ([]*entity.ProductItem, error) {
	query := `SELECT ` + productColumns + ` FROM product_items WHERE NOT deleted ORDER BY created_at DESC`
	return r.list(query)
}

// ListSurpriseBags lista las surprise bags no borradas; la ventana la evalúa el caso de uso.
func (r *ProductRepo) ListSurpriseBags() ([]*entity.ProductItem, error) {
	query := `
		SELECT ` + productColumns + ` FROM product_items
		WHERE is_surprise_bag AND NOT deleted ORDER BY end_time`
	return r.list(query)
}

// ListExpiredSurpriseBagsForUpdate bloquea y devuelve las bags vencidas a la hora dada.
// Serializa el barrido contra compras concurrentes de la misma fila.
func (r *ProductRepo) ListExpiredSurpriseBagsForUpdate(now time.Time) ([]*entity.ProductItem, error) {
	query := `
		SELECT ` + productColumns + ` FROM product_items
		WHERE is_surprise_bag AND NOT deleted AND end_time < $1
		FOR UPDATE`
	return r.list(query, now)
}

// ListSoldByFarmer devuelve los productos distintos referenciados por órdenes de venta del farmer.
func (r *ProductRepo) ListSoldByFarmer(farmerID string) ([]*entity.ProductItem, error) {
	query := `
		SELECT DISTINCT ON (p.id) ` + prefixedProductColumns("p") + `
		FROM product_items p
		JOIN orders o ON o.product_id = p.id
		WHERE o.farmer_id = $1 AND NOT o.is_removal
		ORDER BY p.id`
	return r.list(query, farmerID)
}

func (r *ProductRepo) list(query string, args ...any) ([]*entity.ProductItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductItem
	for rows.Next() {
		var p entity.ProductItem
		if err := rows.Scan(&p.ID, &p.FarmerID, &p.Name, &p.Quantity, &p.Price, &p.ImgURL,
			&p.IsSurpriseBag, &p.StartTime, &p.EndTime, &p.Deleted, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func prefixedProductColumns(alias string) string {
	return alias + `.id, ` + alias + `.farmer_id, ` + alias + `.name, ` + alias + `.quantity, ` +
		alias + `.price, ` + alias + `.img_url, ` + alias + `.is_surprise_bag, ` + alias + `.start_time, ` +
		alias + `.end_time, ` + alias + `.deleted, ` + alias + `.created_at, ` + alias + `.updated_at`
}
