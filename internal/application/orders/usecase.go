package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dailyfarm/market-api/internal/application/dto"
	"github.com/dailyfarm/market-api/internal/domain"
	"github.com/dailyfarm/market-api/internal/domain/entity"
	"github.com/dailyfarm/market-api/internal/domain/repository"
)

// Reintentos acotados ante ErrTxConflict antes de devolver Conflict al caller.
const maxTxRetries = 3

// TxRunner ejecuta fn dentro de una transacción con los repos de venta atados a la tx.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(products repository.ProductRepository, orders repository.OrderRepository, farmers repository.FarmerRepository) error) error
}

// OrderUseCase compras y consultas de historial. El chequeo-y-descuento de stock corre
// bajo SELECT FOR UPDATE dentro de una sola transacción: dos compras concurrentes de la
// última unidad se serializan y a lo sumo una gana.
type OrderUseCase struct {
	customers repository.CustomerRepository
	farmers   repository.FarmerRepository
	products  repository.ProductRepository
	orders    repository.OrderRepository
	tx        TxRunner
}

// NewOrderUseCase construye el caso de uso de órdenes.
func NewOrderUseCase(customers repository.CustomerRepository, farmers repository.FarmerRepository,
	products repository.ProductRepository, orders repository.OrderRepository, tx TxRunner) *OrderUseCase {
	return &OrderUseCase{customers: customers, farmers: farmers, products: products, orders: orders, tx: tx}
}

// Buy compra quantity unidades: descuenta stock, acredita el costo al balance del farmer
// y persiste la orden de venta, todo en una transacción. Stock insuficiente o producto
// no disponible devuelven ErrConflict sin tocar nada.
func (uc *OrderUseCase) Buy(ctx context.Context, callerLogin string, in dto.BuyRequest) (*dto.OrderResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.resolveCustomer(callerLogin, in.CustomerID)
	if err != nil {
		return nil, err
	}
	return uc.purchase(ctx, customer, in.ProductID, in.Quantity, false)
}

// BuySurpriseBag compra exactamente 1 unidad de una surprise bag.
// Producto que no es surprise bag devuelve ErrNotSurpriseBag.
func (uc *OrderUseCase) BuySurpriseBag(ctx context.Context, callerLogin string, in dto.BuySurpriseBagRequest) (*dto.OrderResponse, error) {
	customer, err := uc.resolveCustomer(callerLogin, in.CustomerID)
	if err != nil {
		return nil, err
	}
	return uc.purchase(ctx, customer, in.ProductID, 1, true)
}

func (uc *OrderUseCase) resolveCustomer(callerLogin, customerID string) (*entity.Customer, error) {
	customer, err := uc.customers.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	// Solo se puede comprar como uno mismo.
	if customer.Login != callerLogin {
		return nil, domain.ErrForbidden
	}
	return customer, nil
}

func (uc *OrderUseCase) purchase(ctx context.Context, customer *entity.Customer, productID string, quantity int, surpriseBag bool) (*dto.OrderResponse, error) {
	var out *dto.OrderResponse
	var err error
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err = uc.tx.RunSale(ctx, func(products repository.ProductRepository, orders repository.OrderRepository, farmers repository.FarmerRepository) error {
			product, err := products.GetForUpdate(productID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if surpriseBag && !product.IsSurpriseBag {
				return domain.ErrNotSurpriseBag
			}
			if !product.IsAvailableAt(time.Now()) || product.Quantity < quantity {
				return domain.ErrConflict
			}
			ok, err := products.DecrementQuantity(productID, quantity)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrConflict
			}
			cost := product.Price.Mul(decimal.NewFromInt(int64(quantity)))
			if err := farmers.CreditBalance(product.FarmerID, cost); err != nil {
				return err
			}
			customerID := customer.ID
			order := &entity.Order{
				ID:         uuid.New().String(),
				ProductID:  product.ID,
				CustomerID: &customerID,
				FarmerID:   product.FarmerID,
				Quantity:   quantity,
				Cost:       cost,
				OrderDate:  time.Now(),
			}
			if err := orders.Create(order); err != nil {
				return err
			}
			out = toOrderResponse(order)
			return nil
		})
		if !errors.Is(err, domain.ErrTxConflict) {
			break
		}
	}
	if errors.Is(err, domain.ErrTxConflict) {
		// Se agotaron los reintentos: al caller le llega Conflict.
		return nil, domain.ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SoldProducts devuelve los productos distintos vendidos por el farmer; solo el dueño puede verlos.
func (uc *OrderUseCase) SoldProducts(callerLogin, farmerID string) ([]dto.ProductResponse, error) {
	farmer, err := uc.farmers.GetByID(farmerID)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, domain.ErrNotFound
	}
	if farmer.Login != callerLogin {
		return nil, domain.ErrForbidden
	}
	list, err := uc.products.ListSoldByFarmer(farmerID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProductResponse{
			ID:            p.ID,
			FarmerID:      p.FarmerID,
			Name:          p.Name,
			Quantity:      p.Quantity,
			Price:         p.Price,
			ImgURL:        p.ImgURL,
			IsSurpriseBag: p.IsSurpriseBag,
			StartTime:     p.StartTime,
			EndTime:       p.EndTime,
			Available:     p.IsAvailableAt(now),
		})
	}
	return out, nil
}

// PurchaseHistory devuelve las órdenes de venta (no retiros) de un customer.
func (uc *OrderUseCase) PurchaseHistory(customerID string) ([]dto.OrderResponse, error) {
	customer, err := uc.customers.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.orders.ListSalesByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// RemovalHistory devuelve las órdenes de retiro de un farmer (auditoría de RemoveProduct y del barrido).
func (uc *OrderUseCase) RemovalHistory(farmerID string) ([]dto.OrderResponse, error) {
	farmer, err := uc.farmers.GetByID(farmerID)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.orders.ListRemovalsByFarmer(farmerID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:         o.ID,
		ProductID:  o.ProductID,
		CustomerID: o.CustomerID,
		FarmerID:   o.FarmerID,
		Quantity:   o.Quantity,
		Cost:       o.Cost,
		OrderDate:  o.OrderDate,
		IsRemoval:  o.IsRemoval,
	}
}

func toOrderResponses(list []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOrderResponse(o))
	}
	return out
}
