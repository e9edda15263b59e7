package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dailyfarm/market-api/internal/application/dto"
	"github.com/dailyfarm/market-api/internal/domain"
	"github.com/dailyfarm/market-api/internal/domain/entity"
	"github.com/dailyfarm/market-api/internal/domain/repository"
)

// Precio fijo de toda surprise bag nueva.
var surpriseBagPrice = decimal.NewFromInt(5)

const surpriseBagImgURL = "https://cdn.daily-farm.dev/surprise_bag.jpg"

// TxRunner ejecuta fn dentro de una transacción con repos de catálogo atados a la tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(products repository.ProductRepository, orders repository.OrderRepository) error) error
}

// CatalogUseCase CRUD de publicaciones de un farmer, incluida la variante surprise bag.
// El retiro de un producto es soft-delete más una orden de retiro de costo 0 (auditoría),
// ambos dentro de la misma transacción.
type CatalogUseCase struct {
	products repository.ProductRepository
	farmers  repository.FarmerRepository
	tx       TxRunner
}

// NewCatalogUseCase construye el caso de uso de catálogo.
func NewCatalogUseCase(products repository.ProductRepository, farmers repository.FarmerRepository, tx TxRunner) *CatalogUseCase {
	return &CatalogUseCase{products: products, farmers: farmers, tx: tx}
}

// AddProduct crea una publicación atada al perfil farmer del caller.
func (uc *CatalogUseCase) AddProduct(callerLogin string, in dto.AddProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Quantity < 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	farmer, err := uc.farmers.GetByLogin(callerLogin)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	product := &entity.ProductItem{
		ID:        uuid.New().String(),
		FarmerID:  farmer.ID,
		Name:      in.Name,
		Quantity:  in.Quantity,
		Price:     in.Price,
		ImgURL:    in.ImgURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, now), nil
}

// UpdateProduct actualización parcial: solo pisan los campos presentes; cantidad y precio negativos se ignoran.
// La ventana de validez solo se toca en surprise bags. Devuelve ErrForbidden si el caller no es el dueño.
func (uc *CatalogUseCase) UpdateProduct(callerLogin string, in dto.UpdateProductRequest) (bool, error) {
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, domain.ErrNotFound
	}
	farmer, err := uc.farmers.GetByLogin(callerLogin)
	if err != nil {
		return false, err
	}
	if farmer == nil {
		return false, domain.ErrNotFound
	}
	if product.FarmerID != farmer.ID {
		return false, domain.ErrForbidden
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Quantity != nil && *in.Quantity >= 0 {
		product.Quantity = *in.Quantity
	}
	if in.Price != nil && !in.Price.IsNegative() {
		product.Price = *in.Price
	}
	if in.ImgURL != nil {
		product.ImgURL = *in.ImgURL
	}
	if product.IsSurpriseBag {
		if in.StartTime != nil {
			product.StartTime = in.StartTime
		}
		if in.EndTime != nil {
			product.EndTime = in.EndTime
		}
	}
	product.UpdatedAt = time.Now()
	if err := uc.products.Update(product); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveProduct verifica la propiedad contra el farmerId del path y contra el dueño resuelto,
// marca soft-delete y escribe la orden de retiro de costo 0, todo en una transacción.
func (uc *CatalogUseCase) RemoveProduct(ctx context.Context, callerLogin, productID, farmerID string) (*dto.OrderResponse, error) {
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
	var out *dto.OrderResponse
	err = uc.tx.Run(ctx, func(products repository.ProductRepository, orders repository.OrderRepository) error {
		product, err := products.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.FarmerID != farmerID {
			return domain.ErrNotFound
		}
		if err := products.MarkDeleted(productID); err != nil {
			return err
		}
		order := &entity.Order{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			FarmerID:  farmerID,
			Quantity:  product.Quantity,
			Cost:      decimal.Zero,
			OrderDate: time.Now(),
			IsRemoval: true,
		}
		if err := orders.Create(order); err != nil {
			return err
		}
		out = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct devuelve un producto por ID.
func (uc *CatalogUseCase) GetProduct(id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product, time.Now()), nil
}

// ProductsByFarmer lista las publicaciones de un farmer existente.
func (uc *CatalogUseCase) ProductsByFarmer(farmerID string) ([]dto.ProductResponse, error) {
	farmer, err := uc.farmers.GetByID(farmerID)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.products.ListByFarmer(farmerID)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// ProductsByPriceRange lista productos con precio dentro de [min, max].
func (uc *CatalogUseCase) ProductsByPriceRange(min, max decimal.Decimal) ([]dto.ProductResponse, error) {
	if max.LessThan(min) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.products.ListByPriceRange(min, max)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// AllProducts lista todas las publicaciones no borradas.
func (uc *CatalogUseCase) AllProducts() ([]dto.ProductResponse, error) {
	list, err := uc.products.ListAll()
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// CreateSurpriseBag crea una publicación marcada como surprise bag, con precio fijo
// y la ventana de validez dada.
func (uc *CatalogUseCase) CreateSurpriseBag(callerLogin string, in dto.CreateSurpriseBagRequest) (*dto.ProductResponse, error) {
	if in.Quantity < 0 || !in.EndTime.After(in.StartTime) {
		return nil, domain.ErrInvalidInput
	}
	farmer, err := uc.farmers.GetByLogin(callerLogin)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	start := in.StartTime
	end := in.EndTime
	bag := &entity.ProductItem{
		ID:            uuid.New().String(),
		FarmerID:      farmer.ID,
		Name:          "Surprise Bag",
		Quantity:      in.Quantity,
		Price:         surpriseBagPrice,
		ImgURL:        surpriseBagImgURL,
		IsSurpriseBag: true,
		StartTime:     &start,
		EndTime:       &end,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.products.Create(bag); err != nil {
		return nil, err
	}
	return toProductResponse(bag, now), nil
}

// AvailableSurpriseBags evalúa el predicado de disponibilidad al momento de la consulta
// (no es estado cacheado).
func (uc *CatalogUseCase) AvailableSurpriseBags() ([]dto.ProductResponse, error) {
	bags, err := uc.products.ListSurpriseBags()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.ProductResponse, 0, len(bags))
	for _, b := range bags {
		if b.IsAvailableAt(now) {
			out = append(out, *toProductResponse(b, now))
		}
	}
	return out, nil
}

// SweepExpired retira las surprise bags con ventana vencida: soft-delete más orden de retiro,
// igual que un retiro manual, para conservar la auditoría. Devuelve cuántas retiró.
func (uc *CatalogUseCase) SweepExpired(ctx context.Context) (int, error) {
	swept := 0
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, orders repository.OrderRepository) error {
		expired, err := products.ListExpiredSurpriseBagsForUpdate(time.Now())
		if err != nil {
			return err
		}
		for _, bag := range expired {
			if err := products.MarkDeleted(bag.ID); err != nil {
				return err
			}
			order := &entity.Order{
				ID:        uuid.New().String(),
				ProductID: bag.ID,
				FarmerID:  bag.FarmerID,
				Quantity:  bag.Quantity,
				Cost:      decimal.Zero,
				OrderDate: time.Now(),
				IsRemoval: true,
			}
			if err := orders.Create(order); err != nil {
				return err
			}
		}
		swept = len(expired)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return swept, nil
}

func toProductResponse(p *entity.ProductItem, now time.Time) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
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
	}
}

func toProductResponses(list []*entity.ProductItem) []dto.ProductResponse {
	now := time.Now()
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p, now))
	}
	return out
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
