package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyfarm/market-api/internal/application/dto"
	"github.com/dailyfarm/market-api/internal/domain"
	"github.com/dailyfarm/market-api/internal/domain/entity"
	"github.com/dailyfarm/market-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	byID map[string]*entity.ProductItem
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[string]*entity.ProductItem)}
}

func (r *fakeProductRepo) Create(p *entity.ProductItem) error { r.byID[p.ID] = p; return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.ProductItem, error) { return r.byID[id], nil }

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.ProductItem, error) {
	return r.byID[id], nil
}

func (r *fakeProductRepo) Update(p *entity.ProductItem) error { r.byID[p.ID] = p; return nil }

func (r *fakeProductRepo) DecrementQuantity(id string, qty int) (bool, error) {
	p, ok := r.byID[id]
	if !ok || p.Deleted || p.Quantity < qty {
		return false, nil
	}
	p.Quantity -= qty
	return true, nil
}

func (r *fakeProductRepo) MarkDeleted(id string) error {
	if p, ok := r.byID[id]; ok {
		p.Deleted = true
	}
	return nil
}

func (r *fakeProductRepo) ListByFarmer(farmerID string) ([]*entity.ProductItem, error) {
	var out []*entity.ProductItem
	for _, p := range r.byID {
		if p.FarmerID == farmerID && !p.Deleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListByPriceRange(min, max decimal.Decimal) ([]*entity.ProductItem, error) {
	var out []*entity.ProductItem
	for _, p := range r.byID {
		if !p.Deleted && p.Price.GreaterThanOrEqual(min) && p.Price.LessThanOrEqual(max) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListAll() ([]*entity.ProductItem, error) {
	var out []*entity.ProductItem
	for _, p := range r.byID {
		if !p.Deleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListSurpriseBags() ([]*entity.ProductItem, error) {
	var out []*entity.ProductItem
	for _, p := range r.byID {
		if p.IsSurpriseBag && !p.Deleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListExpiredSurpriseBagsForUpdate(now time.Time) ([]*entity.ProductItem, error) {
	var out []*entity.ProductItem
	for _, p := range r.byID {
		if p.IsSurpriseBag && !p.Deleted && p.EndTime != nil && p.EndTime.Before(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListSoldByFarmer(farmerID string) ([]*entity.ProductItem, error) {
	return nil, nil
}

type fakeOrderRepo struct {
	all []*entity.Order
}

func (r *fakeOrderRepo) Create(o *entity.Order) error { r.all = append(r.all, o); return nil }

func (r *fakeOrderRepo) ListSalesByFarmer(farmerID string) ([]*entity.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) ListSalesByCustomer(customerID string) ([]*entity.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) ListRemovalsByFarmer(farmerID string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.all {
		if o.FarmerID == farmerID && o.IsRemoval {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeFarmerRepo struct {
	byID map[string]*entity.Farmer
}

func newFakeFarmerRepo() *fakeFarmerRepo {
	return &fakeFarmerRepo{byID: make(map[string]*entity.Farmer)}
}

func (r *fakeFarmerRepo) Create(f *entity.Farmer) error { r.byID[f.ID] = f; return nil }

func (r *fakeFarmerRepo) GetByID(id string) (*entity.Farmer, error) { return r.byID[id], nil }

func (r *fakeFarmerRepo) GetByLogin(login string) (*entity.Farmer, error) {
	for _, f := range r.byID {
		if f.Login == login {
			return f, nil
		}
	}
	return nil, nil
}

func (r *fakeFarmerRepo) List() ([]*entity.Farmer, error) { return nil, nil }

func (r *fakeFarmerRepo) Update(f *entity.Farmer) error { r.byID[f.ID] = f; return nil }

func (r *fakeFarmerRepo) Delete(id string) error { delete(r.byID, id); return nil }

func (r *fakeFarmerRepo) CreditBalance(id string, amount decimal.Decimal) error {
	f, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	f.Balance = f.Balance.Add(amount)
	return nil
}

// fakeTxRunner pasa los repos en memoria directo a fn.
type fakeTxRunner struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(products repository.ProductRepository, orders repository.OrderRepository) error) error {
	return fn(r.products, r.orders)
}

type fixture struct {
	uc       *CatalogUseCase
	products *fakeProductRepo
	orders   *fakeOrderRepo
	farmers  *fakeFarmerRepo
	farmer   *entity.Farmer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	products := newFakeProductRepo()
	ordersRepo := &fakeOrderRepo{}
	farmers := newFakeFarmerRepo()
	farmer := &entity.Farmer{ID: "f1", Login: "ivan", Balance: decimal.Zero}
	require.NoError(t, farmers.Create(farmer))
	tx := &fakeTxRunner{products: products, orders: ordersRepo}
	return &fixture{
		uc:       NewCatalogUseCase(products, farmers, tx),
		products: products,
		orders:   ordersRepo,
		farmers:  farmers,
		farmer:   farmer,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta y actualización
// ──────────────────────────────────────────────────────────────────────────────

func TestAddProduct_AtadoAlFarmerDelCaller(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.AddProduct("ivan", dto.AddProductRequest{
		Name:     "tomates",
		Quantity: 10,
		Price:    decimal.RequireFromString("2.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "f1", out.FarmerID)
	assert.True(t, out.Available, "con stock y sin borrar, disponible")
}

func TestAddProduct_SinPerfilFarmer_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.AddProduct("desconocido", dto.AddProductRequest{Name: "tomates", Quantity: 1, Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddProduct_DatosInvalidos(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.AddProduct("ivan", dto.AddProductRequest{Name: "", Quantity: 1, Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.AddProduct("ivan", dto.AddProductRequest{Name: "x", Quantity: -1, Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProduct_ParcialYSoloDueno(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.AddProduct("ivan", dto.AddProductRequest{Name: "tomates", Quantity: 10, Price: decimal.NewFromInt(2)})
	require.NoError(t, err)

	// Otro farmer no puede tocar la publicación
	require.NoError(t, f.farmers.Create(&entity.Farmer{ID: "f2", Login: "otro"}))
	_, err = f.uc.UpdateProduct("otro", dto.UpdateProductRequest{ProductID: created.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Actualización parcial: solo pisa lo presente, cantidad negativa se ignora
	name := "tomates cherry"
	negative := -5
	ok, err := f.uc.UpdateProduct("ivan", dto.UpdateProductRequest{ProductID: created.ID, Name: &name, Quantity: &negative})
	require.NoError(t, err)
	assert.True(t, ok)

	stored, _ := f.products.GetByID(created.ID)
	assert.Equal(t, "tomates cherry", stored.Name)
	assert.Equal(t, 10, stored.Quantity, "cantidad negativa no pisa")
}

func TestUpdateProduct_PrecioNegativoSeIgnora(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.AddProduct("ivan", dto.AddProductRequest{Name: "tomates", Quantity: 10, Price: decimal.NewFromInt(2)})
	require.NoError(t, err)

	negative := decimal.NewFromInt(-3)
	ok, err := f.uc.UpdateProduct("ivan", dto.UpdateProductRequest{ProductID: created.ID, Price: &negative})
	require.NoError(t, err)
	assert.True(t, ok)

	stored, _ := f.products.GetByID(created.ID)
	assert.True(t, decimal.NewFromInt(2).Equal(stored.Price), "precio negativo no pisa")
}

func TestUpdateProduct_VentanaSoloEnSurpriseBags(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.AddProduct("ivan", dto.AddProductRequest{Name: "tomates", Quantity: 10, Price: decimal.NewFromInt(2)})
	require.NoError(t, err)

	start := time.Now()
	ok, err := f.uc.UpdateProduct("ivan", dto.UpdateProductRequest{ProductID: created.ID, StartTime: &start})
	require.NoError(t, err)
	assert.True(t, ok)

	stored, _ := f.products.GetByID(created.ID)
	assert.Nil(t, stored.StartTime, "un producto común no gana ventana")
}

// ──────────────────────────────────────────────────────────────────────────────
// Retiro
// ──────────────────────────────────────────────────────────────────────────────

func TestRemoveProduct_SoftDeleteMasOrdenDeRetiro(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.AddProduct("ivan", dto.AddProductRequest{Name: "tomates", Quantity: 7, Price: decimal.NewFromInt(2)})
	require.NoError(t, err)

	out, err := f.uc.RemoveProduct(context.Background(), "ivan", created.ID, "f1")
	require.NoError(t, err)
	assert.True(t, out.IsRemoval)
	assert.True(t, out.Cost.IsZero(), "la orden de retiro tiene costo 0")
	assert.Equal(t, 7, out.Quantity)
	assert.Nil(t, out.CustomerID)

	stored, _ := f.products.GetByID(created.ID)
	require.NotNil(t, stored, "soft-delete: el registro se conserva")
	assert.True(t, stored.Deleted)
	assert.False(t, stored.IsAvailableAt(time.Now()))

	removals, err := f.orders.ListRemovalsByFarmer("f1")
	require.NoError(t, err)
	assert.Len(t, removals, 1, "exactamente una orden de retiro")
}

func TestRemoveProduct_CallerNoEsElFarmerDelPath_Forbidden(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.AddProduct("ivan", dto.AddProductRequest{Name: "tomates", Quantity: 1, Price: decimal.NewFromInt(2)})
	require.NoError(t, err)

	_, err = f.uc.RemoveProduct(context.Background(), "intruso", created.ID, "f1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRemoveProduct_ProductoDeOtroFarmer_NotFound(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.farmers.Create(&entity.Farmer{ID: "f2", Login: "otro"}))
	created, err := f.uc.AddProduct("ivan", dto.AddProductRequest{Name: "tomates", Quantity: 1, Price: decimal.NewFromInt(2)})
	require.NoError(t, err)

	_, err = f.uc.RemoveProduct(context.Background(), "otro", created.ID, "f2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Surprise bags
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSurpriseBag_PrecioFijoYVentana(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	out, err := f.uc.CreateSurpriseBag("ivan", dto.CreateSurpriseBagRequest{
		StartTime: now,
		EndTime:   now.Add(time.Hour),
		Quantity:  5,
	})
	require.NoError(t, err)
	assert.True(t, out.IsSurpriseBag)
	assert.Equal(t, "Surprise Bag", out.Name)
	assert.True(t, out.Price.Equal(decimal.NewFromInt(5)), "precio fijo de surprise bag")
	require.NotNil(t, out.StartTime)
	require.NotNil(t, out.EndTime)
}

func TestCreateSurpriseBag_VentanaInvertida_Invalida(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	_, err := f.uc.CreateSurpriseBag("ivan", dto.CreateSurpriseBagRequest{
		StartTime: now,
		EndTime:   now.Add(-time.Hour),
		Quantity:  5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAvailableSurpriseBags_FiltraPorVentanaYStock(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	// Vigente con stock
	live, err := f.uc.CreateSurpriseBag("ivan", dto.CreateSurpriseBagRequest{
		StartTime: now.Add(-time.Minute), EndTime: now.Add(time.Hour), Quantity: 3,
	})
	require.NoError(t, err)
	// Futura: aún fuera de ventana
	_, err = f.uc.CreateSurpriseBag("ivan", dto.CreateSurpriseBagRequest{
		StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour), Quantity: 3,
	})
	require.NoError(t, err)
	// Vigente pero sin stock
	_, err = f.uc.CreateSurpriseBag("ivan", dto.CreateSurpriseBagRequest{
		StartTime: now.Add(-time.Minute), EndTime: now.Add(time.Hour), Quantity: 0,
	})
	require.NoError(t, err)

	available, err := f.uc.AvailableSurpriseBags()
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, live.ID, available[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Barrido
// ──────────────────────────────────────────────────────────────────────────────

func TestSweepExpired_RetiraVencidasYDejaAuditoria(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	expired, err := f.uc.CreateSurpriseBag("ivan", dto.CreateSurpriseBagRequest{
		StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour), Quantity: 4,
	})
	require.NoError(t, err)
	live, err := f.uc.CreateSurpriseBag("ivan", dto.CreateSurpriseBagRequest{
		StartTime: now.Add(-time.Minute), EndTime: now.Add(time.Hour), Quantity: 4,
	})
	require.NoError(t, err)
	normal, err := f.uc.AddProduct("ivan", dto.AddProductRequest{Name: "tomates", Quantity: 4, Price: decimal.NewFromInt(2)})
	require.NoError(t, err)

	swept, err := f.uc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, swept)

	expiredStored, _ := f.products.GetByID(expired.ID)
	assert.True(t, expiredStored.Deleted, "la bag vencida queda retirada")

	liveStored, _ := f.products.GetByID(live.ID)
	assert.False(t, liveStored.Deleted, "la bag vigente queda intacta")
	normalStored, _ := f.products.GetByID(normal.ID)
	assert.False(t, normalStored.Deleted, "los productos comunes no se barren")

	removals, err := f.orders.ListRemovalsByFarmer("f1")
	require.NoError(t, err)
	require.Len(t, removals, 1, "el barrido deja orden de retiro")
	assert.True(t, removals[0].Cost.IsZero())
	assert.Equal(t, 4, removals[0].Quantity)
}

func TestSweepExpired_SinVencidas_NoHaceNada(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	_, err := f.uc.CreateSurpriseBag("ivan", dto.CreateSurpriseBagRequest{
		StartTime: now, EndTime: now.Add(time.Hour), Quantity: 4,
	})
	require.NoError(t, err)

	swept, err := f.uc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, swept)
	assert.Empty(t, f.orders.all)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestProductsByPriceRange_RangoInvertido_Invalido(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.ProductsByPriceRange(decimal.NewFromInt(10), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductsByFarmer_ExcluyeBorrados(t *testing.T) {
	f := newFixture(t)
	kept, err := f.uc.AddProduct("ivan", dto.AddProductRequest{Name: "tomates", Quantity: 1, Price: decimal.NewFromInt(2)})
	require.NoError(t, err)
	removed, err := f.uc.AddProduct("ivan", dto.AddProductRequest{Name: "papas", Quantity: 1, Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	_, err = f.uc.RemoveProduct(context.Background(), "ivan", removed.ID, "f1")
	require.NoError(t, err)

	list, err := f.uc.ProductsByFarmer("f1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, kept.ID, list[0].ID)
}
