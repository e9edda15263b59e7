package profile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dailyfarm/market-api/internal/application/dto"
	"github.com/dailyfarm/market-api/internal/domain"
	"github.com/dailyfarm/market-api/internal/domain/entity"
	"github.com/dailyfarm/market-api/internal/domain/repository"
)

// FarmerUseCase lecturas y mantenimiento del perfil de farmer.
// Los datos de contacto viven en la Account; el perfil aporta balance y teléfono adicional.
type FarmerUseCase struct {
	accounts repository.AccountRepository
	farmers  repository.FarmerRepository
	products repository.ProductRepository
}

// NewFarmerUseCase construye el caso de uso.
func NewFarmerUseCase(accounts repository.AccountRepository, farmers repository.FarmerRepository,
	products repository.ProductRepository) *FarmerUseCase {
	return &FarmerUseCase{accounts: accounts, farmers: farmers, products: products}
}

// Get devuelve el perfil por ID.
func (uc *FarmerUseCase) Get(farmerID string) (*dto.FarmerResponse, error) {
	farmer, err := uc.farmers.GetByID(farmerID)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(farmer)
}

// GetByProduct resuelve el farmer dueño de un producto.
func (uc *FarmerUseCase) GetByProduct(productID string) (*dto.FarmerResponse, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	farmer, err := uc.farmers.GetByID(product.FarmerID)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(farmer)
}

// All lista todos los perfiles de farmer.
func (uc *FarmerUseCase) All() ([]dto.FarmerResponse, error) {
	list, err := uc.farmers.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.FarmerResponse, 0, len(list))
	for _, f := range list {
		resp, err := uc.toResponse(f)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Update actualización parcial: phone y address van a la cuenta; additional_phone al perfil.
func (uc *FarmerUseCase) Update(farmerID string, in dto.UpdateFarmerRequest) (*dto.FarmerResponse, error) {
	farmer, err := uc.farmers.GetByID(farmerID)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, domain.ErrNotFound
	}
	account, err := uc.accounts.GetByLogin(farmer.Login)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Phone != nil {
		account.Phone = *in.Phone
	}
	if in.Address != nil {
		account.Address = entity.Address{Country: in.Address.Country, City: in.Address.City, Street: in.Address.Street}
	}
	if in.AdditionalPhone != nil {
		farmer.AdditionalPhone = *in.AdditionalPhone
	}
	account.UpdatedAt = time.Now()
	farmer.UpdatedAt = time.Now()
	if err := uc.accounts.Update(account); err != nil {
		return nil, err
	}
	if err := uc.farmers.Update(farmer); err != nil {
		return nil, err
	}
	return uc.toResponse(farmer)
}

// Delete elimina la cuenta del farmer; el perfil y sus productos quedan sujetos a las FK.
func (uc *FarmerUseCase) Delete(farmerID string) error {
	farmer, err := uc.farmers.GetByID(farmerID)
	if err != nil {
		return err
	}
	if farmer == nil {
		return domain.ErrNotFound
	}
	return uc.accounts.Delete(farmer.Login)
}

// Balance devuelve el balance acumulado por ventas.
func (uc *FarmerUseCase) Balance(farmerID string) (decimal.Decimal, error) {
	farmer, err := uc.farmers.GetByID(farmerID)
	if err != nil {
		return decimal.Zero, err
	}
	if farmer == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return farmer.Balance, nil
}

func (uc *FarmerUseCase) toResponse(f *entity.Farmer) (*dto.FarmerResponse, error) {
	account, err := uc.accounts.GetByLogin(f.Login)
	if err != nil {
		return nil, err
	}
	out := &dto.FarmerResponse{
		ID:              f.ID,
		Login:           f.Login,
		AdditionalPhone: f.AdditionalPhone,
		Balance:         f.Balance,
	}
	if account != nil {
		out.FirstName = account.FirstName
		out.LastName = account.LastName
		out.Phone = account.Phone
		if account.Address != (entity.Address{}) {
			out.Address = &dto.AddressDto{Country: account.Address.Country, City: account.Address.City, Street: account.Address.Street}
		}
	}
	return out, nil
}
