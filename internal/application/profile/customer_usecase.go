package profile

import (
	"time"

	"github.com/dailyfarm/market-api/internal/application/dto"
	"github.com/dailyfarm/market-api/internal/domain"
	"github.com/dailyfarm/market-api/internal/domain/entity"
	"github.com/dailyfarm/market-api/internal/domain/repository"
)

// CustomerUseCase lecturas y mantenimiento del perfil de customer.
// El balance solo se mueve vía TopUp; las compras son cash-on-delivery.
type CustomerUseCase struct {
	accounts  repository.AccountRepository
	customers repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(accounts repository.AccountRepository, customers repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{accounts: accounts, customers: customers}
}

// Get devuelve el perfil por ID.
func (uc *CustomerUseCase) Get(customerID string) (*dto.CustomerResponse, error) {
	customer, err := uc.customers.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(customer)
}

// All lista todos los perfiles de customer.
func (uc *CustomerUseCase) All() ([]dto.CustomerResponse, error) {
	list, err := uc.customers.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		resp, err := uc.toResponse(c)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Update actualización parcial de los datos de contacto (viven en la cuenta).
func (uc *CustomerUseCase) Update(customerID string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customers.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	account, err := uc.accounts.GetByLogin(customer.Login)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.FirstName != nil {
		account.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		account.LastName = *in.LastName
	}
	if in.Email != nil {
		account.Email = *in.Email
	}
	account.UpdatedAt = time.Now()
	if err := uc.accounts.Update(account); err != nil {
		return nil, err
	}
	return uc.toResponse(customer)
}

// TopUp acredita amount (> 0) al balance del customer y devuelve el perfil actualizado.
func (uc *CustomerUseCase) TopUp(customerID string, in dto.TopUpRequest) (*dto.CustomerResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customers.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.customers.CreditBalance(customerID, in.Amount); err != nil {
		return nil, err
	}
	customer, err = uc.customers.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(customer)
}

func (uc *CustomerUseCase) toResponse(c *entity.Customer) (*dto.CustomerResponse, error) {
	account, err := uc.accounts.GetByLogin(c.Login)
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerResponse{
		ID:      c.ID,
		Login:   c.Login,
		Balance: c.Balance,
	}
	if account != nil {
		out.FirstName = account.FirstName
		out.LastName = account.LastName
		out.Email = account.Email
	}
	return out, nil
}
