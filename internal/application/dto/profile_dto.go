package dto

import "github.com/shopspring/decimal"

// FarmerResponse perfil de farmer con los datos de contacto de su cuenta.
type FarmerResponse struct {
	ID              string          `json:"id"`
	Login           string          `json:"login"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Phone           string          `json:"phone"`
	AdditionalPhone string          `json:"additional_phone,omitempty"`
	Address         *AddressDto     `json:"address,omitempty"`
	Balance         decimal.Decimal `json:"balance"`
}

// UpdateFarmerRequest actualización parcial del perfil de farmer.
type UpdateFarmerRequest struct {
	Phone           *string     `json:"phone,omitempty"`
	AdditionalPhone *string     `json:"additional_phone,omitempty"`
	Address         *AddressDto `json:"address,omitempty"`
}

// CustomerResponse perfil de customer con los datos de contacto de su cuenta.
type CustomerResponse struct {
	ID        string          `json:"id"`
	Login     string          `json:"login"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Balance   decimal.Decimal `json:"balance"`
}

// UpdateCustomerRequest actualización parcial del perfil de customer.
type UpdateCustomerRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// TopUpRequest recarga de balance del customer.
type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
