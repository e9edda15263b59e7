package entity

import "time"

// Tipos de cuenta. El claim de rol del JWT usa estos mismos valores.
const (
	TypeAdmin    = "TYPE_ADMIN"
	TypeFarmer   = "TYPE_FARMER"
	TypeCustomer = "TYPE_CUSTOMER"
)

// Address dirección postal embebida en la cuenta.
type Address struct {
	Country string
	City    string
	Street  string
}

// Account representa la identidad persistida de un usuario: un solo entity con tag de rol
// más un perfil opcional (Farmer/Customer) seleccionado por rol al leer.
type Account struct {
	ID             string
	Login          string // único en todo el sistema
	PasswordHash   string // bcrypt, nunca plano en dominio después de persistir
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Address        Address
	UserType       string // TYPE_ADMIN | TYPE_FARMER | TYPE_CUSTOMER
	Revoked        bool   // cuenta revocada no puede autenticarse
	ActivationDate time.Time
	LastHashes     []string // historial acotado de hashes anteriores (anti-reuso)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanAuthenticate indica si la cuenta puede iniciar sesión.
func (a *Account) CanAuthenticate() bool {
	return !a.Revoked
}
