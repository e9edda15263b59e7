package dto

import "time"

// RegisterRequest datos de registro de una cuenta nueva.
type RegisterRequest struct {
	Login     string      `json:"login"`
	Password  string      `json:"password"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	UserType  string      `json:"user_type"` // TYPE_ADMIN | TYPE_FARMER | TYPE_CUSTOMER
	Address   *AddressDto `json:"address,omitempty"`
}

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse par de tokens más el usuario autenticado.
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// RefreshRequest pide un par de tokens nuevo a partir del refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse par de tokens sin usuario (refresh).
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest cambio de password del usuario autenticado.
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// EditUserRequest actualización parcial de nombre.
type EditUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// UserResponse cuenta sin campos sensibles (nunca expone hashes).
type UserResponse struct {
	Login          string      `json:"login"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	UserType       string      `json:"user_type"`
	Revoked        bool        `json:"revoked"`
	ActivationDate time.Time   `json:"activation_date"`
	Address        *AddressDto `json:"address,omitempty"`
}
