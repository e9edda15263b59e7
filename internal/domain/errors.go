package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrLoginAlreadyExists = errors.New("el login ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrAccountRevoked     = errors.New("cuenta revocada")
	ErrAlreadyRevoked     = errors.New("la cuenta ya está revocada")
	ErrAlreadyActive      = errors.New("la cuenta ya está activa")
	ErrPasswordPolicy     = errors.New("el password no cumple la política mínima")
	ErrPasswordReused     = errors.New("el password coincide con uno anterior")
	ErrNotSurpriseBag     = errors.New("el producto no es una surprise bag")
	// ErrTxConflict señala un fallo serializable/deadlock de la transacción; el caso de uso reintenta acotado.
	ErrTxConflict = errors.New("conflicto de transacción, reintentar")
)
