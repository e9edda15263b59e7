package repository

import "github.com/dailyfarm/market-api/internal/domain/entity"

// AccountRepository define el puerto de persistencia para Account (DIP).
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByLogin(login string) (*entity.Account, error)
	ExistsByLogin(login string) (bool, error)
	// Update persiste todos los campos mutables, incluido el historial de hashes.
	Update(account *entity.Account) error
	Delete(login string) error
}
