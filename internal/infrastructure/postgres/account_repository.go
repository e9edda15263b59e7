package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dailyfarm/market-api/internal/domain"
	"github.com/dailyfarm/market-api/internal/domain/entity"
	"github.com/dailyfarm/market-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de persistencia para cuentas. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, login, password_hash, first_name, last_name, email, phone,
	country, city, street, user_type, revoked, activation_date, last_hashes, created_at, updated_at`

// Create persiste una cuenta nueva. Login duplicado devuelve ErrLoginAlreadyExists.
func (r *AccountRepo) Create(account *entity.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.Login, account.PasswordHash, account.FirstName, account.LastName,
		account.Email, account.Phone, account.Address.Country, account.Address.City, account.Address.Street,
		account.UserType, account.Revoked, account.ActivationDate, account.LastHashes,
		account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrLoginAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByLogin obtiene una cuenta por login. Devuelve nil si no existe.
func (r *AccountRepo) GetByLogin(login string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE login = $1`
	var a entity.Account
	err := r.q.QueryRow(context.Background(), query, login).Scan(
		&a.ID, &a.Login, &a.PasswordHash, &a.FirstName, &a.LastName, &a.Email, &a.Phone,
		&a.Address.Country, &a.Address.City, &a.Address.Street, &a.UserType, &a.Revoked,
		&a.ActivationDate, &a.LastHashes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

// ExistsByLogin indica si el login ya está tomado.
func (r *AccountRepo) ExistsByLogin(login string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE login = $1)`, login,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists account: %w", err)
	}
	return exists, nil
}

// Update persiste los campos mutables de la cuenta, incluido el historial de hashes.
func (r *AccountRepo) Update(account *entity.Account) error {
	query := `
		UPDATE accounts
		SET password_hash = $2, first_name = $3, last_name = $4, email = $5, phone = $6,
			country = $7, city = $8, street = $9, revoked = $10, activation_date = $11,
			last_hashes = $12, updated_at = $13
		WHERE login = $1`
	_, err := r.q.Exec(context.Background(), query,
		account.Login, account.PasswordHash, account.FirstName, account.LastName, account.Email,
		account.Phone, account.Address.Country, account.Address.City, account.Address.Street,
		account.Revoked, account.ActivationDate, account.LastHashes, account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// Delete elimina la cuenta por login; los perfiles caen por FK en cascada.
// Si la cascada choca con órdenes que referencian productos, devuelve ErrConflict.
func (r *AccountRepo) Delete(login string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM accounts WHERE login = $1`, login)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
