package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dailyfarm/market-api/internal/domain"
	"github.com/dailyfarm/market-api/internal/domain/entity"
	"github.com/dailyfarm/market-api/internal/domain/repository"
)

var _ repository.FarmerRepository = (*FarmerRepo)(nil)

// FarmerRepo implementación de FarmerRepository sobre PostgreSQL (usable con pool o tx).
type FarmerRepo struct {
	q Querier
}

// NewFarmerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFarmerRepository(q Querier) *FarmerRepo {
	return &FarmerRepo{q: q}
}

const farmerColumns = `id, account_id, login, additional_phone, balance, created_at, updated_at`

// Create persiste un perfil de farmer nuevo.
func (r *FarmerRepo) Create(farmer *entity.Farmer) error {
	query := `
		INSERT INTO farmers (` + farmerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		farmer.ID, farmer.AccountID, farmer.Login, farmer.AdditionalPhone, farmer.Balance,
		farmer.CreatedAt, farmer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert farmer: %w", err)
	}
	return nil
}

// GetByID obtiene un farmer por ID. Devuelve nil si no existe.
func (r *FarmerRepo) GetByID(id string) (*entity.Farmer, error) {
	return r.get(`SELECT `+farmerColumns+` FROM farmers WHERE id = $1`, id)
}

// GetByLogin obtiene un farmer por el login de su cuenta. Devuelve nil si no existe.
func (r *FarmerRepo) GetByLogin(login string) (*entity.Farmer, error) {
	return r.get(`SELECT `+farmerColumns+` FROM farmers WHERE login = $1`, login)
}

func (r *FarmerRepo) get(query string, arg any) (*entity.Farmer, error) {
	var f entity.Farmer
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&f.ID, &f.AccountID, &f.Login, &f.AdditionalPhone, &f.Balance, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get farmer: %w", err)
	}
	return &f, nil
}

// List devuelve todos los perfiles de farmer.
func (r *FarmerRepo) List() ([]*entity.Farmer, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+farmerColumns+` FROM farmers ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list farmers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Farmer
	for rows.Next() {
		var f entity.Farmer
		if err := rows.Scan(&f.ID, &f.AccountID, &f.Login, &f.AdditionalPhone, &f.Balance,
			&f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan farmer: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Update persiste los campos mutables del perfil.
func (r *FarmerRepo) Update(farmer *entity.Farmer) error {
	query := `
		UPDATE farmers SET additional_phone = $2, updated_at = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, farmer.ID, farmer.AdditionalPhone, farmer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update farmer: %w", err)
	}
	return nil
}

// Delete elimina el perfil por ID. Devuelve ErrConflict si sus productos
// siguen referenciados por órdenes.
func (r *FarmerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM farmers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete farmer: %w", err)
	}
	return nil
}

// CreditBalance suma amount al balance (dentro de la tx de compra).
func (r *FarmerRepo) CreditBalance(id string, amount decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE farmers SET balance = balance + $2, updated_at = now() WHERE id = $1`,
		id, amount,
	)
	if err != nil {
		return fmt.Errorf("credit farmer balance: %w", err)
	}
	return nil
}
