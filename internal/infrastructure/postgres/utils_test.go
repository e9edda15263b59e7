package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dailyfarm/market-api/internal/domain"
	"github.com/dailyfarm/market-api/internal/domain/entity"
)

// stubQuerier devuelve siempre el mismo error; alcanza para probar el mapeo
// de SQLSTATE de los repos sin una base real.
type stubQuerier struct {
	err error
}

func (s *stubQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, s.err
}

func (s *stubQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, s.err
}

func (s *stubQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func pgError(code string) error {
	return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code})
}

func TestDelete_ViolacionDeFK_DevuelveConflict(t *testing.T) {
	q := &stubQuerier{err: pgError("23503")}

	assert.ErrorIs(t, NewAccountRepository(q).Delete("ivan"), domain.ErrConflict)
	assert.ErrorIs(t, NewFarmerRepository(q).Delete("f1"), domain.ErrConflict)
	assert.ErrorIs(t, NewCustomerRepository(q).Delete("c1"), domain.ErrConflict)
}

func TestDelete_OtroErrorNoEsConflict(t *testing.T) {
	q := &stubQuerier{err: fmt.Errorf("conexión caída")}

	err := NewFarmerRepository(q).Delete("f1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

func TestCreateAccount_LoginDuplicado(t *testing.T) {
	q := &stubQuerier{err: pgError("23505")}

	err := NewAccountRepository(q).Create(&entity.Account{})
	assert.ErrorIs(t, err, domain.ErrLoginAlreadyExists)
}
