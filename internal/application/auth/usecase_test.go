package auth

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyfarm/market-api/internal/application/dto"
	"github.com/dailyfarm/market-api/internal/domain"
	"github.com/dailyfarm/market-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeAccountRepo struct {
	byLogin map[string]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byLogin: make(map[string]*entity.Account)}
}

func (r *fakeAccountRepo) Create(a *entity.Account) error {
	if _, ok := r.byLogin[a.Login]; ok {
		return domain.ErrLoginAlreadyExists
	}
	cp := *a
	r.byLogin[a.Login] = &cp
	return nil
}

func (r *fakeAccountRepo) GetByLogin(login string) (*entity.Account, error) {
	a, ok := r.byLogin[login]
	if !ok {
		return nil, nil
	}
	cp := *a
	cp.LastHashes = append([]string(nil), a.LastHashes...)
	return &cp, nil
}

func (r *fakeAccountRepo) ExistsByLogin(login string) (bool, error) {
	_, ok := r.byLogin[login]
	return ok, nil
}

func (r *fakeAccountRepo) Update(a *entity.Account) error {
	cp := *a
	r.byLogin[a.Login] = &cp
	return nil
}

func (r *fakeAccountRepo) Delete(login string) error {
	delete(r.byLogin, login)
	return nil
}

type fakeFarmerRepo struct {
	byID map[string]*entity.Farmer
}

func newFakeFarmerRepo() *fakeFarmerRepo {
	return &fakeFarmerRepo{byID: make(map[string]*entity.Farmer)}
}

func (r *fakeFarmerRepo) Create(f *entity.Farmer) error {
	r.byID[f.ID] = f
	return nil
}

func (r *fakeFarmerRepo) GetByID(id string) (*entity.Farmer, error) {
	return r.byID[id], nil
}

func (r *fakeFarmerRepo) GetByLogin(login string) (*entity.Farmer, error) {
	for _, f := range r.byID {
		if f.Login == login {
			return f, nil
		}
	}
	return nil, nil
}

func (r *fakeFarmerRepo) List() ([]*entity.Farmer, error) {
	out := make([]*entity.Farmer, 0, len(r.byID))
	for _, f := range r.byID {
		out = append(out, f)
	}
	return out, nil
}

func (r *fakeFarmerRepo) Update(f *entity.Farmer) error { r.byID[f.ID] = f; return nil }
func (r *fakeFarmerRepo) Delete(id string) error        { delete(r.byID, id); return nil }

func (r *fakeFarmerRepo) CreditBalance(id string, amount decimal.Decimal) error {
	f, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	f.Balance = f.Balance.Add(amount)
	return nil
}

type fakeCustomerRepo struct {
	byID map[string]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byID: make(map[string]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.byID[id], nil
}

func (r *fakeCustomerRepo) GetByLogin(login string) (*entity.Customer, error) {
	for _, c := range r.byID {
		if c.Login == login {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) List() ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error { r.byID[c.ID] = c; return nil }
func (r *fakeCustomerRepo) Delete(id string) error          { delete(r.byID, id); return nil }

func (r *fakeCustomerRepo) CreditBalance(id string, amount decimal.Decimal) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Balance = c.Balance.Add(amount)
	return nil
}

func newTestUseCase() (*AuthUseCase, *fakeAccountRepo, *fakeFarmerRepo, *fakeCustomerRepo) {
	accounts := newFakeAccountRepo()
	farmers := newFakeFarmerRepo()
	customers := newFakeCustomerRepo()
	uc := NewAuthUseCase(accounts, farmers, customers,
		JWTConfig{Secret: "test-secret", ExpHours: 1, RefreshDays: 7, Issuer: "test"},
		Policy{MinLength: 5, History: 3})
	return uc, accounts, farmers, customers
}

func registerFarmer(t *testing.T, uc *AuthUseCase, login string) *dto.UserResponse {
	t.Helper()
	out, err := uc.Register(dto.RegisterRequest{
		Login:    login,
		Password: "secreto1",
		UserType: entity.TypeFarmer,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaCuentaYPerfilFarmer(t *testing.T) {
	uc, accounts, farmers, _ := newTestUseCase()

	out := registerFarmer(t, uc, "ivan")
	assert.Equal(t, "ivan", out.Login)
	assert.Equal(t, entity.TypeFarmer, out.UserType)
	assert.False(t, out.Revoked)

	stored, err := accounts.GetByLogin("ivan")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto1", stored.PasswordHash, "el password nunca se guarda en claro")

	farmer, err := farmers.GetByLogin("ivan")
	require.NoError(t, err)
	require.NotNil(t, farmer, "registrar un farmer crea su perfil")
	assert.True(t, farmer.Balance.IsZero())
}

func TestRegister_CreaPerfilCustomer(t *testing.T) {
	uc, _, _, customers := newTestUseCase()

	_, err := uc.Register(dto.RegisterRequest{Login: "maria", Password: "secreto1", UserType: entity.TypeCustomer})
	require.NoError(t, err)

	customer, err := customers.GetByLogin("maria")
	require.NoError(t, err)
	require.NotNil(t, customer)
}

func TestRegister_LoginDuplicado_Conflicto(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	registerFarmer(t, uc, "ivan")

	_, err := uc.Register(dto.RegisterRequest{Login: "ivan", Password: "otrosecreto", UserType: entity.TypeCustomer})
	assert.ErrorIs(t, err, domain.ErrLoginAlreadyExists)
}

func TestRegister_PasswordCorto_Politica(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	_, err := uc.Register(dto.RegisterRequest{Login: "ivan", Password: "abc", UserType: entity.TypeFarmer})
	assert.ErrorIs(t, err, domain.ErrPasswordPolicy)
}

func TestRegister_RolDesconocido_Invalido(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	_, err := uc.Register(dto.RegisterRequest{Login: "ivan", Password: "secreto1", UserType: "TYPE_WIZARD"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / Refresh
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas_DevuelvePar(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	registerFarmer(t, uc, "ivan")

	out, err := uc.Login(dto.LoginRequest{Login: "ivan", Password: "secreto1"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, "ivan", out.User.Login)
}

func TestLogin_PasswordIncorrecto_Unauthorized(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	registerFarmer(t, uc, "ivan")

	_, err := uc.Login(dto.LoginRequest{Login: "ivan", Password: "equivocado"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaInexistente_Unauthorized(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	_, err := uc.Login(dto.LoginRequest{Login: "nadie", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaRevocada_Forbidden(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	registerFarmer(t, uc, "ivan")
	require.NoError(t, uc.Revoke("ivan"))

	_, err := uc.Login(dto.LoginRequest{Login: "ivan", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrAccountRevoked)
}

func TestRefresh_TokenValido_DevuelveParNuevo(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	registerFarmer(t, uc, "ivan")

	login, err := uc.Login(dto.LoginRequest{Login: "ivan", Password: "secreto1"})
	require.NoError(t, err)

	out, err := uc.Refresh(dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
}

func TestRefresh_TokenBasura_Unauthorized(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	_, err := uc.Refresh(dto.RefreshRequest{RefreshToken: "no.es.jwt"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_AccessTokenNoSirveComoRefresh(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	registerFarmer(t, uc, "ivan")

	login, err := uc.Login(dto.LoginRequest{Login: "ivan", Password: "secreto1"})
	require.NoError(t, err)

	_, err = uc.Refresh(dto.RefreshRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "un access token firmado y vigente no refresca")
}

// ──────────────────────────────────────────────────────────────────────────────
// ChangePassword — política e historial acotado
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePassword_RechazaActualYRecientes(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	registerFarmer(t, uc, "ivan")

	// Igual al actual
	_, err := uc.ChangePassword("ivan", "secreto1")
	assert.ErrorIs(t, err, domain.ErrPasswordReused)

	// Cambio válido; el viejo pasa al historial y también se rechaza
	ok, err := uc.ChangePassword("ivan", "secreto2")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = uc.ChangePassword("ivan", "secreto1")
	assert.ErrorIs(t, err, domain.ErrPasswordReused)
}

func TestChangePassword_HistorialAcotadoEnN(t *testing.T) {
	uc, accounts, _, _ := newTestUseCase()
	registerFarmer(t, uc, "ivan")

	// Tres cambios llenan el historial (N = 3)
	for _, pw := range []string{"secreto2", "secreto3", "secreto4"} {
		ok, err := uc.ChangePassword("ivan", pw)
		require.NoError(t, err)
		require.True(t, ok)
	}
	account, err := accounts.GetByLogin("ivan")
	require.NoError(t, err)
	assert.Len(t, account.LastHashes, 3, "el historial nunca supera N")

	// El más antiguo ("secreto1") fue desalojado y vuelve a ser aceptable
	ok, err := uc.ChangePassword("ivan", "secreto1")
	require.NoError(t, err)
	assert.True(t, ok, "un password fuera de la ventana de historial se acepta de nuevo")

	account, err = accounts.GetByLogin("ivan")
	require.NoError(t, err)
	assert.Len(t, account.LastHashes, 3)
}

func TestChangePassword_PermiteLoginConElNuevo(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	registerFarmer(t, uc, "ivan")

	ok, err := uc.ChangePassword("ivan", "nuevosecreto")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = uc.Login(dto.LoginRequest{Login: "ivan", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "el password viejo deja de servir")

	_, err = uc.Login(dto.LoginRequest{Login: "ivan", Password: "nuevosecreto"})
	assert.NoError(t, err)
}

func TestChangePassword_PoliticaLargoMinimo(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	registerFarmer(t, uc, "ivan")

	_, err := uc.ChangePassword("ivan", "abc")
	assert.ErrorIs(t, err, domain.ErrPasswordPolicy)
}

func TestChangePassword_HistorialDeshabilitado(t *testing.T) {
	accounts := newFakeAccountRepo()
	uc := NewAuthUseCase(accounts, newFakeFarmerRepo(), newFakeCustomerRepo(),
		JWTConfig{Secret: "test-secret", ExpHours: 1, RefreshDays: 7, Issuer: "test"},
		Policy{MinLength: 5, History: 0})
	registerFarmer(t, uc, "ivan")

	ok, err := uc.ChangePassword("ivan", "secreto2")
	require.NoError(t, err)
	require.True(t, ok)

	account, err := accounts.GetByLogin("ivan")
	require.NoError(t, err)
	assert.Empty(t, account.LastHashes, "con History 0 no se guarda historial")

	// Solo el actual se rechaza; el anterior vuelve a ser válido de inmediato
	ok, err = uc.ChangePassword("ivan", "secreto1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestChangePassword_VentanaReducida_RecortaHistorial(t *testing.T) {
	uc, accounts, _, _ := newTestUseCase()
	registerFarmer(t, uc, "ivan")

	for _, pw := range []string{"secreto2", "secreto3", "secreto4"} {
		_, err := uc.ChangePassword("ivan", pw)
		require.NoError(t, err)
	}

	// El operador baja PASSWORD_HISTORY de 3 a 1 entre reinicios
	uc.policy.History = 1

	ok, err := uc.ChangePassword("ivan", "secreto3")
	require.NoError(t, err)
	assert.True(t, ok, "lo que quedó fuera de la ventana nueva deja de rechazarse")

	account, err := accounts.GetByLogin("ivan")
	require.NoError(t, err)
	assert.Len(t, account.LastHashes, 1, "el historial converge al nuevo N en un cambio")
}

// ──────────────────────────────────────────────────────────────────────────────
// Revoke / Activate
// ──────────────────────────────────────────────────────────────────────────────

func TestRevokeActivate_TogglesYConflictos(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	registerFarmer(t, uc, "ivan")

	// Activa de entrada: activar de nuevo es conflicto
	assert.ErrorIs(t, uc.Activate("ivan"), domain.ErrAlreadyActive)

	require.NoError(t, uc.Revoke("ivan"))
	assert.ErrorIs(t, uc.Revoke("ivan"), domain.ErrAlreadyRevoked)

	require.NoError(t, uc.Activate("ivan"))
	_, err := uc.Login(dto.LoginRequest{Login: "ivan", Password: "secreto1"})
	assert.NoError(t, err, "tras reactivar, el login vuelve a funcionar")
}

func TestRevoke_CuentaInexistente_NotFound(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	assert.ErrorIs(t, uc.Revoke("nadie"), domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Gestión de cuenta
// ──────────────────────────────────────────────────────────────────────────────

func TestEditUser_ActualizacionParcial(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	registerFarmer(t, uc, "ivan")

	first := "Iván"
	out, err := uc.EditUser("ivan", dto.EditUserRequest{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Iván", out.FirstName)
	assert.Equal(t, "", out.LastName, "los campos ausentes no se pisan")
}

func TestRemoveUser_DevuelveLoBorrado(t *testing.T) {
	uc, accounts, _, _ := newTestUseCase()
	registerFarmer(t, uc, "ivan")

	out, err := uc.RemoveUser("ivan")
	require.NoError(t, err)
	assert.Equal(t, "ivan", out.Login)

	stored, err := accounts.GetByLogin("ivan")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestGetUserType(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	registerFarmer(t, uc, "ivan")

	userType, err := uc.GetUserType("ivan")
	require.NoError(t, err)
	assert.Equal(t, entity.TypeFarmer, userType)

	_, err = uc.GetUserType("nadie")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
