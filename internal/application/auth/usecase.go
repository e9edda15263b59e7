package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/dailyfarm/market-api/internal/application/dto"
	"github.com/dailyfarm/market-api/internal/domain"
	"github.com/dailyfarm/market-api/internal/domain/entity"
	"github.com/dailyfarm/market-api/internal/domain/repository"
	"github.com/dailyfarm/market-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret      string
	ExpHours    int
	RefreshDays int
	Issuer      string
}

// Policy políticas de password.
type Policy struct {
	MinLength int // largo mínimo
	History   int // cuántos hashes anteriores se rechazan
}

// AuthUseCase casos de uso de cuentas: registro, login, refresh, password y lockout.
type AuthUseCase struct {
	accounts  repository.AccountRepository
	farmers   repository.FarmerRepository
	customers repository.CustomerRepository
	jwtCfg    JWTConfig
	policy    Policy
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(accounts repository.AccountRepository, farmers repository.FarmerRepository,
	customers repository.CustomerRepository, jwtCfg JWTConfig, policy Policy) *AuthUseCase {
	return &AuthUseCase{accounts: accounts, farmers: farmers, customers: customers, jwtCfg: jwtCfg, policy: policy}
}

// Register crea la cuenta y su perfil de rol (farmer o customer) como efecto colateral.
// Devuelve ErrLoginAlreadyExists si el login ya está tomado y ErrPasswordPolicy si el password es corto.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if len(in.Password) < uc.policy.MinLength {
		return nil, domain.ErrPasswordPolicy
	}
	switch in.UserType {
	case entity.TypeAdmin, entity.TypeFarmer, entity.TypeCustomer:
	default:
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.accounts.ExistsByLogin(in.Login)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrLoginAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	account := &entity.Account{
		ID:             uuid.New().String(),
		Login:          in.Login,
		PasswordHash:   string(hash),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		UserType:       in.UserType,
		ActivationDate: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Address != nil {
		account.Address = entity.Address{Country: in.Address.Country, City: in.Address.City, Street: in.Address.Street}
	}
	if err := uc.accounts.Create(account); err != nil {
		return nil, err
	}
	switch in.UserType {
	case entity.TypeFarmer:
		farmer := &entity.Farmer{
			ID:        uuid.New().String(),
			AccountID: account.ID,
			Login:     account.Login,
			Balance:   decimal.Zero,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.farmers.Create(farmer); err != nil {
			return nil, err
		}
	case entity.TypeCustomer:
		customer := &entity.Customer{
			ID:        uuid.New().String(),
			AccountID: account.ID,
			Login:     account.Login,
			Balance:   decimal.Zero,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.customers.Create(customer); err != nil {
			return nil, err
		}
	}
	return toUserResponse(account), nil
}

// Login verifica credenciales y genera el par access/refresh con subject y rol.
// Cuenta revocada devuelve ErrAccountRevoked; credenciales malas, ErrUnauthorized.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	account, err := uc.accounts.GetByLogin(in.Login)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !account.CanAuthenticate() {
		return nil, domain.ErrAccountRevoked
	}
	pair, err := jwt.GeneratePair(uc.jwtCfg.Secret, account.ID, account.Login, account.UserType,
		uc.jwtCfg.Issuer, uc.jwtCfg.ExpHours, uc.jwtCfg.RefreshDays)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         *toUserResponse(account),
	}, nil
}

// Refresh emite un par nuevo a partir de un refresh token válido.
// Un access token no sirve como refresh. Revalida que la cuenta siga
// existiendo y no esté revocada.
func (uc *AuthUseCase) Refresh(in dto.RefreshRequest) (*dto.TokenResponse, error) {
	_, login, _, err := jwt.ParseRefresh(uc.jwtCfg.Secret, in.RefreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	account, err := uc.accounts.GetByLogin(login)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUnauthorized
	}
	if !account.CanAuthenticate() {
		return nil, domain.ErrAccountRevoked
	}
	pair, err := jwt.GeneratePair(uc.jwtCfg.Secret, account.ID, account.Login, account.UserType,
		uc.jwtCfg.Issuer, uc.jwtCfg.ExpHours, uc.jwtCfg.RefreshDays)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// ChangePassword rechaza passwords que violen la política, igualen el actual
// o igualen alguno de los que siguen dentro de la ventana de historial. Al
// aceptar, empuja el hash viejo al historial y renueva ActivationDate.
// Con History <= 0 no se guarda historial y solo se rechaza el actual.
func (uc *AuthUseCase) ChangePassword(login, newPassword string) (bool, error) {
	if len(newPassword) < uc.policy.MinLength {
		return false, domain.ErrPasswordPolicy
	}
	account, err := uc.accounts.GetByLogin(login)
	if err != nil {
		return false, err
	}
	if account == nil {
		return false, domain.ErrUserNotFound
	}
	// Se recorta el historial a la ventana vigente antes de chequear reuso:
	// si History bajó entre reinicios, lo desalojado deja de rechazarse.
	history := account.LastHashes
	if uc.policy.History <= 0 {
		history = nil
	} else if excess := len(history) - (uc.policy.History - 1); excess > 0 {
		history = history[excess:]
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(newPassword)) == nil {
		return false, domain.ErrPasswordReused
	}
	for _, h := range history {
		if bcrypt.CompareHashAndPassword([]byte(h), []byte(newPassword)) == nil {
			return false, domain.ErrPasswordReused
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	if uc.policy.History > 0 {
		history = append(history, account.PasswordHash)
	}
	account.LastHashes = history
	account.PasswordHash = string(hash)
	account.ActivationDate = time.Now()
	account.UpdatedAt = time.Now()
	if err := uc.accounts.Update(account); err != nil {
		return false, err
	}
	return true, nil
}

// Revoke marca la cuenta como revocada. Ya revocada devuelve ErrAlreadyRevoked.
func (uc *AuthUseCase) Revoke(login string) error {
	account, err := uc.accounts.GetByLogin(login)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrUserNotFound
	}
	if account.Revoked {
		return domain.ErrAlreadyRevoked
	}
	account.Revoked = true
	account.UpdatedAt = time.Now()
	return uc.accounts.Update(account)
}

// Activate levanta la revocación y renueva ActivationDate. Ya activa devuelve ErrAlreadyActive.
func (uc *AuthUseCase) Activate(login string) error {
	account, err := uc.accounts.GetByLogin(login)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrUserNotFound
	}
	if !account.Revoked {
		return domain.ErrAlreadyActive
	}
	account.Revoked = false
	account.ActivationDate = time.Now()
	account.UpdatedAt = time.Now()
	return uc.accounts.Update(account)
}

// GetUser devuelve la cuenta por login.
func (uc *AuthUseCase) GetUser(login string) (*dto.UserResponse, error) {
	account, err := uc.accounts.GetByLogin(login)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(account), nil
}

// EditUser actualización parcial de nombre.
func (uc *AuthUseCase) EditUser(login string, in dto.EditUserRequest) (*dto.UserResponse, error) {
	account, err := uc.accounts.GetByLogin(login)
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
	account.UpdatedAt = time.Now()
	if err := uc.accounts.Update(account); err != nil {
		return nil, err
	}
	return toUserResponse(account), nil
}

// RemoveUser elimina la cuenta (los perfiles caen por FK en cascada) y devuelve lo borrado.
func (uc *AuthUseCase) RemoveUser(login string) (*dto.UserResponse, error) {
	account, err := uc.accounts.GetByLogin(login)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUserNotFound
	}
	out := toUserResponse(account)
	if err := uc.accounts.Delete(login); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUserType devuelve el tag de rol de la cuenta.
func (uc *AuthUseCase) GetUserType(login string) (string, error) {
	account, err := uc.accounts.GetByLogin(login)
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", domain.ErrUserNotFound
	}
	return account.UserType, nil
}

func toUserResponse(a *entity.Account) *dto.UserResponse {
	if a == nil {
		return nil
	}
	out := &dto.UserResponse{
		Login:          a.Login,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		Email:          a.Email,
		Phone:          a.Phone,
		UserType:       a.UserType,
		Revoked:        a.Revoked,
		ActivationDate: a.ActivationDate,
	}
	if a.Address != (entity.Address{}) {
		out.Address = &dto.AddressDto{Country: a.Address.Country, City: a.Address.City, Street: a.Address.Street}
	}
	return out
}
