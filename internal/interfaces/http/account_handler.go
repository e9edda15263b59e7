package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dailyfarm/market-api/internal/application/auth"
	"github.com/dailyfarm/market-api/internal/application/dto"
	"github.com/dailyfarm/market-api/internal/domain"
)

// AccountHandler maneja la gestión de cuentas autenticadas: perfil propio,
// password, revocación y borrado (admin).
type AccountHandler struct {
	uc *auth.AuthUseCase
}

// NewAccountHandler construye el handler de cuentas.
func NewAccountHandler(uc *auth.AuthUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Me godoc
// @Summary      Cuenta del caller
// @Tags         user
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/user/me [get]
func (h *AccountHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.GetUser(GetLogin(c))
	if err != nil {
		return accountError(c, err)
	}
	return c.JSON(out)
}

// Edit godoc
// @Summary      Editar nombre del caller
// @Tags         user
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EditUserRequest  true  "campos a pisar"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/user/me [put]
func (h *AccountHandler) Edit(c *fiber.Ctx) error {
	var in dto.EditUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.EditUser(GetLogin(c), in)
	if err != nil {
		return accountError(c, err)
	}
	return c.JSON(out)
}

// ChangePassword godoc
// @Summary      Cambiar password del caller
// @Tags         user
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "new_password"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/password [put]
func (h *AccountHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ok, err := h.uc.ChangePassword(GetLogin(c), in.NewPassword)
	if err != nil {
		if errors.Is(err, domain.ErrPasswordPolicy) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password no cumple la política de largo mínimo"})
		}
		if errors.Is(err, domain.ErrPasswordReused) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PASSWORD_REUSED", Message: "el password coincide con el actual o con uno reciente"})
		}
		return accountError(c, err)
	}
	return c.JSON(fiber.Map{"changed": ok})
}

// UserType godoc
// @Summary      Rol de una cuenta
// @Tags         user
// @Security     Bearer
// @Produce      json
// @Param        login  path  string  true  "login"
// @Success      200    {object}  map[string]string
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/userType/{login} [get]
func (h *AccountHandler) UserType(c *fiber.Ctx) error {
	login := c.Params("login")
	if login == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_LOGIN", Message: "login es requerido"})
	}
	userType, err := h.uc.GetUserType(login)
	if err != nil {
		return accountError(c, err)
	}
	return c.JSON(fiber.Map{"login": login, "user_type": userType})
}

// Revoke godoc
// @Summary      Revocar una cuenta (admin)
// @Tags         user
// @Security     Bearer
// @Produce      json
// @Param        login  path  string  true  "login"
// @Success      200    {object}  map[string]string
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/revoke/{login} [put]
func (h *AccountHandler) Revoke(c *fiber.Ctx) error {
	login := c.Params("login")
	if err := h.uc.Revoke(login); err != nil {
		if errors.Is(err, domain.ErrAlreadyRevoked) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_REVOKED", Message: "la cuenta ya está revocada"})
		}
		return accountError(c, err)
	}
	return c.JSON(fiber.Map{"login": login, "status": "revoked"})
}

// Activate godoc
// @Summary      Reactivar una cuenta (admin)
// @Tags         user
// @Security     Bearer
// @Produce      json
// @Param        login  path  string  true  "login"
// @Success      200    {object}  map[string]string
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/activate/{login} [put]
func (h *AccountHandler) Activate(c *fiber.Ctx) error {
	login := c.Params("login")
	if err := h.uc.Activate(login); err != nil {
		if errors.Is(err, domain.ErrAlreadyActive) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_ACTIVE", Message: "la cuenta ya está activa"})
		}
		return accountError(c, err)
	}
	return c.JSON(fiber.Map{"login": login, "status": "active"})
}

// Remove godoc
// @Summary      Eliminar una cuenta (admin)
// @Tags         user
// @Security     Bearer
// @Produce      json
// @Param        login  path  string  true  "login"
// @Success      200    {object}  dto.UserResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/user/{login} [delete]
func (h *AccountHandler) Remove(c *fiber.Ctx) error {
	login := c.Params("login")
	out, err := h.uc.RemoveUser(login)
	if err != nil {
		return accountError(c, err)
	}
	return c.JSON(out)
}

func accountError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cuenta no encontrada"})
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la cuenta tiene historial de órdenes asociado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
