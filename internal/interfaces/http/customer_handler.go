package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dailyfarm/market-api/internal/application/dto"
	"github.com/dailyfarm/market-api/internal/application/profile"
	"github.com/dailyfarm/market-api/internal/domain"
)

// CustomerHandler maneja el perfil de customer.
type CustomerHandler struct {
	uc *profile.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *profile.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// All godoc
// @Summary      Listar customers (admin)
// @Tags         customer
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/customer/all [get]
func (h *CustomerHandler) All(c *fiber.Ctx) error {
	out, err := h.uc.All()
	if err != nil {
		return profileError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener customer por ID
// @Tags         customer
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del customer"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customer/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return profileError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar perfil de customer
// @Tags         customer
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del customer"
// @Param        body  body  dto.UpdateCustomerRequest  true  "campos a pisar"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customer/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return profileError(c, err)
	}
	return c.JSON(out)
}

// TopUp godoc
// @Summary      Recargar balance del customer
// @Tags         customer
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del customer"
// @Param        body  body  dto.TopUpRequest  true  "amount > 0"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customer/{id}/top-up [post]
func (h *CustomerHandler) TopUp(c *fiber.Ctx) error {
	var in dto.TopUpRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.TopUp(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount debe ser mayor que cero"})
		}
		return profileError(c, err)
	}
	return c.JSON(out)
}
