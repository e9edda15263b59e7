package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dailyfarm/market-api/internal/application/dto"
	"github.com/dailyfarm/market-api/internal/application/profile"
	"github.com/dailyfarm/market-api/internal/domain"
)

// FarmerHandler maneja el perfil de farmer.
type FarmerHandler struct {
	uc *profile.FarmerUseCase
}

// NewFarmerHandler construye el handler.
func NewFarmerHandler(uc *profile.FarmerUseCase) *FarmerHandler {
	return &FarmerHandler{uc: uc}
}

// All godoc
// @Summary      Listar farmers
// @Tags         farmer
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FarmerResponse
// @Router       /api/farmer/all [get]
func (h *FarmerHandler) All(c *fiber.Ctx) error {
	out, err := h.uc.All()
	if err != nil {
		return profileError(c, err)
	}
	return c.JSON(out)
}

// ByProduct godoc
// @Summary      Farmer dueño de un producto
// @Tags         farmer
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {object}  dto.FarmerResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/farmer/byProduct/{productId} [get]
func (h *FarmerHandler) ByProduct(c *fiber.Ctx) error {
	out, err := h.uc.GetByProduct(c.Params("productId"))
	if err != nil {
		return profileError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener farmer por ID
// @Tags         farmer
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del farmer"
// @Success      200  {object}  dto.FarmerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/farmer/{id} [get]
func (h *FarmerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return profileError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar perfil de farmer
// @Tags         farmer
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del farmer"
// @Param        body  body  dto.UpdateFarmerRequest  true  "campos a pisar"
// @Success      200   {object}  dto.FarmerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/farmer/{id} [put]
func (h *FarmerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFarmerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return profileError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar farmer (admin)
// @Tags         farmer
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del farmer"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/farmer/{id} [delete]
func (h *FarmerHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(id); err != nil {
		return profileError(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "status": "deleted"})
}

// Balance godoc
// @Summary      Balance acumulado por ventas
// @Tags         farmer
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del farmer"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/farmer/{id}/balance [get]
func (h *FarmerHandler) Balance(c *fiber.Ctx) error {
	id := c.Params("id")
	balance, err := h.uc.Balance(id)
	if err != nil {
		return profileError(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "balance": balance})
}

func profileError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "perfil no encontrado"})
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el perfil tiene historial de órdenes asociado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
