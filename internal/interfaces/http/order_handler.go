package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dailyfarm/market-api/internal/application/dto"
	"github.com/dailyfarm/market-api/internal/application/orders"
	"github.com/dailyfarm/market-api/internal/domain"
)

// OrderHandler maneja compras e historiales.
type OrderHandler struct {
	uc *orders.OrderUseCase
}

// NewOrderHandler construye el handler de órdenes.
func NewOrderHandler(uc *orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Buy godoc
// @Summary      Comprar producto (customer)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BuyRequest  true  "customer_id, product_id, quantity"
// @Success      201   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /products/buy [post]
func (h *OrderHandler) Buy(c *fiber.Ctx) error {
	var in dto.BuyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CustomerID == "" || in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_id y product_id son requeridos"})
	}
	out, err := h.uc.Buy(c.Context(), GetLogin(c), in)
	if err != nil {
		return orderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// BuySurpriseBag godoc
// @Summary      Comprar surprise bag (customer, cantidad fija 1)
// @Tags         surprise-bag
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BuySurpriseBagRequest  true  "customer_id, product_id"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /products/surprise-bag/buy [post]
func (h *OrderHandler) BuySurpriseBag(c *fiber.Ctx) error {
	var in dto.BuySurpriseBagRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CustomerID == "" || in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_id y product_id son requeridos"})
	}
	out, err := h.uc.BuySurpriseBag(c.Context(), GetLogin(c), in)
	if err != nil {
		return orderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Sold godoc
// @Summary      Productos vendidos por un farmer (dueño)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        farmerId  path  string  true  "ID del farmer"
// @Success      200       {array}   dto.ProductResponse
// @Failure      403       {object}  dto.ErrorResponse
// @Router       /products/sold/{farmerId} [get]
func (h *OrderHandler) Sold(c *fiber.Ctx) error {
	out, err := h.uc.SoldProducts(GetLogin(c), c.Params("farmerId"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(out)
}

// Purchased godoc
// @Summary      Historial de compras de un customer
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        customerId  path  string  true  "ID del customer"
// @Success      200         {array}   dto.OrderResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /products/purchased/{customerId} [get]
func (h *OrderHandler) Purchased(c *fiber.Ctx) error {
	out, err := h.uc.PurchaseHistory(c.Params("customerId"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(out)
}

// RemovalHistory godoc
// @Summary      Historial de retiros de un farmer (auditoría)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        farmerId  path  string  true  "ID del farmer"
// @Success      200       {array}   dto.OrderResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /products/history/{farmerId} [get]
func (h *OrderHandler) RemovalHistory(c *fiber.Ctx) error {
	out, err := h.uc.RemovalHistory(c.Params("farmerId"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(out)
}

func orderError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto, farmer o customer no encontrado"})
	}
	if errors.Is(err, domain.ErrForbidden) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo se puede operar sobre el perfil propio"})
	}
	if errors.Is(err, domain.ErrNotSurpriseBag) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NOT_SURPRISE_BAG", Message: "el producto no es una surprise bag"})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser mayor que cero"})
	}
	if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrInsufficientStock) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "producto no disponible o stock insuficiente"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
