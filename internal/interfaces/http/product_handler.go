package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/dailyfarm/market-api/internal/application/catalog"
	"github.com/dailyfarm/market-api/internal/application/dto"
	"github.com/dailyfarm/market-api/internal/domain"
)

// ProductHandler maneja el catálogo: publicaciones y surprise bags.
type ProductHandler struct {
	uc *catalog.CatalogUseCase
}

// NewProductHandler construye el handler de catálogo.
func NewProductHandler(uc *catalog.CatalogUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Add godoc
// @Summary      Publicar producto (farmer)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /products/add [post]
func (h *ProductHandler) Add(c *fiber.Ctx) error {
	var in dto.AddProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddProduct(GetLogin(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido; quantity y price no pueden ser negativos"})
		}
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto propio (farmer)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProductRequest  true  "product_id y campos a pisar"
// @Success      200   {object}  map[string]bool
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /products/update [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "product_id es requerido"})
	}
	ok, err := h.uc.UpdateProduct(GetLogin(c), in)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(fiber.Map{"updated": ok})
}

// Remove godoc
// @Summary      Retirar producto propio (farmer)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true  "ID del producto"
// @Param        farmer_id   query  string  true  "ID del farmer dueño"
// @Success      200         {object}  dto.OrderResponse
// @Failure      403         {object}  dto.ErrorResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /products/remove [delete]
func (h *ProductHandler) Remove(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	farmerID := c.Query("farmer_id")
	if productID == "" || farmerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y farmer_id son requeridos"})
	}
	out, err := h.uc.RemoveProduct(c.Context(), GetLogin(c), productID, farmerID)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(out)
}

// All godoc
// @Summary      Listar todas las publicaciones
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /products/all [get]
func (h *ProductHandler) All(c *fiber.Ctx) error {
	out, err := h.uc.AllProducts()
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(out)
}

// ByPriceRange godoc
// @Summary      Listar productos por rango de precio
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        min  query  number  true  "precio mínimo"
// @Param        max  query  number  true  "precio máximo"
// @Success      200  {array}   dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /products/priceRange [get]
func (h *ProductHandler) ByPriceRange(c *fiber.Ctx) error {
	min, err := decimal.NewFromString(c.Query("min", "0"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "min inválido"})
	}
	max, err := decimal.NewFromString(c.Query("max", "0"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "max inválido"})
	}
	out, err := h.uc.ProductsByPriceRange(min, max)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "max no puede ser menor que min"})
		}
		return catalogError(c, err)
	}
	return c.JSON(out)
}

// ByFarmer godoc
// @Summary      Listar publicaciones de un farmer
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        farmerId  path  string  true  "ID del farmer"
// @Success      200       {array}   dto.ProductResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /products/byFarmer/{farmerId} [get]
func (h *ProductHandler) ByFarmer(c *fiber.Ctx) error {
	out, err := h.uc.ProductsByFarmer(c.Params("farmerId"))
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetProduct(c.Params("id"))
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(out)
}

// CreateSurpriseBag godoc
// @Summary      Publicar surprise bag (farmer)
// @Tags         surprise-bag
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSurpriseBagRequest  true  "ventana de validez y cantidad"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /products/surprise-bag/create [post]
func (h *ProductHandler) CreateSurpriseBag(c *fiber.Ctx) error {
	var in dto.CreateSurpriseBagRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateSurpriseBag(GetLogin(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_time debe ser posterior a start_time y quantity no negativa"})
		}
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AvailableSurpriseBags godoc
// @Summary      Surprise bags disponibles ahora
// @Tags         surprise-bag
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /products/surprise-bag/available [get]
func (h *ProductHandler) AvailableSurpriseBags(c *fiber.Ctx) error {
	out, err := h.uc.AvailableSurpriseBags()
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(out)
}

func catalogError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o farmer no encontrado"})
	}
	if errors.Is(err, domain.ErrForbidden) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la publicación no pertenece al caller"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
