package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

// CategoryHandler maneja las peticiones HTTP para Category y su oferta.
type CategoryHandler struct {
	uc   *usecase.CategoryUseCase
	sale *usecase.SaleUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, sale *usecase.SaleUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc, sale: sale}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "name, servings"
// @Success      201   {object}  dto.CategoryEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CategoryEnvelope{Message: "Category created successfully", Category: out})
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría
// @Description  Actualiza nombre, servings e indicadores. La oferta se cambia con update-sale.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CategoryEnvelope
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CategoryEnvelope{Message: "Category updated successfully", Category: out})
}

// Delete godoc
// @Summary      Eliminar categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Category deleted successfully"})
}

// UpdateSale godoc
// @Summary      Cambiar la oferta de una categoría
// @Description  action: startNow | cancelSale | endNow | updateSale; sin action programa la ventana indicada.
// @Description  Los campos omitidos toman los valores actuales de la categoría.
// @Description  endNow solo aplica a una oferta Active; una oferta Pending se retira con cancelSale (400 en otro caso).
// @Description  salePercentage en [0, 100] con a lo sumo dos decimales.
// @Description  409 si otra petición guardó la categoría entre la lectura y la escritura (antes respondía 500); reintentar.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la categoría"
// @Param        body  body  dto.UpdateSaleRequest  true  "action, saleStartDate, saleEndDate, salePercentage"
// @Success      200   {object}  dto.CategoryEnvelope
// @Failure      400   {object}  dto.ErrorResponse  "parámetros inválidos o endNow sin oferta activa"
// @Failure      404   {object}  dto.ErrorResponse  "categoría inexistente"
// @Failure      409   {object}  dto.ErrorResponse  "conflicto de versión (CONFLICT)"
// @Failure      500   {object}  dto.ErrorResponse  "fallo de persistencia (PERSISTENCE)"
// @Router       /api/categories/{id}/update-sale [put]
func (h *CategoryHandler) UpdateSale(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.sale.UpdateSale(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CategoryEnvelope{Message: "Sale status updated successfully", Category: out})
}

// SaleReport godoc
// @Summary      Reporte PDF del historial de ofertas
// @Tags         categories
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/sale-history/report [get]
func (h *CategoryHandler) SaleReport(c *fiber.Ctx) error {
	doc, err := h.sale.SaleReport(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="sale-history-`+c.Params("id")+`.pdf"`)
	return c.Send(doc)
}
