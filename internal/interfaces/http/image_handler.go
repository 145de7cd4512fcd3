package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

// ImageHandler expone el orden de imágenes del carrusel.
type ImageHandler struct {
	uc *usecase.ImageUseCase
}

// NewImageHandler construye el handler.
func NewImageHandler(uc *usecase.ImageUseCase) *ImageHandler {
	return &ImageHandler{uc: uc}
}

// List godoc
// @Summary      Listar imágenes en orden
// @Tags         images
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/images [get]
func (h *ImageHandler) List(c *fiber.Ctx) error {
	urls, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(urls)
}

// UpdateOrder godoc
// @Summary      Guardar el orden de imágenes
// @Tags         images
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateImageOrderRequest  true  "urls"
// @Success      200   {object}  dto.ImageOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/images/order [put]
func (h *ImageHandler) UpdateOrder(c *fiber.Ctx) error {
	var in dto.UpdateImageOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	urls, err := h.uc.UpdateOrder(c.UserContext(), in.URLs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ImageOrderResponse{Message: "Image order updated successfully", URLs: urls})
}
