package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/business"
)

// BusinessHandler maneja consultas de negocios.
type BusinessHandler struct {
	uc *business.UseCase
}

// NewBusinessHandler construye el handler de negocios.
func NewBusinessHandler(uc *business.UseCase) *BusinessHandler {
	return &BusinessHandler{uc: uc}
}

// ListMine lista los negocios del usuario autenticado con su rol en cada uno.
// GET /api/businesses
func (h *BusinessHandler) ListMine(c *fiber.Ctx) error {
	list, err := h.uc.ListByUser(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
