package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/catalog"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/dto"
)

// CatalogHandler maneja los tres catálogos de subtipos bajo una misma ruta
// parametrizada: /api/catalogs/:kind.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler de catálogos.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func parseKind(c *fiber.Ctx) (catalog.Kind, bool) {
	switch k := catalog.Kind(c.Params("kind")); k {
	case catalog.KindSupplier, catalog.KindExpenseType, catalog.KindPaymentType:
		return k, true
	default:
		return "", false
	}
}

// Create agrega una entrada al catálogo.
// POST /api/catalogs/:kind
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	kind, ok := parseKind(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "catálogo desconocido"})
	}
	var in dto.CatalogItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Create(c.Context(), kind, GetBusinessID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// List lista las entradas activas del catálogo.
// GET /api/catalogs/:kind
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	kind, ok := parseKind(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "catálogo desconocido"})
	}
	items, err := h.uc.List(c.Context(), kind, GetBusinessID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// Rename actualiza el nombre de una entrada.
// PUT /api/catalogs/:kind/:id
func (h *CatalogHandler) Rename(c *fiber.Ctx) error {
	kind, ok := parseKind(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "catálogo desconocido"})
	}
	var in dto.CatalogItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Rename(c.Context(), kind, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// Deactivate baja lógica de una entrada.
// DELETE /api/catalogs/:kind/:id
func (h *CatalogHandler) Deactivate(c *fiber.Ctx) error {
	kind, ok := parseKind(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "catálogo desconocido"})
	}
	if err := h.uc.Deactivate(c.Context(), kind, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
