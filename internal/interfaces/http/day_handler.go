package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/day"
)

// DayHandler maneja el día contable agregado.
type DayHandler struct {
	uc *day.UseCase
}

// NewDayHandler construye el handler del día contable.
func NewDayHandler(uc *day.UseCase) *DayHandler {
	return &DayHandler{uc: uc}
}

// Current devuelve el resumen del día contable de hoy, o null si aún no
// se ha abierto ningún turno.
// GET /api/days/current
func (h *DayHandler) Current(c *fiber.Ctx) error {
	snapshot, err := h.uc.Current(c.Context(), GetBusinessID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snapshot)
}

// Seal sella el día de hoy (ABIERTO → REVISADO) si todos los turnos están cerrados.
// POST /api/days/seal
func (h *DayHandler) Seal(c *fiber.Ctx) error {
	if err := h.uc.Seal(c.Context(), GetBusinessID(c), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
