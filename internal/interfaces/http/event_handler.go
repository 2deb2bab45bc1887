package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/dto"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/ledger"
)

// EventHandler maneja los eventos de caja (transacciones).
type EventHandler struct {
	uc *ledger.UseCase
}

// NewEventHandler construye el handler de eventos de caja.
func NewEventHandler(uc *ledger.UseCase) *EventHandler {
	return &EventHandler{uc: uc}
}

// Record registra un evento de caja en un turno.
// POST /api/events
func (h *EventHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordEventRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ShiftID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "turno_id es requerido"})
	}
	ev, err := h.uc.Record(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToEventResponse(ev))
}

// ListByShift lista los eventos de un turno en orden de creación.
// GET /api/shifts/:id/events
func (h *EventHandler) ListByShift(c *fiber.Ctx) error {
	events, err := h.uc.ListByShift(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, dto.ToEventResponse(e))
	}
	return c.JSON(out)
}

// Remove elimina un evento no auditado de un turno abierto.
// DELETE /api/events/:id
func (h *EventHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ConfirmAudit confirma la auditoría de un evento.
// POST /api/events/:id/audit
func (h *EventHandler) ConfirmAudit(c *fiber.Ctx) error {
	ev, err := h.uc.ConfirmAudit(c.Context(), c.Params("id"), GetUserID(c), GetBusinessID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToEventResponse(ev))
}

// SummarizeByShift devuelve las sumas por categoría de un turno.
// GET /api/shifts/:id/events/summary
func (h *EventHandler) SummarizeByShift(c *fiber.Ctx) error {
	sums, err := h.uc.SummarizeByCategory(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sums)
}

// DaySummary devuelve el estado de auditoría de los eventos de un día.
// GET /api/days/:id/events/summary
func (h *EventHandler) DaySummary(c *fiber.Ctx) error {
	summary, err := h.uc.DaySummary(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
