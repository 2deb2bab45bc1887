package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/dto"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/shift"
)

// ShiftHandler maneja el ciclo de vida de turnos.
type ShiftHandler struct {
	uc *shift.UseCase
}

// NewShiftHandler construye el handler de turnos.
func NewShiftHandler(uc *shift.UseCase) *ShiftHandler {
	return &ShiftHandler{uc: uc}
}

// Initialize crea o retoma el turno del día para el usuario autenticado.
// POST /api/shifts/initialize
func (h *ShiftHandler) Initialize(c *fiber.Ctx) error {
	var in dto.InitializeShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	businessID := in.BusinessID
	if businessID == "" {
		businessID = GetBusinessID(c)
	}
	if businessID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "negocio_id es requerido"})
	}
	s, err := h.uc.Initialize(c.Context(), GetUserID(c), businessID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToShiftResponse(s))
}

// Current devuelve el turno vigente de hoy, o null si no hay.
// GET /api/shifts/current
func (h *ShiftHandler) Current(c *fiber.Ctx) error {
	s, err := h.uc.Current(c.Context(), GetBusinessID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToShiftResponse(s))
}

// GetByID devuelve un turno por ID.
// GET /api/shifts/:id
func (h *ShiftHandler) GetByID(c *fiber.Ctx) error {
	s, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToShiftResponse(s))
}

// ListByDay lista los turnos de un día contable en orden ascendente.
// GET /api/days/:id/shifts
func (h *ShiftHandler) ListByDay(c *fiber.Ctx) error {
	shifts, err := h.uc.ListByDay(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, dto.ToShiftResponse(s))
	}
	return c.JSON(out)
}

// History lista turnos pasados del negocio, de más reciente a más antiguo.
// GET /api/shifts/history?limit=20&offset=0
func (h *ShiftHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	shifts, err := h.uc.History(c.Context(), GetBusinessID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, dto.ToShiftResponse(s))
	}
	return c.JSON(out)
}

// Close cierra el turno calculando la diferencia contra el POS incremental.
// POST /api/shifts/:id/close
func (h *ShiftHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.uc.Close(c.Context(), c.Params("id"), in.ReportedPOS, in.CountedCash)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToShiftResponse(s))
}

// ConfirmAudit marca un turno cerrado como revisado.
// POST /api/shifts/:id/audit
func (h *ShiftHandler) ConfirmAudit(c *fiber.Ctx) error {
	s, err := h.uc.ConfirmAudit(c.Context(), c.Params("id"), GetUserID(c), GetBusinessID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToShiftResponse(s))
}
