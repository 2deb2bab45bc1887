package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
)

// InitializeShiftRequest body para POST /api/shifts/initialize.
type InitializeShiftRequest struct {
	BusinessID string `json:"negocio_id"`
}

// CloseShiftRequest body para POST /api/shifts/:id/close.
// ReportedPOS es la lectura acumulada del datáfono tal como la ve el usuario.
type CloseShiftRequest struct {
	ReportedPOS decimal.Decimal `json:"venta_reportada_pos_turno"`
	CountedCash decimal.Decimal `json:"efectivo_contado_turno"`
}

// ShiftResponse representación de un turno hacia la capa de presentación.
type ShiftResponse struct {
	ID              string           `json:"id"`
	AccountingDayID string           `json:"dia_contable_id"`
	UserID          string           `json:"usuario_id"`
	OperatorName    string           `json:"usuario_nombre,omitempty"`
	Number          int              `json:"numero_turno"`
	State           string           `json:"estado"`
	CountedCash     *decimal.Decimal `json:"efectivo_contado_turno"`
	ReportedPOS     *decimal.Decimal `json:"venta_reportada_pos_turno"`
	Difference      *decimal.Decimal `json:"diferencia_calculada_turno"`
	CreatedAt       time.Time        `json:"created_at"`
}

// ToShiftResponse adapta la entidad al DTO.
func ToShiftResponse(s *entity.Shift) *ShiftResponse {
	if s == nil {
		return nil
	}
	return &ShiftResponse{
		ID:              s.ID,
		AccountingDayID: s.AccountingDayID,
		UserID:          s.UserID,
		OperatorName:    s.OperatorName,
		Number:          s.Number,
		State:           s.State,
		CountedCash:     s.CountedCash,
		ReportedPOS:     s.ReportedPOS,
		Difference:      s.Difference,
		CreatedAt:       s.CreatedAt,
	}
}
