package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
)

// RecordEventRequest body para POST /api/events.
// Según la categoría aplica exactamente una referencia de subtipo.
type RecordEventRequest struct {
	ShiftID       string          `json:"turno_id"`
	Amount        decimal.Decimal `json:"valor"`
	Category      string          `json:"categoria"`
	Note          string          `json:"concepto,omitempty"`
	SupplierID    *string         `json:"proveedor_id,omitempty"`
	ExpenseTypeID *string         `json:"tipo_gasto_id,omitempty"`
	PaymentTypeID *string         `json:"tipo_pago_digital_id,omitempty"`
}

// EventResponse representación de un evento de caja.
type EventResponse struct {
	ID             string          `json:"id"`
	ShiftID        string          `json:"turno_id"`
	Amount         decimal.Decimal `json:"valor"`
	Category       string          `json:"categoria"`
	Note           string          `json:"concepto,omitempty"`
	SupplierID     *string         `json:"proveedor_id,omitempty"`
	ExpenseTypeID  *string         `json:"tipo_gasto_id,omitempty"`
	PaymentTypeID  *string         `json:"tipo_pago_digital_id,omitempty"`
	AuditConfirmed bool            `json:"confirmado_auditoria"`
	AuditorID      *string         `json:"auditor_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToEventResponse adapta la entidad al DTO.
func ToEventResponse(e *entity.CashEvent) *EventResponse {
	if e == nil {
		return nil
	}
	return &EventResponse{
		ID:             e.ID,
		ShiftID:        e.ShiftID,
		Amount:         e.Amount,
		Category:       e.Category,
		Note:           e.Note,
		SupplierID:     e.SupplierID,
		ExpenseTypeID:  e.ExpenseTypeID,
		PaymentTypeID:  e.PaymentTypeID,
		AuditConfirmed: e.AuditConfirmed,
		AuditorID:      e.AuditorID,
		CreatedAt:      e.CreatedAt,
	}
}

// DayEventSummary conteos y montos de auditoría de los eventos de un día.
type DayEventSummary struct {
	Total           int             `json:"total"`
	Confirmed       int             `json:"confirmadas"`
	Pending         int             `json:"pendientes"`
	TotalAmount     decimal.Decimal `json:"monto_total"`
	ConfirmedAmount decimal.Decimal `json:"monto_confirmado"`
	PendingAmount   decimal.Decimal `json:"monto_pendiente"`
}
