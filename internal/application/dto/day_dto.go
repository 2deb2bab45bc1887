package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayShiftView vista por turno dentro del resumen del día: totales por
// categoría y diferencia recalculada desde los eventos (no la almacenada),
// para que el resumen sea correcto incluso con un turno en curso.
type DayShiftView struct {
	ID           string           `json:"id"`
	Number       int              `json:"numero_turno"`
	State        string           `json:"estado"`
	UserID       string           `json:"usuario_id"`
	OperatorName string           `json:"usuario_nombre,omitempty"`
	CountedCash  *decimal.Decimal `json:"efectivo_contado_turno"`
	ReportedPOS  *decimal.Decimal `json:"venta_reportada_pos_turno"`
	TotalDigital decimal.Decimal  `json:"total_pagos_digitales"`
	TotalExpense decimal.Decimal  `json:"total_gastos"`
	Difference   *decimal.Decimal `json:"diferencia_calculada_turno"`
	EventCount   int              `json:"transacciones_count"`
}

// DaySnapshot día contable con sus turnos y totales agregados.
type DaySnapshot struct {
	ID              string          `json:"id"`
	BusinessID      string          `json:"negocio_id"`
	Date            time.Time       `json:"fecha"`
	State           string          `json:"estado"`
	Shifts          []DayShiftView  `json:"turnos"`
	TotalEvents     int             `json:"total_transacciones"`
	TotalDigital    decimal.Decimal `json:"total_pagos_digitales"`
	TotalExpenses   decimal.Decimal `json:"total_gastos"`
	TotalDifference decimal.Decimal `json:"total_diferencia"`
	EventsConfirmed int             `json:"transacciones_auditadas"`
	EventsPending   int             `json:"transacciones_pendientes"`
}
