package entity

import "time"

// Estados del día contable (CHECK de dias_contables).
const (
	DayStateOpen     = "ABIERTO"
	DayStateReviewed = "REVISADO"
)

// AccountingDay representa la unidad diaria de agregación por negocio.
// Existe a lo sumo una fila por (negocio, fecha); se crea perezosamente
// al solicitar el primer turno del día. La transición ABIERTO → REVISADO
// es irreversible y solo procede con todos los turnos CERRADOS.
type AccountingDay struct {
	ID         string
	BusinessID string
	Date       time.Time // solo la parte de fecha importa, en la zona horaria del negocio
	State      string
	CreatedAt  time.Time
}
