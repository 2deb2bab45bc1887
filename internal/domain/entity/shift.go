package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del turno (CHECK de turnos).
const (
	ShiftStateOpen     = "ABIERTO"
	ShiftStateClosed   = "CERRADO"
	ShiftStateReviewed = "REVISADO"
)

// Número máximo de turnos por día contable.
const MaxShiftsPerDay = 2

// Shift representa un turno de trabajo dentro de un día contable.
// El operador queda fijo en la creación. CountedCash, ReportedPOS y
// Difference se escriben juntos una sola vez al cierre y son inmutables
// después; nil mientras el turno está ABIERTO.
type Shift struct {
	ID              string
	AccountingDayID string
	UserID          string
	Number          int // 1 o 2, asignados en orden ascendente
	State           string
	CountedCash     *decimal.Decimal
	ReportedPOS     *decimal.Decimal // lectura acumulada del POS tal como la digitó el usuario
	Difference      *decimal.Decimal
	CreatedAt       time.Time

	// OperatorName viene del JOIN con usuarios; solo para presentación.
	OperatorName string
}

// IsOpen indica si el turno sigue abierto.
func (s *Shift) IsOpen() bool { return s.State == ShiftStateOpen }
