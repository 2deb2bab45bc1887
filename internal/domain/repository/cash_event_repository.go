package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
)

// AuditStats conteo de eventos confirmados vs. pendientes de auditoría.
type AuditStats struct {
	Confirmed int
	Total     int
}

// CashEventRepository define el puerto de persistencia para eventos de caja.
// Es almacenamiento puro: las reglas de estado del turno las aplican los
// casos de uso.
type CashEventRepository interface {
	Create(ctx context.Context, event *entity.CashEvent) error
	GetByID(ctx context.Context, id string) (*entity.CashEvent, error)
	// ListByShift devuelve los eventos del turno en orden de creación ascendente.
	ListByShift(ctx context.Context, shiftID string) ([]*entity.CashEvent, error)
	// Delete devuelve false si el evento no existía.
	Delete(ctx context.Context, id string) (bool, error)
	// ConfirmAudit marca el evento y registra el auditor; si ya estaba
	// confirmado el auditor se sobreescribe. Devuelve nil, nil si no existe.
	ConfirmAudit(ctx context.Context, id, auditorID string) (*entity.CashEvent, error)
	// SumByCategory suma los montos (absolutos) agrupados por categoría.
	SumByCategory(ctx context.Context, shiftID string) (map[string]decimal.Decimal, error)
	CountByShift(ctx context.Context, shiftID string) (int, error)
	AuditStatsByDay(ctx context.Context, dayID string) (AuditStats, error)
}
