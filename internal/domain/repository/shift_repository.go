package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
)

// ShiftRepository define el puerto de persistencia para turnos.
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	// GetByID devuelve nil, nil si el turno no existe.
	GetByID(ctx context.Context, id string) (*entity.Shift, error)
	// ListByDay devuelve los turnos del día ordenados por numero_turno descendente.
	ListByDay(ctx context.Context, dayID string) ([]*entity.Shift, error)
	GetByDayAndNumber(ctx context.Context, dayID string, number int) (*entity.Shift, error)
	// Close persiste el cierre con una actualización condicionada al estado
	// ABIERTO, de modo que un turno nunca pueda cerrarse dos veces ni quedar
	// con escrituras parciales. Devuelve nil, nil si ninguna fila coincidió.
	Close(ctx context.Context, id string, countedCash, reportedPOS, difference decimal.Decimal) (*entity.Shift, error)
	// MarkReviewed transiciona CERRADO → REVISADO; nil, nil si el turno no
	// estaba CERRADO o no existe.
	MarkReviewed(ctx context.Context, id string) (*entity.Shift, error)
	CountNotClosed(ctx context.Context, dayID string) (int, error)
	// CurrentByBusinessDate devuelve el turno de hoy priorizando ABIERTO;
	// nil, nil si no hay turno registrado para la fecha.
	CurrentByBusinessDate(ctx context.Context, businessID string, date time.Time) (*entity.Shift, error)
	ListHistory(ctx context.Context, businessID string, limit, offset int) ([]*entity.Shift, error)
}
