package repository

import (
	"context"
	"time"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
)

// AccountingDayRepository define el puerto de persistencia para días contables.
// Invariante: a lo sumo una fila por (negocio, fecha).
type AccountingDayRepository interface {
	// CreateIfAbsent inserta el día si no existe; no hace nada si ya existe
	// (INSERT ... ON CONFLICT DO NOTHING, nunca un upsert que adopte otro id).
	CreateIfAbsent(ctx context.Context, businessID string, date time.Time) error
	// GetByDate devuelve nil, nil si no existe día para esa fecha.
	GetByDate(ctx context.Context, businessID string, date time.Time) (*entity.AccountingDay, error)
	// GetForUpdate lee la fila bloqueándola (SELECT FOR UPDATE); solo tiene
	// sentido dentro de una transacción. Serializa initialize/close/seal por
	// día. Devuelve nil, nil si el día no existe.
	GetForUpdate(ctx context.Context, businessID string, date time.Time) (*entity.AccountingDay, error)
	// LockByID variante de GetForUpdate cuando ya se conoce el id del día.
	LockByID(ctx context.Context, id string) (*entity.AccountingDay, error)
	MarkReviewed(ctx context.Context, id string) error
}
