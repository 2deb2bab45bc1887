package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/repository"
)

var _ repository.AccountingDayRepository = (*AccountingDayRepo)(nil)

// AccountingDayRepo implementación del puerto AccountingDayRepository sobre
// PostgreSQL (usable con pool o tx).
type AccountingDayRepo struct {
	q Querier
}

// NewAccountingDayRepository construye el adaptador de días contables. Pasar pool o tx (Querier).
func NewAccountingDayRepository(q Querier) *AccountingDayRepo {
	return &AccountingDayRepo{q: q}
}

// CreateIfAbsent inserta el día si no hay fila para (negocio, fecha).
// ON CONFLICT DO NOTHING mantiene el id ya existente: dos aperturas
// concurrentes terminan viendo la misma fila.
func (r *AccountingDayRepo) CreateIfAbsent(ctx context.Context, businessID string, date time.Time) error {
	query := `
		INSERT INTO dias_contables (id, negocio_id, fecha, estado)
		VALUES ($1, $2, $3, 'ABIERTO')
		ON CONFLICT (negocio_id, fecha) DO NOTHING`
	_, err := r.q.Exec(ctx, query, uuid.NewString(), businessID, date)
	if err != nil {
		return fmt.Errorf("insert dia_contable: %w", err)
	}
	return nil
}

// GetByDate obtiene el día del negocio para la fecha. Devuelve nil, nil si no existe.
func (r *AccountingDayRepo) GetByDate(ctx context.Context, businessID string, date time.Time) (*entity.AccountingDay, error) {
	query := `
		SELECT id, negocio_id, fecha, estado, creado_en
		FROM dias_contables WHERE negocio_id = $1 AND fecha = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, businessID, date), "get dia_contable by fecha")
}

// GetForUpdate lee la fila bloqueándola (SELECT FOR UPDATE). Solo tiene sentido
// dentro de una transacción. Devuelve nil, nil si no existe.
func (r *AccountingDayRepo) GetForUpdate(ctx context.Context, businessID string, date time.Time) (*entity.AccountingDay, error) {
	query := `
		SELECT id, negocio_id, fecha, estado, creado_en
		FROM dias_contables WHERE negocio_id = $1 AND fecha = $2
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, businessID, date), "lock dia_contable by fecha")
}

// LockByID variante de GetForUpdate cuando ya se conoce el id del día.
func (r *AccountingDayRepo) LockByID(ctx context.Context, id string) (*entity.AccountingDay, error) {
	query := `
		SELECT id, negocio_id, fecha, estado, creado_en
		FROM dias_contables WHERE id = $1
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "lock dia_contable by id")
}

// MarkReviewed sella el día (ABIERTO → REVISADO). Idempotencia y validación
// de turnos abiertos las aplica el caso de uso bajo el bloqueo de fila.
func (r *AccountingDayRepo) MarkReviewed(ctx context.Context, id string) error {
	query := `UPDATE dias_contables SET estado = 'REVISADO' WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("update dia_contable estado: %w", err)
	}
	return nil
}

func (r *AccountingDayRepo) scanOne(row pgx.Row, op string) (*entity.AccountingDay, error) {
	var d entity.AccountingDay
	err := row.Scan(&d.ID, &d.BusinessID, &d.Date, &d.State, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &d, nil
}
