package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

// shiftColumns columnas del SELECT de turnos, con JOIN a usuarios para el nombre del operador.
const shiftColumns = `
	t.id, t.dia_contable_id, t.usuario_id, t.numero_turno, t.estado,
	t.efectivo_contado, t.venta_reportada_pos, t.diferencia, t.creado_en,
	u.nombre_completo`

// ShiftRepo implementación del puerto ShiftRepository sobre PostgreSQL (usable con pool o tx).
type ShiftRepo struct {
	q Querier
}

// NewShiftRepository construye el adaptador de turnos. Pasar pool o tx (Querier).
func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

// Create persiste un turno nuevo en estado ABIERTO.
func (r *ShiftRepo) Create(ctx context.Context, shift *entity.Shift) error {
	query := `
		INSERT INTO turnos (id, dia_contable_id, usuario_id, numero_turno, estado)
		VALUES ($1, $2, $3, $4, 'ABIERTO')`
	_, err := r.q.Exec(ctx, query, shift.ID, shift.AccountingDayID, shift.UserID, shift.Number)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert turno: %w", err)
	}
	return nil
}

// GetByID obtiene un turno por ID. Devuelve nil, nil si no existe.
func (r *ShiftRepo) GetByID(ctx context.Context, id string) (*entity.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM turnos t JOIN usuarios u ON u.id = t.usuario_id
		WHERE t.id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get turno by id")
}

// ListByDay lista los turnos del día ordenados por numero_turno descendente.
func (r *ShiftRepo) ListByDay(ctx context.Context, dayID string) ([]*entity.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM turnos t JOIN usuarios u ON u.id = t.usuario_id
		WHERE t.dia_contable_id = $1
		ORDER BY t.numero_turno DESC`
	return r.list(ctx, query, dayID)
}

// GetByDayAndNumber obtiene un turno por día y número. Devuelve nil, nil si no existe.
func (r *ShiftRepo) GetByDayAndNumber(ctx context.Context, dayID string, number int) (*entity.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM turnos t JOIN usuarios u ON u.id = t.usuario_id
		WHERE t.dia_contable_id = $1 AND t.numero_turno = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, dayID, number), "get turno by numero")
}

// Close persiste el cierre del turno. La condición estado = 'ABIERTO' hace la
// actualización no repetible: un segundo cierre no coincide con ninguna fila
// y devuelve nil, nil.
func (r *ShiftRepo) Close(ctx context.Context, id string, countedCash, reportedPOS, difference decimal.Decimal) (*entity.Shift, error) {
	query := `
		UPDATE turnos SET
			estado = 'CERRADO',
			efectivo_contado = $2,
			venta_reportada_pos = $3,
			diferencia = $4
		WHERE id = $1 AND estado = 'ABIERTO'
		RETURNING id`
	var updated string
	err := r.q.QueryRow(ctx, query, id, countedCash, reportedPOS, difference).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("close turno: %w", err)
	}
	return r.GetByID(ctx, updated)
}

// MarkReviewed transiciona CERRADO → REVISADO. Devuelve nil, nil si el turno
// no existe o no estaba CERRADO.
func (r *ShiftRepo) MarkReviewed(ctx context.Context, id string) (*entity.Shift, error) {
	query := `
		UPDATE turnos SET estado = 'REVISADO'
		WHERE id = $1 AND estado = 'CERRADO'
		RETURNING id`
	var updated string
	err := r.q.QueryRow(ctx, query, id).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("mark turno revisado: %w", err)
	}
	return r.GetByID(ctx, updated)
}

// CountNotClosed cuenta los turnos del día que siguen ABIERTOS.
func (r *ShiftRepo) CountNotClosed(ctx context.Context, dayID string) (int, error) {
	query := `SELECT COUNT(*) FROM turnos WHERE dia_contable_id = $1 AND estado = 'ABIERTO'`
	var n int
	if err := r.q.QueryRow(ctx, query, dayID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count turnos abiertos: %w", err)
	}
	return n, nil
}

// CurrentByBusinessDate devuelve el turno de hoy priorizando el que siga
// ABIERTO; entre cerrados, el de mayor número. Devuelve nil, nil si la fecha
// no tiene turnos.
func (r *ShiftRepo) CurrentByBusinessDate(ctx context.Context, businessID string, date time.Time) (*entity.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM turnos t
		JOIN usuarios u ON u.id = t.usuario_id
		JOIN dias_contables d ON d.id = t.dia_contable_id
		WHERE d.negocio_id = $1 AND d.fecha = $2
		ORDER BY (t.estado = 'ABIERTO') DESC, t.numero_turno DESC
		LIMIT 1`
	return r.scanOne(r.q.QueryRow(ctx, query, businessID, date), "get turno actual")
}

// ListHistory lista turnos del negocio de más reciente a más antiguo (fecha y número).
func (r *ShiftRepo) ListHistory(ctx context.Context, businessID string, limit, offset int) ([]*entity.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM turnos t
		JOIN usuarios u ON u.id = t.usuario_id
		JOIN dias_contables d ON d.id = t.dia_contable_id
		WHERE d.negocio_id = $1
		ORDER BY d.fecha DESC, t.numero_turno DESC
		LIMIT $2 OFFSET $3`
	return r.list(ctx, query, businessID, limit, offset)
}

func (r *ShiftRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Shift, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list turnos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shift
	for rows.Next() {
		var s entity.Shift
		if err := rows.Scan(
			&s.ID, &s.AccountingDayID, &s.UserID, &s.Number, &s.State,
			&s.CountedCash, &s.ReportedPOS, &s.Difference, &s.CreatedAt,
			&s.OperatorName,
		); err != nil {
			return nil, fmt.Errorf("scan turno: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *ShiftRepo) scanOne(row pgx.Row, op string) (*entity.Shift, error) {
	var s entity.Shift
	err := row.Scan(
		&s.ID, &s.AccountingDayID, &s.UserID, &s.Number, &s.State,
		&s.CountedCash, &s.ReportedPOS, &s.Difference, &s.CreatedAt,
		&s.OperatorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}
