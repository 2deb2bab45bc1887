package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/repository"
)

var _ repository.CashEventRepository = (*CashEventRepo)(nil)

const eventColumns = `
	id, turno_id, valor, categoria, concepto,
	proveedor_id, tipo_gasto_id, tipo_pago_digital_id,
	confirmado_auditoria, auditor_id, creado_en`

// CashEventRepo implementación del puerto CashEventRepository sobre PostgreSQL
// (usable con pool o tx).
type CashEventRepo struct {
	q Querier
}

// NewCashEventRepository construye el adaptador de eventos de caja. Pasar pool o tx (Querier).
func NewCashEventRepository(q Querier) *CashEventRepo {
	return &CashEventRepo{q: q}
}

// Create persiste un evento de caja.
func (r *CashEventRepo) Create(ctx context.Context, event *entity.CashEvent) error {
	query := `
		INSERT INTO transacciones
			(id, turno_id, valor, categoria, concepto, proveedor_id, tipo_gasto_id, tipo_pago_digital_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		event.ID, event.ShiftID, event.Amount, event.Category, event.Note,
		event.SupplierID, event.ExpenseTypeID, event.PaymentTypeID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert transaccion: %w", err)
	}
	return nil
}

// GetByID obtiene un evento por ID. Devuelve nil, nil si no existe.
func (r *CashEventRepo) GetByID(ctx context.Context, id string) (*entity.CashEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM transacciones WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get transaccion by id")
}

// ListByShift lista los eventos del turno en orden de creación ascendente.
func (r *CashEventRepo) ListByShift(ctx context.Context, shiftID string) ([]*entity.CashEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM transacciones WHERE turno_id = $1
		ORDER BY creado_en ASC, id ASC`
	rows, err := r.q.Query(ctx, query, shiftID)
	if err != nil {
		return nil, fmt.Errorf("list transacciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashEvent
	for rows.Next() {
		e, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Delete elimina un evento. Devuelve false si no existía.
func (r *CashEventRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM transacciones WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete transaccion: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ConfirmAudit marca el evento como confirmado y registra el auditor. Si ya
// estaba confirmado, el auditor se sobreescribe. Devuelve nil, nil si no existe.
func (r *CashEventRepo) ConfirmAudit(ctx context.Context, id, auditorID string) (*entity.CashEvent, error) {
	query := `
		UPDATE transacciones SET confirmado_auditoria = TRUE, auditor_id = $2
		WHERE id = $1
		RETURNING ` + eventColumns
	ev, err := r.scanOne(r.q.QueryRow(ctx, query, id, auditorID), "confirm auditoria")
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// SumByCategory suma los montos agrupados por categoría para un turno.
// Las categorías sin eventos no aparecen en el mapa.
func (r *CashEventRepo) SumByCategory(ctx context.Context, shiftID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT categoria, COALESCE(SUM(valor), 0)
		FROM transacciones WHERE turno_id = $1
		GROUP BY categoria`
	rows, err := r.q.Query(ctx, query, shiftID)
	if err != nil {
		return nil, fmt.Errorf("sum transacciones by categoria: %w", err)
	}
	defer rows.Close()
	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var cat string
		var total decimal.Decimal
		if err := rows.Scan(&cat, &total); err != nil {
			return nil, fmt.Errorf("scan suma categoria: %w", err)
		}
		sums[cat] = total
	}
	return sums, rows.Err()
}

// CountByShift cuenta los eventos de un turno.
func (r *CashEventRepo) CountByShift(ctx context.Context, shiftID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM transacciones WHERE turno_id = $1`, shiftID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transacciones: %w", err)
	}
	return n, nil
}

// AuditStatsByDay cuenta confirmados y totales de todos los turnos del día.
func (r *CashEventRepo) AuditStatsByDay(ctx context.Context, dayID string) (repository.AuditStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE tr.confirmado_auditoria),
			COUNT(*)
		FROM transacciones tr
		JOIN turnos t ON t.id = tr.turno_id
		WHERE t.dia_contable_id = $1`
	var stats repository.AuditStats
	err := r.q.QueryRow(ctx, query, dayID).Scan(&stats.Confirmed, &stats.Total)
	if err != nil {
		return repository.AuditStats{}, fmt.Errorf("audit stats by dia: %w", err)
	}
	return stats, nil
}

func (r *CashEventRepo) scanOne(row pgx.Row, op string) (*entity.CashEvent, error) {
	var e entity.CashEvent
	err := row.Scan(
		&e.ID, &e.ShiftID, &e.Amount, &e.Category, &e.Note,
		&e.SupplierID, &e.ExpenseTypeID, &e.PaymentTypeID,
		&e.AuditConfirmed, &e.AuditorID, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &e, nil
}

func (r *CashEventRepo) scanRow(rows pgx.Rows) (*entity.CashEvent, error) {
	var e entity.CashEvent
	if err := rows.Scan(
		&e.ID, &e.ShiftID, &e.Amount, &e.Category, &e.Note,
		&e.SupplierID, &e.ExpenseTypeID, &e.PaymentTypeID,
		&e.AuditConfirmed, &e.AuditorID, &e.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan transaccion: %w", err)
	}
	return &e, nil
}
