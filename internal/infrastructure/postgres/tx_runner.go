package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/shift"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/repository"
)

// Ensure TxRunner implements shift.TxRunner.
var _ shift.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Si timeout > 0, acota la transacción completa con context.WithTimeout para
// que un bloqueo de fila nunca quede esperando indefinidamente.
type TxRunner struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, timeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, timeout: timeout}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los bloqueos de fila tomados dentro de fn (SELECT FOR UPDATE sobre dias_contables)
// viven hasta el Commit, lo que serializa apertura, cierre y sellado por día.
func (r *TxRunner) Run(ctx context.Context, fn func(
	days repository.AccountingDayRepository,
	shifts repository.ShiftRepository,
	events repository.CashEventRepository,
) error) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	dayRepo := NewAccountingDayRepository(tx)
	shiftRepo := NewShiftRepository(tx)
	eventRepo := NewCashEventRepository(tx)

	if err := fn(dayRepo, shiftRepo, eventRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
