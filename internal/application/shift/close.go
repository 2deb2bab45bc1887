package shift

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/cashbox"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/repository"
)

// Close cierra un turno calculando el arqueo.
//
// El datáfono reporta un acumulado diario: para el turno 2 la venta
// comparable es reportedPOS menos lo reportado por el turno 1. La diferencia
// se calcula contra los eventos ya registrados del turno:
//
//	total = efectivo + pagosDigitales + compras + gastos
//	diferencia = total - ventaPOSComparable
//
// Se persisten juntos estado CERRADO, efectivo contado, la lectura POS cruda
// que digitó el usuario y la diferencia; los tres quedan inmutables. Cerrar
// un turno ya CERRADO o REVISADO falla con ErrAlreadyClosed y no toca nada.
func (uc *UseCase) Close(ctx context.Context, shiftID string, reportedPOS, countedCash decimal.Decimal) (*entity.Shift, error) {
	if shiftID == "" || reportedPOS.IsNegative() || countedCash.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.Shift
	err := uc.txRunner.Run(ctx, func(
		days repository.AccountingDayRepository,
		shifts repository.ShiftRepository,
		events repository.CashEventRepository,
	) error {
		s, err := shifts.GetByID(ctx, shiftID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		// Bloquear el día serializa este cierre frente a initialize y al
		// sello del día; releer el turno ya bajo el candado.
		if _, err := days.LockByID(ctx, s.AccountingDayID); err != nil {
			return err
		}
		s, err = shifts.GetByID(ctx, shiftID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if !s.IsOpen() {
			return domain.ErrAlreadyClosed
		}

		sums, err := categorySums(ctx, events, s.ID)
		if err != nil {
			return err
		}

		previous := decimal.Zero
		if s.Number > 1 {
			prev, err := shifts.GetByDayAndNumber(ctx, s.AccountingDayID, s.Number-1)
			if err != nil {
				return err
			}
			if prev != nil && prev.ReportedPOS != nil {
				previous = *prev.ReportedPOS
			}
		}

		comparison := cashbox.ComparisonPOS(s.Number, reportedPOS, previous)
		difference := cashbox.Difference(countedCash, sums, comparison)

		result, err = shifts.Close(ctx, s.ID, countedCash.Round(2), reportedPOS.Round(2), difference)
		if err != nil {
			return err
		}
		if result == nil {
			return domain.ErrAlreadyClosed
		}
		return nil
	})
	if err != nil {
		return nil, uc.translateErr("close", err)
	}
	uc.log.Info().
		Str("turno", shiftID).
		Str("diferencia", result.Difference.String()).
		Msg("turno cerrado")
	return result, nil
}

// ConfirmAudit sello del auditor sobre un turno: CERRADO → REVISADO.
// Solo supervisores o administradores del negocio; transición terminal,
// independiente del sello del día contable.
func (uc *UseCase) ConfirmAudit(ctx context.Context, shiftID, auditorID, businessID string) (*entity.Shift, error) {
	if shiftID == "" || auditorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateAuditor(ctx, auditorID, businessID); err != nil {
		return nil, err
	}

	s, err := uc.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, uc.translateErr("confirmAudit", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	reviewed, err := uc.shiftRepo.MarkReviewed(ctx, shiftID)
	if err != nil {
		return nil, uc.translateErr("confirmAudit", err)
	}
	if reviewed == nil {
		// Existe pero no estaba CERRADO: la actualización condicionada no tocó filas.
		return nil, domain.ErrShiftNotClosed
	}
	uc.log.Info().Str("turno", shiftID).Str("auditor", auditorID).Msg("turno auditado")
	return reviewed, nil
}

// validateAuditor exige membresía con rol supervisor o administrador.
func (uc *UseCase) validateAuditor(ctx context.Context, auditorID, businessID string) error {
	if businessID == "" {
		return domain.ErrInvalidInput
	}
	member, err := uc.userRepo.GetMembership(ctx, auditorID, businessID)
	if err != nil {
		return uc.translateErr("validateAuditor", err)
	}
	if member == nil || !member.CanAudit() {
		return domain.ErrForbidden
	}
	return nil
}

// categorySums arma las sumas del arqueo desde el ledger. GASTO_GENERAL y
// AJUSTE_CAJA no entran en la fórmula del cierre.
func categorySums(ctx context.Context, events repository.CashEventRepository, shiftID string) (cashbox.CategorySums, error) {
	byCategory, err := events.SumByCategory(ctx, shiftID)
	if err != nil {
		return cashbox.CategorySums{}, err
	}
	return cashbox.CategorySums{
		Digital:   byCategory[entity.CategoryDigitalPayment],
		Purchases: byCategory[entity.CategorySupplierPurchase],
		Expenses:  byCategory[entity.CategoryCashExpense],
	}, nil
}
