package day

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/dto"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/shift"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/cashbox"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/repository"
	"github.com/AmadeusReus/gestorpyme-api/pkg/logger"
)

// UseCase vista agregada del día contable y su sello ABIERTO → REVISADO.
type UseCase struct {
	txRunner  shift.TxRunner
	dayRepo   repository.AccountingDayRepository
	shiftRepo repository.ShiftRepository
	eventRepo repository.CashEventRepository
	userRepo  repository.UserRepository
	clock     shift.Clock
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner shift.TxRunner,
	dayRepo repository.AccountingDayRepository,
	shiftRepo repository.ShiftRepository,
	eventRepo repository.CashEventRepository,
	userRepo repository.UserRepository,
	clock shift.Clock,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		dayRepo:   dayRepo,
		shiftRepo: shiftRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		clock:     clock,
		log:       log,
	}
}

// Current arma el resumen del día contable de hoy: cada turno con sus
// totales por categoría y diferencia recalculada desde los eventos (misma
// fórmula del cierre, así el resumen es correcto aunque la diferencia
// almacenada aún no exista para un turno en curso), más los totales del día
// y los conteos de auditoría. Devuelve nil, nil si hoy no existe día
// contable: todavía no pasó nada, no es un error.
func (uc *UseCase) Current(ctx context.Context, businessID string) (*dto.DaySnapshot, error) {
	if businessID == "" {
		return nil, domain.ErrInvalidInput
	}

	today := uc.clock.Today()
	accountingDay, err := uc.dayRepo.GetByDate(ctx, businessID, today)
	if err != nil {
		return nil, uc.translateErr("current", err)
	}
	if accountingDay == nil {
		return nil, nil
	}

	shiftsDesc, err := uc.shiftRepo.ListByDay(ctx, accountingDay.ID)
	if err != nil {
		return nil, uc.translateErr("current", err)
	}
	// Orden ascendente por número para la vista y para encadenar el POS incremental.
	shifts := make([]*entity.Shift, 0, len(shiftsDesc))
	for i := len(shiftsDesc) - 1; i >= 0; i-- {
		shifts = append(shifts, shiftsDesc[i])
	}

	snapshot := &dto.DaySnapshot{
		ID:              accountingDay.ID,
		BusinessID:      accountingDay.BusinessID,
		Date:            accountingDay.Date,
		State:           accountingDay.State,
		Shifts:          make([]dto.DayShiftView, 0, len(shifts)),
		TotalDigital:    decimal.Zero,
		TotalExpenses:   decimal.Zero,
		TotalDifference: decimal.Zero,
	}

	previousReported := decimal.Zero
	for _, s := range shifts {
		byCategory, err := uc.eventRepo.SumByCategory(ctx, s.ID)
		if err != nil {
			return nil, uc.translateErr("current", err)
		}
		count, err := uc.eventRepo.CountByShift(ctx, s.ID)
		if err != nil {
			return nil, uc.translateErr("current", err)
		}

		sums := cashbox.CategorySums{
			Digital:   byCategory[entity.CategoryDigitalPayment],
			Purchases: byCategory[entity.CategorySupplierPurchase],
			Expenses:  byCategory[entity.CategoryCashExpense],
		}
		view := dto.DayShiftView{
			ID:           s.ID,
			Number:       s.Number,
			State:        s.State,
			UserID:       s.UserID,
			OperatorName: s.OperatorName,
			CountedCash:  s.CountedCash,
			ReportedPOS:  s.ReportedPOS,
			TotalDigital: sums.Digital,
			TotalExpense: sums.Expenses.Add(sums.Purchases),
			EventCount:   count,
		}

		// Diferencia recalculada con la fórmula canónica del cierre; solo
		// cuando el turno ya tiene efectivo y lectura POS registrados.
		if s.CountedCash != nil && s.ReportedPOS != nil {
			comparison := cashbox.ComparisonPOS(s.Number, *s.ReportedPOS, previousReported)
			diff := cashbox.Difference(*s.CountedCash, sums, comparison)
			view.Difference = &diff
			snapshot.TotalDifference = snapshot.TotalDifference.Add(diff)
		}
		if s.ReportedPOS != nil {
			previousReported = *s.ReportedPOS
		}

		snapshot.TotalEvents += count
		snapshot.TotalDigital = snapshot.TotalDigital.Add(view.TotalDigital)
		snapshot.TotalExpenses = snapshot.TotalExpenses.Add(view.TotalExpense)
		snapshot.Shifts = append(snapshot.Shifts, view)
	}

	stats, err := uc.eventRepo.AuditStatsByDay(ctx, accountingDay.ID)
	if err != nil {
		return nil, uc.translateErr("current", err)
	}
	snapshot.EventsConfirmed = stats.Confirmed
	snapshot.EventsPending = stats.Total - stats.Confirmed
	return snapshot, nil
}

// Seal marca el día contable de hoy como REVISADO. Única autoridad del
// sello: exige rol supervisor o administrador, que exista día y que todos
// los turnos estén CERRADOS. Las confirmaciones de auditoría por evento son
// una señal consultiva, no un requisito del sello. Irreversible.
func (uc *UseCase) Seal(ctx context.Context, businessID, userID string) error {
	if businessID == "" || userID == "" {
		return domain.ErrInvalidInput
	}
	member, err := uc.userRepo.GetMembership(ctx, userID, businessID)
	if err != nil {
		return uc.translateErr("seal", err)
	}
	if member == nil || !member.CanAudit() {
		return domain.ErrForbidden
	}

	today := uc.clock.Today()
	err = uc.txRunner.Run(ctx, func(
		days repository.AccountingDayRepository,
		shifts repository.ShiftRepository,
		_ repository.CashEventRepository,
	) error {
		accountingDay, err := days.GetForUpdate(ctx, businessID, today)
		if err != nil {
			return err
		}
		if accountingDay == nil {
			return domain.ErrNoDay
		}
		if accountingDay.State == entity.DayStateReviewed {
			return domain.ErrAlreadySealed
		}
		open, err := shifts.CountNotClosed(ctx, accountingDay.ID)
		if err != nil {
			return err
		}
		if open > 0 {
			return &domain.ShiftsOpenError{Open: open}
		}
		return days.MarkReviewed(ctx, accountingDay.ID)
	})
	if err != nil {
		return uc.translateErr("seal", err)
	}
	uc.log.Info().Str("negocio", businessID).Msg("día contable revisado")
	return nil
}

func (uc *UseCase) translateErr(op string, err error) error {
	if domain.IsDomainError(err) {
		return err
	}
	uc.log.Error().Err(err).Str("op", op).Msg("falla de almacenamiento en día contable")
	return domain.ErrUnavailable
}
