package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/dto"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/repository"
	"github.com/AmadeusReus/gestorpyme-api/pkg/logger"
)

// UseCase ledger de eventos de caja: registro, consulta, eliminación,
// confirmación de auditoría y sumas por categoría de un turno.
type UseCase struct {
	eventRepo repository.CashEventRepository
	shiftRepo repository.ShiftRepository
	userRepo  repository.UserRepository
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(eventRepo repository.CashEventRepository, shiftRepo repository.ShiftRepository, userRepo repository.UserRepository, log *logger.Logger) *UseCase {
	return &UseCase{eventRepo: eventRepo, shiftRepo: shiftRepo, userRepo: userRepo, log: log}
}

// Record registra un evento de caja en un turno. El monto se guarda siempre
// en valor absoluto; el signo visual de gastos y compras lo pone la capa de
// presentación. Solo se registra sobre un turno ABIERTO: un turno cerrado
// congela sus eventos y su diferencia.
func (uc *UseCase) Record(ctx context.Context, in dto.RecordEventRequest) (*entity.CashEvent, error) {
	if in.ShiftID == "" || !in.Amount.IsPositive() || !entity.ValidCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	if err := validateSubtypeRef(in); err != nil {
		return nil, err
	}

	s, err := uc.shiftRepo.GetByID(ctx, in.ShiftID)
	if err != nil {
		return nil, uc.translateErr("record", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if !s.IsOpen() {
		return nil, domain.ErrAlreadyClosed
	}

	event := &entity.CashEvent{
		ID:            uuid.New().String(),
		ShiftID:       in.ShiftID,
		Amount:        in.Amount.Abs().Round(2),
		Category:      in.Category,
		Note:          in.Note,
		SupplierID:    in.SupplierID,
		ExpenseTypeID: in.ExpenseTypeID,
		PaymentTypeID: in.PaymentTypeID,
		CreatedAt:     time.Now(),
	}
	if err := uc.eventRepo.Create(ctx, event); err != nil {
		return nil, uc.translateErr("record", err)
	}
	uc.log.Info().Str("turno", in.ShiftID).Str("categoria", in.Category).Msg("transacción registrada")
	return event, nil
}

// ListByShift devuelve los eventos del turno en orden de creación.
func (uc *UseCase) ListByShift(ctx context.Context, shiftID string) ([]*entity.CashEvent, error) {
	if shiftID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.eventRepo.ListByShift(ctx, shiftID)
	if err != nil {
		return nil, uc.translateErr("listByShift", err)
	}
	return list, nil
}

// Remove elimina un evento. Solo se permite mientras el turno dueño sigue
// ABIERTO y el evento no está confirmado por auditoría: un turno cerrado
// congela sus eventos.
func (uc *UseCase) Remove(ctx context.Context, eventID string) error {
	if eventID == "" {
		return domain.ErrInvalidInput
	}
	event, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return uc.translateErr("remove", err)
	}
	if event == nil {
		return domain.ErrNotFound
	}
	if event.AuditConfirmed {
		return domain.ErrConflict
	}
	s, err := uc.shiftRepo.GetByID(ctx, event.ShiftID)
	if err != nil {
		return uc.translateErr("remove", err)
	}
	if s == nil || !s.IsOpen() {
		return domain.ErrAlreadyClosed
	}
	deleted, err := uc.eventRepo.Delete(ctx, eventID)
	if err != nil {
		return uc.translateErr("remove", err)
	}
	if !deleted {
		return domain.ErrNotFound
	}
	uc.log.Info().Str("transaccion", eventID).Msg("transacción eliminada")
	return nil
}

// ConfirmAudit marca el evento como confirmado por el auditor (rol
// supervisor o administrador). Re-confirmar sobreescribe el auditor en
// silencio; el comportamiento viene así del sistema original y se conserva.
func (uc *UseCase) ConfirmAudit(ctx context.Context, eventID, auditorID, businessID string) (*entity.CashEvent, error) {
	if eventID == "" || auditorID == "" || businessID == "" {
		return nil, domain.ErrInvalidInput
	}
	member, err := uc.userRepo.GetMembership(ctx, auditorID, businessID)
	if err != nil {
		return nil, uc.translateErr("confirmAudit", err)
	}
	if member == nil || !member.CanAudit() {
		return nil, domain.ErrForbidden
	}
	event, err := uc.eventRepo.ConfirmAudit(ctx, eventID, auditorID)
	if err != nil {
		return nil, uc.translateErr("confirmAudit", err)
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	return event, nil
}

// SummarizeByCategory suma los montos (absolutos) del turno por categoría.
func (uc *UseCase) SummarizeByCategory(ctx context.Context, shiftID string) (map[string]decimal.Decimal, error) {
	if shiftID == "" {
		return nil, domain.ErrInvalidInput
	}
	sums, err := uc.eventRepo.SumByCategory(ctx, shiftID)
	if err != nil {
		return nil, uc.translateErr("summarize", err)
	}
	return sums, nil
}

// DaySummary conteos y montos de auditoría de todos los eventos de un día.
func (uc *UseCase) DaySummary(ctx context.Context, dayID string) (*dto.DayEventSummary, error) {
	if dayID == "" {
		return nil, domain.ErrInvalidInput
	}
	shifts, err := uc.shiftRepo.ListByDay(ctx, dayID)
	if err != nil {
		return nil, uc.translateErr("daySummary", err)
	}
	summary := &dto.DayEventSummary{
		TotalAmount:     decimal.Zero,
		ConfirmedAmount: decimal.Zero,
		PendingAmount:   decimal.Zero,
	}
	for _, s := range shifts {
		events, err := uc.eventRepo.ListByShift(ctx, s.ID)
		if err != nil {
			return nil, uc.translateErr("daySummary", err)
		}
		for _, e := range events {
			summary.Total++
			summary.TotalAmount = summary.TotalAmount.Add(e.Amount)
			if e.AuditConfirmed {
				summary.Confirmed++
				summary.ConfirmedAmount = summary.ConfirmedAmount.Add(e.Amount)
			}
		}
	}
	summary.Pending = summary.Total - summary.Confirmed
	summary.PendingAmount = summary.TotalAmount.Sub(summary.ConfirmedAmount)
	return summary, nil
}

// validateSubtypeRef exige a lo sumo la referencia de subtipo que corresponde
// a la categoría: proveedor para compras, tipo de gasto para gastos y tipo de
// pago para pagos digitales.
func validateSubtypeRef(in dto.RecordEventRequest) error {
	refs := 0
	if in.SupplierID != nil {
		refs++
		if in.Category != entity.CategorySupplierPurchase {
			return domain.ErrInvalidInput
		}
	}
	if in.ExpenseTypeID != nil {
		refs++
		if in.Category != entity.CategoryCashExpense && in.Category != entity.CategoryGeneralExpense {
			return domain.ErrInvalidInput
		}
	}
	if in.PaymentTypeID != nil {
		refs++
		if in.Category != entity.CategoryDigitalPayment {
			return domain.ErrInvalidInput
		}
	}
	if refs > 1 {
		return domain.ErrInvalidInput
	}
	return nil
}

func (uc *UseCase) translateErr(op string, err error) error {
	if domain.IsDomainError(err) {
		return err
	}
	uc.log.Error().Err(err).Str("op", op).Msg("falla de almacenamiento en transacciones")
	return domain.ErrUnavailable
}
