package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/repository"
	"github.com/AmadeusReus/gestorpyme-api/pkg/logger"
)

// UseCase ciclo de vida del turno: abrir/retomar, cerrar con arqueo
// incremental del POS, auditar y consultas de solo lectura.
type UseCase struct {
	txRunner  TxRunner
	userRepo  repository.UserRepository
	shiftRepo repository.ShiftRepository
	clock     Clock
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, userRepo repository.UserRepository, shiftRepo repository.ShiftRepository, clock Clock, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, userRepo: userRepo, shiftRepo: shiftRepo, clock: clock, log: log}
}

// Initialize abre o retoma el turno activo del día.
// Crea el día contable si hace falta (inserción idempotente por
// (negocio, fecha)), y luego retoma el turno ABIERTO del caller, rechaza si
// lo tiene otro empleado, o crea el turno 1 o 2 siguiente.
func (uc *UseCase) Initialize(ctx context.Context, userID, businessID string) (*entity.Shift, error) {
	if userID == "" || businessID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}

	today := uc.clock.Today()
	var result *entity.Shift

	err := uc.txRunner.Run(ctx, func(
		days repository.AccountingDayRepository,
		shifts repository.ShiftRepository,
		_ repository.CashEventRepository,
	) error {
		// Inserción idempotente y lectura bloqueante de la fila del día:
		// dos operadores concurrentes convergen en la misma fila y quedan
		// serializados para el resto de la transacción.
		if err := days.CreateIfAbsent(ctx, businessID, today); err != nil {
			return err
		}
		day, err := days.GetForUpdate(ctx, businessID, today)
		if err != nil {
			return err
		}
		if day == nil {
			return fmt.Errorf("día contable ausente tras inserción idempotente (%s, %s)", businessID, today.Format("2006-01-02"))
		}
		if day.State == entity.DayStateReviewed {
			return domain.ErrDayLocked
		}

		existing, err := shifts.ListByDay(ctx, day.ID)
		if err != nil {
			return err
		}

		nextNumber := 1
		for _, s := range existing {
			if s.IsOpen() {
				if s.UserID == userID {
					result = s // retomar el turno propio
					return nil
				}
				return &domain.ShiftHeldByOtherError{
					OperatorName: s.OperatorName,
					ShiftNumber:  s.Number,
				}
			}
		}
		if len(existing) > 0 {
			// ListByDay viene ordenado por numero_turno descendente.
			nextNumber = existing[0].Number + 1
		}
		if nextNumber > entity.MaxShiftsPerDay {
			return domain.ErrDayFull
		}

		created := &entity.Shift{
			ID:              uuid.New().String(),
			AccountingDayID: day.ID,
			UserID:          userID,
			Number:          nextNumber,
			State:           entity.ShiftStateOpen,
			CreatedAt:       time.Now(),
		}
		if err := shifts.Create(ctx, created); err != nil {
			return err
		}
		// Releer con el nombre del operador para la presentación.
		result, err = shifts.GetByID(ctx, created.ID)
		return err
	})
	if err != nil {
		return nil, uc.translateErr("initialize", err)
	}
	uc.log.Info().Str("negocio", businessID).Int("turno", result.Number).Msg("turno inicializado")
	return result, nil
}

// Current devuelve el turno de hoy del negocio, priorizando el ABIERTO.
// nil, nil significa que hoy no se ha registrado ningún turno.
func (uc *UseCase) Current(ctx context.Context, businessID string) (*entity.Shift, error) {
	if businessID == "" {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.shiftRepo.CurrentByBusinessDate(ctx, businessID, uc.clock.Today())
	if err != nil {
		return nil, uc.translateErr("current", err)
	}
	return s, nil
}

// Get obtiene un turno por id.
func (uc *UseCase) Get(ctx context.Context, shiftID string) (*entity.Shift, error) {
	if shiftID == "" {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, uc.translateErr("get", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// ListByDay devuelve los turnos de un día contable, número ascendente.
func (uc *UseCase) ListByDay(ctx context.Context, dayID string) ([]*entity.Shift, error) {
	if dayID == "" {
		return nil, domain.ErrInvalidInput
	}
	desc, err := uc.shiftRepo.ListByDay(ctx, dayID)
	if err != nil {
		return nil, uc.translateErr("listByDay", err)
	}
	asc := make([]*entity.Shift, 0, len(desc))
	for i := len(desc) - 1; i >= 0; i-- {
		asc = append(asc, desc[i])
	}
	return asc, nil
}

// History devuelve turnos recientes del negocio con paginación.
func (uc *UseCase) History(ctx context.Context, businessID string, limit, offset int) ([]*entity.Shift, error) {
	if businessID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.shiftRepo.ListHistory(ctx, businessID, limit, offset)
	if err != nil {
		return nil, uc.translateErr("history", err)
	}
	return list, nil
}

// validateAccess verifica usuario existente, activo y miembro del negocio.
func (uc *UseCase) validateAccess(ctx context.Context, userID, businessID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return uc.translateErr("validateAccess", err)
	}
	if user == nil || !user.Active {
		return domain.ErrForbidden
	}
	member, err := uc.userRepo.GetMembership(ctx, userID, businessID)
	if err != nil {
		return uc.translateErr("validateAccess", err)
	}
	if member == nil {
		return domain.ErrForbidden
	}
	return nil
}

// translateErr deja pasar los errores de dominio y traduce cualquier falla
// de almacenamiento a ErrUnavailable, registrándola sin exponer el texto
// crudo del driver al caller.
func (uc *UseCase) translateErr(op string, err error) error {
	if domain.IsDomainError(err) {
		return err
	}
	uc.log.Error().Err(err).Str("op", op).Msg("falla de almacenamiento en turnos")
	return domain.ErrUnavailable
}
