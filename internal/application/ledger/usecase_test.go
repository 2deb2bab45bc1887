package ledger_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/dto"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/ledger"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/repository"
	"github.com/AmadeusReus/gestorpyme-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type eventStore struct {
	events []*entity.CashEvent
}

func (r *eventStore) Create(_ context.Context, e *entity.CashEvent) error {
	cp := *e
	r.events = append(r.events, &cp)
	return nil
}

func (r *eventStore) GetByID(_ context.Context, id string) (*entity.CashEvent, error) {
	for _, e := range r.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (r *eventStore) ListByShift(_ context.Context, shiftID string) ([]*entity.CashEvent, error) {
	var out []*entity.CashEvent
	for _, e := range r.events {
		if e.ShiftID == shiftID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *eventStore) Delete(_ context.Context, id string) (bool, error) {
	for i, e := range r.events {
		if e.ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *eventStore) ConfirmAudit(_ context.Context, id, auditorID string) (*entity.CashEvent, error) {
	for _, e := range r.events {
		if e.ID == id {
			e.AuditConfirmed = true
			e.AuditorID = &auditorID
			return e, nil
		}
	}
	return nil, nil
}

func (r *eventStore) SumByCategory(_ context.Context, shiftID string) (map[string]decimal.Decimal, error) {
	sums := make(map[string]decimal.Decimal)
	for _, e := range r.events {
		if e.ShiftID == shiftID {
			sums[e.Category] = sums[e.Category].Add(e.Amount)
		}
	}
	return sums, nil
}

func (r *eventStore) CountByShift(_ context.Context, shiftID string) (int, error) {
	n := 0
	for _, e := range r.events {
		if e.ShiftID == shiftID {
			n++
		}
	}
	return n, nil
}

func (r *eventStore) AuditStatsByDay(_ context.Context, _ string) (repository.AuditStats, error) {
	var st repository.AuditStats
	for _, e := range r.events {
		st.Total++
		if e.AuditConfirmed {
			st.Confirmed++
		}
	}
	return st, nil
}

// shiftStore fake de solo lectura: el ledger solo consulta turnos.
type shiftStore struct {
	shifts map[string]*entity.Shift
}

func (r *shiftStore) Create(context.Context, *entity.Shift) error { return nil }

func (r *shiftStore) GetByID(_ context.Context, id string) (*entity.Shift, error) {
	return r.shifts[id], nil
}

func (r *shiftStore) ListByDay(_ context.Context, dayID string) ([]*entity.Shift, error) {
	var out []*entity.Shift
	for _, s := range r.shifts {
		if s.AccountingDayID == dayID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *shiftStore) GetByDayAndNumber(context.Context, string, int) (*entity.Shift, error) {
	return nil, nil
}

func (r *shiftStore) Close(context.Context, string, decimal.Decimal, decimal.Decimal, decimal.Decimal) (*entity.Shift, error) {
	return nil, nil
}

func (r *shiftStore) MarkReviewed(context.Context, string) (*entity.Shift, error) { return nil, nil }

func (r *shiftStore) CountNotClosed(context.Context, string) (int, error) { return 0, nil }

func (r *shiftStore) CurrentByBusinessDate(context.Context, string, time.Time) (*entity.Shift, error) {
	return nil, nil
}

func (r *shiftStore) ListHistory(context.Context, string, int, int) ([]*entity.Shift, error) {
	return nil, nil
}

type userStore struct {
	members map[string]*entity.Member // key: usuario|negocio
}

func (r *userStore) GetByID(context.Context, string) (*entity.User, error)       { return nil, nil }
func (r *userStore) FindByUsername(context.Context, string) (*entity.User, error) { return nil, nil }

func (r *userStore) GetMembership(_ context.Context, userID, businessID string) (*entity.Member, error) {
	return r.members[userID+"|"+businessID], nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	bizID      = "negocio-1"
	openShift  = "turno-abierto"
	doneShift  = "turno-cerrado"
	supervisor = "user-sofia"
	empleado   = "user-ana"
)

type fixture struct {
	uc     *ledger.UseCase
	events *eventStore
	users  *userStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	events := &eventStore{}
	shifts := &shiftStore{shifts: map[string]*entity.Shift{
		openShift: {ID: openShift, AccountingDayID: "day-1", Number: 1, State: entity.ShiftStateOpen},
		doneShift: {ID: doneShift, AccountingDayID: "day-1", Number: 2, State: entity.ShiftStateClosed},
	}}
	users := &userStore{members: map[string]*entity.Member{
		supervisor + "|" + bizID: {UserID: supervisor, BusinessID: bizID, Role: entity.RoleSupervisor},
		empleado + "|" + bizID:   {UserID: empleado, BusinessID: bizID, Role: entity.RoleEmpleado},
	}}
	return &fixture{
		uc:     ledger.NewUseCase(events, shifts, users, logger.NewNop()),
		events: events,
		users:  users,
	}
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func strPtr(s string) *string { return &s }

func (f *fixture) seed(shiftID, category, amount string, confirmed bool) string {
	id := fmt.Sprintf("ev-%d", len(f.events.events)+1)
	_ = f.events.Create(context.Background(), &entity.CashEvent{
		ID:             id,
		ShiftID:        shiftID,
		Amount:         dec(amount),
		Category:       category,
		AuditConfirmed: confirmed,
	})
	return id
}

// ──────────────────────────────────────────────────────────────────────────────
// Record
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_GuardaMontoAbsolutoRedondeado(t *testing.T) {
	f := newFixture(t)

	ev, err := f.uc.Record(context.Background(), dto.RecordEventRequest{
		ShiftID:  openShift,
		Amount:   dec("12345.679"),
		Category: entity.CategoryCashExpense,
		Note:     "hielo",
	})
	require.NoError(t, err)
	assert.True(t, ev.Amount.Equal(dec("12345.68")),
		"el monto se guarda en absoluto con dos decimales")
	assert.False(t, ev.AuditConfirmed)
}

func TestRecord_CategoriaDesconocida_Invalida(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Record(context.Background(), dto.RecordEventRequest{
		ShiftID:  openShift,
		Amount:   dec("100"),
		Category: "PROPINA",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecord_MontoNoPositivo_Invalido(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Record(context.Background(), dto.RecordEventRequest{
		ShiftID:  openShift,
		Amount:   decimal.Zero,
		Category: entity.CategoryDigitalPayment,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un turno cerrado congela sus eventos: registrar sobre él alteraría la
// diferencia ya persistida al cierre.
func TestRecord_TurnoCerrado_Rechaza(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Record(context.Background(), dto.RecordEventRequest{
		ShiftID:  doneShift,
		Amount:   dec("100"),
		Category: entity.CategoryDigitalPayment,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyClosed)
	assert.Empty(t, f.events.events, "no debe quedar ningún evento registrado")
}

func TestRecord_TurnoInexistente_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Record(context.Background(), dto.RecordEventRequest{
		ShiftID:  "no-existe",
		Amount:   dec("100"),
		Category: entity.CategoryDigitalPayment,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El subtipo debe corresponder a la categoría: proveedor solo en COMPRA_PROV.
func TestRecord_SubtipoCruzado_Invalido(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Record(context.Background(), dto.RecordEventRequest{
		ShiftID:    openShift,
		Amount:     dec("100"),
		Category:   entity.CategoryDigitalPayment,
		SupplierID: strPtr("prov-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecord_SubtipoCorrecto_OK(t *testing.T) {
	f := newFixture(t)

	ev, err := f.uc.Record(context.Background(), dto.RecordEventRequest{
		ShiftID:    openShift,
		Amount:     dec("45000"),
		Category:   entity.CategorySupplierPurchase,
		SupplierID: strPtr("prov-1"),
	})
	require.NoError(t, err)
	require.NotNil(t, ev.SupplierID)
	assert.Equal(t, "prov-1", *ev.SupplierID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Remove
// ──────────────────────────────────────────────────────────────────────────────

func TestRemove_EventoDeTurnoAbierto_OK(t *testing.T) {
	f := newFixture(t)
	id := f.seed(openShift, entity.CategoryCashExpense, "100", false)

	require.NoError(t, f.uc.Remove(context.Background(), id))
	assert.Empty(t, f.events.events)
}

func TestRemove_TurnoCerrado_Rechaza(t *testing.T) {
	f := newFixture(t)
	id := f.seed(doneShift, entity.CategoryCashExpense, "100", false)

	err := f.uc.Remove(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrAlreadyClosed)
	assert.Len(t, f.events.events, 1, "el evento debe permanecer")
}

func TestRemove_EventoAuditado_Rechaza(t *testing.T) {
	f := newFixture(t)
	id := f.seed(openShift, entity.CategoryCashExpense, "100", true)

	err := f.uc.Remove(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRemove_Inexistente_NotFound(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Remove(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ConfirmAudit
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirmAudit_Supervisor_OK(t *testing.T) {
	f := newFixture(t)
	id := f.seed(doneShift, entity.CategoryDigitalPayment, "50000", false)

	ev, err := f.uc.ConfirmAudit(context.Background(), id, supervisor, bizID)
	require.NoError(t, err)
	assert.True(t, ev.AuditConfirmed)
	require.NotNil(t, ev.AuditorID)
	assert.Equal(t, supervisor, *ev.AuditorID)
}

func TestConfirmAudit_Reconfirmar_SobreescribeAuditor(t *testing.T) {
	f := newFixture(t)
	id := f.seed(doneShift, entity.CategoryDigitalPayment, "50000", false)

	_, err := f.uc.ConfirmAudit(context.Background(), id, supervisor, bizID)
	require.NoError(t, err)

	// Segundo auditor con rol válido: se queda con la última confirmación.
	otro := "user-otro"
	f.users.members[otro+"|"+bizID] = &entity.Member{UserID: otro, BusinessID: bizID, Role: entity.RoleAdministrador}

	ev, err := f.uc.ConfirmAudit(context.Background(), id, otro, bizID)
	require.NoError(t, err)
	require.NotNil(t, ev.AuditorID)
	assert.Equal(t, otro, *ev.AuditorID)
	assert.True(t, ev.AuditConfirmed)
}

func TestConfirmAudit_Empleado_Forbidden(t *testing.T) {
	f := newFixture(t)
	id := f.seed(doneShift, entity.CategoryDigitalPayment, "50000", false)

	_, err := f.uc.ConfirmAudit(context.Background(), id, empleado, bizID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resúmenes
// ──────────────────────────────────────────────────────────────────────────────

func TestSummarizeByCategory_AgrupaMontos(t *testing.T) {
	f := newFixture(t)
	f.seed(openShift, entity.CategoryDigitalPayment, "30000", false)
	f.seed(openShift, entity.CategoryDigitalPayment, "20000", false)
	f.seed(openShift, entity.CategoryCashExpense, "5000", false)
	f.seed(doneShift, entity.CategoryDigitalPayment, "99999", false)

	sums, err := f.uc.SummarizeByCategory(context.Background(), openShift)
	require.NoError(t, err)
	assert.True(t, sums[entity.CategoryDigitalPayment].Equal(dec("50000")))
	assert.True(t, sums[entity.CategoryCashExpense].Equal(dec("5000")))
	_, hasPurchases := sums[entity.CategorySupplierPurchase]
	assert.False(t, hasPurchases, "categorías sin eventos no aparecen")
}

func TestDaySummary_ConteosYMontos(t *testing.T) {
	f := newFixture(t)
	f.seed(openShift, entity.CategoryDigitalPayment, "30000", true)
	f.seed(openShift, entity.CategoryCashExpense, "5000", false)
	f.seed(doneShift, entity.CategorySupplierPurchase, "15000", false)

	summary, err := f.uc.DaySummary(context.Background(), "day-1")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Confirmed)
	assert.Equal(t, 2, summary.Pending)
	assert.True(t, summary.TotalAmount.Equal(dec("50000")))
	assert.True(t, summary.ConfirmedAmount.Equal(dec("30000")))
	assert.True(t, summary.PendingAmount.Equal(dec("20000")))
}
