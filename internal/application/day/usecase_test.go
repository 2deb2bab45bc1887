package day_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/day"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/repository"
	"github.com/AmadeusReus/gestorpyme-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fixedClock struct{ t time.Time }

func (c fixedClock) Today() time.Time { return c.t }

type dayStore struct {
	day *entity.AccountingDay
}

func (r *dayStore) CreateIfAbsent(context.Context, string, time.Time) error { return nil }

func (r *dayStore) GetByDate(_ context.Context, businessID string, _ time.Time) (*entity.AccountingDay, error) {
	if r.day != nil && r.day.BusinessID == businessID {
		return r.day, nil
	}
	return nil, nil
}

func (r *dayStore) GetForUpdate(ctx context.Context, businessID string, date time.Time) (*entity.AccountingDay, error) {
	return r.GetByDate(ctx, businessID, date)
}

func (r *dayStore) LockByID(_ context.Context, id string) (*entity.AccountingDay, error) {
	if r.day != nil && r.day.ID == id {
		return r.day, nil
	}
	return nil, nil
}

func (r *dayStore) MarkReviewed(_ context.Context, id string) error {
	if r.day != nil && r.day.ID == id {
		r.day.State = entity.DayStateReviewed
	}
	return nil
}

type shiftStore struct {
	shifts []*entity.Shift
}

func (r *shiftStore) Create(context.Context, *entity.Shift) error { return nil }

func (r *shiftStore) GetByID(_ context.Context, id string) (*entity.Shift, error) {
	for _, s := range r.shifts {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *shiftStore) ListByDay(_ context.Context, dayID string) ([]*entity.Shift, error) {
	var out []*entity.Shift
	for n := entity.MaxShiftsPerDay; n >= 1; n-- {
		for _, s := range r.shifts {
			if s.AccountingDayID == dayID && s.Number == n {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (r *shiftStore) GetByDayAndNumber(_ context.Context, dayID string, number int) (*entity.Shift, error) {
	for _, s := range r.shifts {
		if s.AccountingDayID == dayID && s.Number == number {
			return s, nil
		}
	}
	return nil, nil
}

func (r *shiftStore) Close(context.Context, string, decimal.Decimal, decimal.Decimal, decimal.Decimal) (*entity.Shift, error) {
	return nil, nil
}

func (r *shiftStore) MarkReviewed(context.Context, string) (*entity.Shift, error) { return nil, nil }

func (r *shiftStore) CountNotClosed(_ context.Context, dayID string) (int, error) {
	n := 0
	for _, s := range r.shifts {
		if s.AccountingDayID == dayID && s.State == entity.ShiftStateOpen {
			n++
		}
	}
	return n, nil
}

func (r *shiftStore) CurrentByBusinessDate(context.Context, string, time.Time) (*entity.Shift, error) {
	return nil, nil
}

func (r *shiftStore) ListHistory(context.Context, string, int, int) ([]*entity.Shift, error) {
	return nil, nil
}

type eventStore struct {
	events []*entity.CashEvent
}

func (r *eventStore) Create(context.Context, *entity.CashEvent) error { return nil }

func (r *eventStore) GetByID(context.Context, string) (*entity.CashEvent, error) { return nil, nil }

func (r *eventStore) ListByShift(_ context.Context, shiftID string) ([]*entity.CashEvent, error) {
	var out []*entity.CashEvent
	for _, e := range r.events {
		if e.ShiftID == shiftID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *eventStore) Delete(context.Context, string) (bool, error) { return false, nil }

func (r *eventStore) ConfirmAudit(context.Context, string, string) (*entity.CashEvent, error) {
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

type userStore struct {
	members map[string]*entity.Member
}

func (r *userStore) GetByID(context.Context, string) (*entity.User, error)        { return nil, nil }
func (r *userStore) FindByUsername(context.Context, string) (*entity.User, error) { return nil, nil }

func (r *userStore) GetMembership(_ context.Context, userID, businessID string) (*entity.Member, error) {
	return r.members[userID+"|"+businessID], nil
}

type passthroughTx struct {
	days   *dayStore
	shifts *shiftStore
	events *eventStore
}

func (r *passthroughTx) Run(_ context.Context, fn func(
	repository.AccountingDayRepository,
	repository.ShiftRepository,
	repository.CashEventRepository,
) error) error {
	return fn(r.days, r.shifts, r.events)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	bizID      = "negocio-1"
	dayID      = "day-1"
	supervisor = "user-sofia"
	empleado   = "user-ana"
)

var today = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type fixture struct {
	uc     *day.UseCase
	days   *dayStore
	shifts *shiftStore
	events *eventStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	days := &dayStore{}
	shifts := &shiftStore{}
	events := &eventStore{}
	users := &userStore{members: map[string]*entity.Member{
		supervisor + "|" + bizID: {UserID: supervisor, BusinessID: bizID, Role: entity.RoleSupervisor},
		empleado + "|" + bizID:   {UserID: empleado, BusinessID: bizID, Role: entity.RoleEmpleado},
	}}
	tx := &passthroughTx{days: days, shifts: shifts, events: events}
	uc := day.NewUseCase(tx, days, shifts, events, users, fixedClock{t: today}, logger.NewNop())
	return &fixture{uc: uc, days: days, shifts: shifts, events: events}
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func (f *fixture) openDay() {
	f.days.day = &entity.AccountingDay{
		ID: dayID, BusinessID: bizID, Date: today, State: entity.DayStateOpen,
	}
}

func (f *fixture) addShift(number int, state string, counted, reported *decimal.Decimal) *entity.Shift {
	s := &entity.Shift{
		ID:              "turno-" + string(rune('0'+number)),
		AccountingDayID: dayID,
		UserID:          empleado,
		Number:          number,
		State:           state,
		CountedCash:     counted,
		ReportedPOS:     reported,
		OperatorName:    "Ana Pérez",
	}
	f.shifts.shifts = append(f.shifts.shifts, s)
	return s
}

func (f *fixture) addEvent(shiftID, category, amount string, confirmed bool) {
	f.events.events = append(f.events.events, &entity.CashEvent{
		ID:             shiftID + "-" + category,
		ShiftID:        shiftID,
		Amount:         dec(amount),
		Category:       category,
		AuditConfirmed: confirmed,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Current
// ──────────────────────────────────────────────────────────────────────────────

func TestCurrent_SinDia_DevuelveNil(t *testing.T) {
	f := newFixture(t)

	snapshot, err := f.uc.Current(context.Background(), bizID)
	require.NoError(t, err)
	assert.Nil(t, snapshot, "sin día contable el resumen es null, no un error")
}

// Un turno cerrado con eventos: la vista recalcula la diferencia con la
// fórmula del cierre y agrupa gastos de caja y compras como total_gastos.
func TestCurrent_UnTurnoCerrado_TotalesYDiferencia(t *testing.T) {
	f := newFixture(t)
	f.openDay()
	s1 := f.addShift(1, entity.ShiftStateClosed, decPtr("100000"), decPtr("100000"))
	f.addEvent(s1.ID, entity.CategoryDigitalPayment, "30000", true)
	f.addEvent(s1.ID, entity.CategoryCashExpense, "20000", false)
	f.addEvent(s1.ID, entity.CategorySupplierPurchase, "15000", false)

	snapshot, err := f.uc.Current(context.Background(), bizID)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	require.Len(t, snapshot.Shifts, 1)

	view := snapshot.Shifts[0]
	assert.True(t, view.TotalDigital.Equal(dec("30000")))
	assert.True(t, view.TotalExpense.Equal(dec("35000")),
		"total_gastos agrupa GASTO_CAJA y COMPRA_PROV")
	assert.Equal(t, 3, view.EventCount)

	// total = 100000 + 30000 + 15000 + 20000 = 165000; diff = 165000 - 100000
	require.NotNil(t, view.Difference)
	assert.True(t, view.Difference.Equal(dec("65000")))
	assert.True(t, snapshot.TotalDifference.Equal(dec("65000")))

	assert.Equal(t, 3, snapshot.TotalEvents)
	assert.Equal(t, 1, snapshot.EventsConfirmed)
	assert.Equal(t, 2, snapshot.EventsPending)
}

// El turno 2 compara contra el POS incremental: acumulado menos lo
// reportado por el turno 1.
func TestCurrent_DosTurnos_POSIncremental(t *testing.T) {
	f := newFixture(t)
	f.openDay()
	f.addShift(1, entity.ShiftStateClosed, decPtr("100000"), decPtr("100000"))
	f.addShift(2, entity.ShiftStateClosed, decPtr("90000"), decPtr("250000"))

	snapshot, err := f.uc.Current(context.Background(), bizID)
	require.NoError(t, err)
	require.Len(t, snapshot.Shifts, 2)

	assert.Equal(t, 1, snapshot.Shifts[0].Number, "la vista va en orden ascendente")
	require.NotNil(t, snapshot.Shifts[1].Difference)
	// comparable turno 2 = 250000 - 100000 = 150000; diff = 90000 - 150000
	assert.True(t, snapshot.Shifts[1].Difference.Equal(dec("-60000")))
	assert.True(t, snapshot.TotalDifference.Equal(dec("-60000")))
}

// Un turno aún abierto no tiene diferencia: sin arqueo no hay nada que comparar.
func TestCurrent_TurnoAbierto_SinDiferencia(t *testing.T) {
	f := newFixture(t)
	f.openDay()
	s1 := f.addShift(1, entity.ShiftStateOpen, nil, nil)
	f.addEvent(s1.ID, entity.CategoryDigitalPayment, "30000", false)

	snapshot, err := f.uc.Current(context.Background(), bizID)
	require.NoError(t, err)
	require.Len(t, snapshot.Shifts, 1)
	assert.Nil(t, snapshot.Shifts[0].Difference)
	assert.True(t, snapshot.TotalDifference.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Seal
// ──────────────────────────────────────────────────────────────────────────────

func TestSeal_EmpleadoNoPuedeSellar(t *testing.T) {
	f := newFixture(t)
	f.openDay()

	err := f.uc.Seal(context.Background(), bizID, empleado)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSeal_SinDia_Rechaza(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Seal(context.Background(), bizID, supervisor)
	assert.ErrorIs(t, err, domain.ErrNoDay)
}

func TestSeal_ConTurnoAbierto_Rechaza(t *testing.T) {
	f := newFixture(t)
	f.openDay()
	f.addShift(1, entity.ShiftStateClosed, decPtr("0"), decPtr("0"))
	f.addShift(2, entity.ShiftStateOpen, nil, nil)

	err := f.uc.Seal(context.Background(), bizID, supervisor)
	require.Error(t, err)

	var open *domain.ShiftsOpenError
	require.ErrorAs(t, err, &open)
	assert.Equal(t, 1, open.Open)
	assert.Equal(t, entity.DayStateOpen, f.days.day.State, "el día debe seguir abierto")
}

func TestSeal_TodosCerrados_Sella(t *testing.T) {
	f := newFixture(t)
	f.openDay()
	f.addShift(1, entity.ShiftStateClosed, decPtr("0"), decPtr("0"))

	require.NoError(t, f.uc.Seal(context.Background(), bizID, supervisor))
	assert.Equal(t, entity.DayStateReviewed, f.days.day.State)
}

func TestSeal_DiaYaRevisado_Rechaza(t *testing.T) {
	f := newFixture(t)
	f.openDay()
	f.addShift(1, entity.ShiftStateClosed, decPtr("0"), decPtr("0"))
	require.NoError(t, f.uc.Seal(context.Background(), bizID, supervisor))

	err := f.uc.Seal(context.Background(), bizID, supervisor)
	assert.ErrorIs(t, err, domain.ErrAlreadySealed)
}

// Los eventos sin confirmar no impiden el sello: la auditoría por evento es
// consultiva, el sello solo exige turnos cerrados.
func TestSeal_EventosSinAuditar_NoBloquea(t *testing.T) {
	f := newFixture(t)
	f.openDay()
	s1 := f.addShift(1, entity.ShiftStateClosed, decPtr("0"), decPtr("0"))
	f.addEvent(s1.ID, entity.CategoryDigitalPayment, "30000", false)

	require.NoError(t, f.uc.Seal(context.Background(), bizID, supervisor))
	assert.Equal(t, entity.DayStateReviewed, f.days.day.State)
}
