package cashbox_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain/cashbox"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// Turno 1: la lectura POS acumulada es comparable tal cual.
func TestComparisonPOS_Turno1(t *testing.T) {
	got := cashbox.ComparisonPOS(1, d(100000), decimal.Zero)
	assert.True(t, got.Equal(d(100000)))
}

// Turno 2: se resta la lectura del turno anterior (POS incremental).
func TestComparisonPOS_Turno2Incremental(t *testing.T) {
	got := cashbox.ComparisonPOS(2, d(250000), d(100000))
	assert.True(t, got.Equal(d(150000)),
		"la venta del turno 2 debe ser el delta del acumulado: 250000-100000")
}

// Escenario de arqueo del turno 1: un pago digital de 50000 y un gasto de
// caja de 20000, efectivo contado 70000, POS reportado 100000.
// total = 70000+50000+0+20000 = 140000; diferencia = 140000-100000 = 40000.
func TestDifference_Turno1Sobrante(t *testing.T) {
	sums := cashbox.CategorySums{
		Digital:   d(50000),
		Purchases: decimal.Zero,
		Expenses:  d(20000),
	}
	diff := cashbox.Difference(d(70000), sums, cashbox.ComparisonPOS(1, d(100000), decimal.Zero))
	assert.True(t, diff.Equal(d(40000)), "esperaba sobrante de 40000, obtuve %s", diff)
}

// Escenario de arqueo del turno 2 sin eventos: efectivo 90000, POS acumulado
// 250000 con turno 1 en 100000. comparable = 150000; diferencia = -60000.
func TestDifference_Turno2Faltante(t *testing.T) {
	comparison := cashbox.ComparisonPOS(2, d(250000), d(100000))
	diff := cashbox.Difference(d(90000), cashbox.CategorySums{}, comparison)
	assert.True(t, diff.Equal(d(-60000)), "esperaba faltante de 60000, obtuve %s", diff)
}

// Caja cuadrada: diferencia exactamente cero.
func TestDifference_Cuadrada(t *testing.T) {
	sums := cashbox.CategorySums{Digital: d(30000)}
	diff := cashbox.Difference(d(70000), sums, d(100000))
	assert.True(t, diff.IsZero())
}

// El resultado queda redondeado a dos decimales.
func TestDifference_RedondeoDosDecimales(t *testing.T) {
	counted, _ := decimal.NewFromString("10.005")
	diff := cashbox.Difference(counted, cashbox.CategorySums{}, decimal.Zero)
	expected, _ := decimal.NewFromString("10.01")
	assert.True(t, diff.Equal(expected), "esperaba 10.01, obtuve %s", diff)
}
