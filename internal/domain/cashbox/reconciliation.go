package cashbox

import "github.com/shopspring/decimal"

// CategorySums sumas por categoría (valores absolutos) de los eventos de un turno.
type CategorySums struct {
	Digital   decimal.Decimal // PAGO_DIGITAL
	Purchases decimal.Decimal // COMPRA_PROV
	Expenses  decimal.Decimal // GASTO_CAJA
}

// ComparisonPOS determina la venta POS comparable para un turno.
// El datáfono reporta un acumulado diario que nunca se reinicia entre turnos:
// para el turno 1 la lectura es directamente comparable; para el turno 2 se
// resta la lectura reportada por el turno anterior para aislar la venta
// propia del turno.
func ComparisonPOS(shiftNumber int, reportedPOS, previousReportedPOS decimal.Decimal) decimal.Decimal {
	if shiftNumber <= 1 {
		return reportedPOS
	}
	return reportedPOS.Sub(previousReportedPOS)
}

// Difference implementa el arqueo del turno (servicio de dominio):
// totalRegistrado = efectivo + pagosDigitales + compras + gastos
// diferencia      = totalRegistrado - ventaPOSComparable
// Positivo = sobrante de caja; negativo = faltante; cero = cuadrada.
// El resultado se redondea a dos decimales (una moneda, centavos).
func Difference(countedCash decimal.Decimal, sums CategorySums, comparisonPOS decimal.Decimal) decimal.Decimal {
	total := countedCash.Add(sums.Digital).Add(sums.Purchases).Add(sums.Expenses)
	return total.Sub(comparisonPOS).Round(2)
}
