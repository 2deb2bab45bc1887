package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de eventos de caja (CHECK de transacciones).
const (
	CategoryDigitalPayment   = "PAGO_DIGITAL"
	CategoryCashExpense      = "GASTO_CAJA"
	CategorySupplierPurchase = "COMPRA_PROV"
	CategoryGeneralExpense   = "GASTO_GENERAL"
	CategoryCashAdjustment   = "AJUSTE_CAJA"
)

// ValidCategory reporta si la categoría es una de las conocidas.
func ValidCategory(c string) bool {
	switch c {
	case CategoryDigitalPayment, CategoryCashExpense, CategorySupplierPurchase,
		CategoryGeneralExpense, CategoryCashAdjustment:
		return true
	}
	return false
}

// CashEvent representa un movimiento de caja dentro de un turno.
// El monto se almacena siempre en valor absoluto; el signo visual
// (gastos/compras en negativo) es responsabilidad de la capa de presentación.
type CashEvent struct {
	ID             string
	ShiftID        string
	Amount         decimal.Decimal // siempre > 0, dos decimales
	Category       string
	Note           string
	SupplierID     *string // solo COMPRA_PROV
	ExpenseTypeID  *string // solo GASTO_CAJA / GASTO_GENERAL
	PaymentTypeID  *string // solo PAGO_DIGITAL
	AuditConfirmed bool
	AuditorID      *string
	CreatedAt      time.Time
}
