package entity

import "time"

// Supplier proveedor de un negocio (catálogo para COMPRA_PROV).
type Supplier struct {
	ID         string
	BusinessID string
	Name       string
	Active     bool
	CreatedAt  time.Time
}

// ExpenseType tipo de gasto de un negocio (catálogo para GASTO_CAJA).
type ExpenseType struct {
	ID         string
	BusinessID string
	Name       string
	Active     bool
	CreatedAt  time.Time
}

// PaymentType tipo de pago digital de un negocio (catálogo para PAGO_DIGITAL).
type PaymentType struct {
	ID         string
	BusinessID string
	Name       string
	Active     bool
	CreatedAt  time.Time
}
