package repository

import (
	"context"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
)

// CatalogRepository define el puerto de persistencia para los tres catálogos
// de subtipos: proveedores, tipos de gasto y tipos de pago digital.
type CatalogRepository interface {
	CreateSupplier(ctx context.Context, s *entity.Supplier) error
	ListSuppliers(ctx context.Context, businessID string) ([]*entity.Supplier, error)
	RenameSupplier(ctx context.Context, id, name string) (*entity.Supplier, error)
	DeactivateSupplier(ctx context.Context, id string) (bool, error)

	CreateExpenseType(ctx context.Context, t *entity.ExpenseType) error
	ListExpenseTypes(ctx context.Context, businessID string) ([]*entity.ExpenseType, error)
	RenameExpenseType(ctx context.Context, id, name string) (*entity.ExpenseType, error)
	DeactivateExpenseType(ctx context.Context, id string) (bool, error)

	CreatePaymentType(ctx context.Context, t *entity.PaymentType) error
	ListPaymentTypes(ctx context.Context, businessID string) ([]*entity.PaymentType, error)
	RenamePaymentType(ctx context.Context, id, name string) (*entity.PaymentType, error)
	DeactivatePaymentType(ctx context.Context, id string) (bool, error)
}
