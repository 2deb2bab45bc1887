package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación del puerto CatalogRepository sobre PostgreSQL.
// Las tres tablas de catálogo (proveedores, tipos_gasto, tipos_pago_digital)
// comparten forma, así que las operaciones delegan en helpers por tabla.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador de catálogos. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// catalogRow forma común de las filas de catálogo.
type catalogRow struct {
	ID         string
	BusinessID string
	Name       string
	Active     bool
	CreatedAt  time.Time
}

func (r *CatalogRepo) create(ctx context.Context, table, id, businessID, name string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, negocio_id, nombre, activo)
		VALUES ($1, $2, $3, TRUE)`, table)
	_, err := r.q.Exec(ctx, query, id, businessID, name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (r *CatalogRepo) listActive(ctx context.Context, table, businessID string) ([]catalogRow, error) {
	query := fmt.Sprintf(`
		SELECT id, negocio_id, nombre, activo, creado_en
		FROM %s WHERE negocio_id = $1 AND activo = TRUE
		ORDER BY nombre`, table)
	rows, err := r.q.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()
	var list []catalogRow
	for rows.Next() {
		var c catalogRow
		if err := rows.Scan(&c.ID, &c.BusinessID, &c.Name, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CatalogRepo) rename(ctx context.Context, table, id, name string) (*catalogRow, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET nombre = $2
		WHERE id = $1
		RETURNING id, negocio_id, nombre, activo, creado_en`, table)
	var c catalogRow
	err := r.q.QueryRow(ctx, query, id, name).Scan(&c.ID, &c.BusinessID, &c.Name, &c.Active, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("rename %s: %w", table, err)
	}
	return &c, nil
}

// deactivate baja lógica: las transacciones históricas siguen referenciando la fila.
func (r *CatalogRepo) deactivate(ctx context.Context, table, id string) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET activo = FALSE WHERE id = $1`, table)
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("deactivate %s: %w", table, err)
	}
	return tag.RowsAffected() > 0, nil
}

// CreateSupplier persiste un proveedor nuevo.
func (r *CatalogRepo) CreateSupplier(ctx context.Context, s *entity.Supplier) error {
	return r.create(ctx, "proveedores", s.ID, s.BusinessID, s.Name)
}

// ListSuppliers lista los proveedores activos del negocio.
func (r *CatalogRepo) ListSuppliers(ctx context.Context, businessID string) ([]*entity.Supplier, error) {
	rows, err := r.listActive(ctx, "proveedores", businessID)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.Supplier, 0, len(rows))
	for _, c := range rows {
		list = append(list, &entity.Supplier{ID: c.ID, BusinessID: c.BusinessID, Name: c.Name, Active: c.Active, CreatedAt: c.CreatedAt})
	}
	return list, nil
}

// RenameSupplier actualiza el nombre. Devuelve nil, nil si no existe.
func (r *CatalogRepo) RenameSupplier(ctx context.Context, id, name string) (*entity.Supplier, error) {
	c, err := r.rename(ctx, "proveedores", id, name)
	if err != nil || c == nil {
		return nil, err
	}
	return &entity.Supplier{ID: c.ID, BusinessID: c.BusinessID, Name: c.Name, Active: c.Active, CreatedAt: c.CreatedAt}, nil
}

// DeactivateSupplier baja lógica. Devuelve false si no existía.
func (r *CatalogRepo) DeactivateSupplier(ctx context.Context, id string) (bool, error) {
	return r.deactivate(ctx, "proveedores", id)
}

// CreateExpenseType persiste un tipo de gasto nuevo.
func (r *CatalogRepo) CreateExpenseType(ctx context.Context, t *entity.ExpenseType) error {
	return r.create(ctx, "tipos_gasto", t.ID, t.BusinessID, t.Name)
}

// ListExpenseTypes lista los tipos de gasto activos del negocio.
func (r *CatalogRepo) ListExpenseTypes(ctx context.Context, businessID string) ([]*entity.ExpenseType, error) {
	rows, err := r.listActive(ctx, "tipos_gasto", businessID)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.ExpenseType, 0, len(rows))
	for _, c := range rows {
		list = append(list, &entity.ExpenseType{ID: c.ID, BusinessID: c.BusinessID, Name: c.Name, Active: c.Active, CreatedAt: c.CreatedAt})
	}
	return list, nil
}

// RenameExpenseType actualiza el nombre. Devuelve nil, nil si no existe.
func (r *CatalogRepo) RenameExpenseType(ctx context.Context, id, name string) (*entity.ExpenseType, error) {
	c, err := r.rename(ctx, "tipos_gasto", id, name)
	if err != nil || c == nil {
		return nil, err
	}
	return &entity.ExpenseType{ID: c.ID, BusinessID: c.BusinessID, Name: c.Name, Active: c.Active, CreatedAt: c.CreatedAt}, nil
}

// DeactivateExpenseType baja lógica. Devuelve false si no existía.
func (r *CatalogRepo) DeactivateExpenseType(ctx context.Context, id string) (bool, error) {
	return r.deactivate(ctx, "tipos_gasto", id)
}

// CreatePaymentType persiste un tipo de pago digital nuevo.
func (r *CatalogRepo) CreatePaymentType(ctx context.Context, t *entity.PaymentType) error {
	return r.create(ctx, "tipos_pago_digital", t.ID, t.BusinessID, t.Name)
}

// ListPaymentTypes lista los tipos de pago digital activos del negocio.
func (r *CatalogRepo) ListPaymentTypes(ctx context.Context, businessID string) ([]*entity.PaymentType, error) {
	rows, err := r.listActive(ctx, "tipos_pago_digital", businessID)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.PaymentType, 0, len(rows))
	for _, c := range rows {
		list = append(list, &entity.PaymentType{ID: c.ID, BusinessID: c.BusinessID, Name: c.Name, Active: c.Active, CreatedAt: c.CreatedAt})
	}
	return list, nil
}

// RenamePaymentType actualiza el nombre. Devuelve nil, nil si no existe.
func (r *CatalogRepo) RenamePaymentType(ctx context.Context, id, name string) (*entity.PaymentType, error) {
	c, err := r.rename(ctx, "tipos_pago_digital", id, name)
	if err != nil || c == nil {
		return nil, err
	}
	return &entity.PaymentType{ID: c.ID, BusinessID: c.BusinessID, Name: c.Name, Active: c.Active, CreatedAt: c.CreatedAt}, nil
}

// DeactivatePaymentType baja lógica. Devuelve false si no existía.
func (r *CatalogRepo) DeactivatePaymentType(ctx context.Context, id string) (bool, error) {
	return r.deactivate(ctx, "tipos_pago_digital", id)
}
