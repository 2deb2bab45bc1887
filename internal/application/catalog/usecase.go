package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/dto"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/repository"
	"github.com/AmadeusReus/gestorpyme-api/pkg/logger"
)

// Kind identifica cuál de los tres catálogos de subtipos se opera.
type Kind string

const (
	KindSupplier    Kind = "proveedores"
	KindExpenseType Kind = "tipos_gasto"
	KindPaymentType Kind = "tipos_pago_digital"
)

// UseCase CRUD de catálogos por negocio: proveedores, tipos de gasto y
// tipos de pago digital. La baja es lógica (activo = false) porque las
// transacciones históricas referencian estas entradas.
type UseCase struct {
	repo repository.CatalogRepository
	log  *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CatalogRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, log: log}
}

// Create agrega una entrada al catálogo indicado.
func (uc *UseCase) Create(ctx context.Context, kind Kind, businessID string, in dto.CatalogItemRequest) (*dto.CatalogItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if businessID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	id := uuid.New().String()
	now := time.Now()

	var err error
	switch kind {
	case KindSupplier:
		err = uc.repo.CreateSupplier(ctx, &entity.Supplier{ID: id, BusinessID: businessID, Name: name, Active: true, CreatedAt: now})
	case KindExpenseType:
		err = uc.repo.CreateExpenseType(ctx, &entity.ExpenseType{ID: id, BusinessID: businessID, Name: name, Active: true, CreatedAt: now})
	case KindPaymentType:
		err = uc.repo.CreatePaymentType(ctx, &entity.PaymentType{ID: id, BusinessID: businessID, Name: name, Active: true, CreatedAt: now})
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, uc.translateErr("create", err)
	}
	return &dto.CatalogItemResponse{ID: id, BusinessID: businessID, Name: name, Active: true, CreatedAt: now}, nil
}

// List devuelve las entradas del catálogo de un negocio, ordenadas por nombre.
func (uc *UseCase) List(ctx context.Context, kind Kind, businessID string) ([]dto.CatalogItemResponse, error) {
	if businessID == "" {
		return nil, domain.ErrInvalidInput
	}
	var (
		out []dto.CatalogItemResponse
		err error
	)
	switch kind {
	case KindSupplier:
		var items []*entity.Supplier
		if items, err = uc.repo.ListSuppliers(ctx, businessID); err == nil {
			for _, it := range items {
				out = append(out, dto.CatalogItemResponse{ID: it.ID, BusinessID: it.BusinessID, Name: it.Name, Active: it.Active, CreatedAt: it.CreatedAt})
			}
		}
	case KindExpenseType:
		var items []*entity.ExpenseType
		if items, err = uc.repo.ListExpenseTypes(ctx, businessID); err == nil {
			for _, it := range items {
				out = append(out, dto.CatalogItemResponse{ID: it.ID, BusinessID: it.BusinessID, Name: it.Name, Active: it.Active, CreatedAt: it.CreatedAt})
			}
		}
	case KindPaymentType:
		var items []*entity.PaymentType
		if items, err = uc.repo.ListPaymentTypes(ctx, businessID); err == nil {
			for _, it := range items {
				out = append(out, dto.CatalogItemResponse{ID: it.ID, BusinessID: it.BusinessID, Name: it.Name, Active: it.Active, CreatedAt: it.CreatedAt})
			}
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, uc.translateErr("list", err)
	}
	return out, nil
}

// Rename cambia el nombre de una entrada.
func (uc *UseCase) Rename(ctx context.Context, kind Kind, id string, in dto.CatalogItemRequest) (*dto.CatalogItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if id == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch kind {
	case KindSupplier:
		it, err := uc.repo.RenameSupplier(ctx, id, name)
		if err != nil {
			return nil, uc.translateErr("rename", err)
		}
		if it == nil {
			return nil, domain.ErrNotFound
		}
		return &dto.CatalogItemResponse{ID: it.ID, BusinessID: it.BusinessID, Name: it.Name, Active: it.Active, CreatedAt: it.CreatedAt}, nil
	case KindExpenseType:
		it, err := uc.repo.RenameExpenseType(ctx, id, name)
		if err != nil {
			return nil, uc.translateErr("rename", err)
		}
		if it == nil {
			return nil, domain.ErrNotFound
		}
		return &dto.CatalogItemResponse{ID: it.ID, BusinessID: it.BusinessID, Name: it.Name, Active: it.Active, CreatedAt: it.CreatedAt}, nil
	case KindPaymentType:
		it, err := uc.repo.RenamePaymentType(ctx, id, name)
		if err != nil {
			return nil, uc.translateErr("rename", err)
		}
		if it == nil {
			return nil, domain.ErrNotFound
		}
		return &dto.CatalogItemResponse{ID: it.ID, BusinessID: it.BusinessID, Name: it.Name, Active: it.Active, CreatedAt: it.CreatedAt}, nil
	}
	return nil, domain.ErrInvalidInput
}

// Deactivate baja lógica de una entrada (activo = false).
func (uc *UseCase) Deactivate(ctx context.Context, kind Kind, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	var (
		found bool
		err   error
	)
	switch kind {
	case KindSupplier:
		found, err = uc.repo.DeactivateSupplier(ctx, id)
	case KindExpenseType:
		found, err = uc.repo.DeactivateExpenseType(ctx, id)
	case KindPaymentType:
		found, err = uc.repo.DeactivatePaymentType(ctx, id)
	default:
		return domain.ErrInvalidInput
	}
	if err != nil {
		return uc.translateErr("deactivate", err)
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *UseCase) translateErr(op string, err error) error {
	if domain.IsDomainError(err) {
		return err
	}
	uc.log.Error().Err(err).Str("op", op).Msg("falla de almacenamiento en catálogos")
	return domain.ErrUnavailable
}
