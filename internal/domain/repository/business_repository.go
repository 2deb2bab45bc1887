package repository

import (
	"context"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
)

// BusinessRepository define el puerto de persistencia para negocios.
type BusinessRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Business, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.BusinessMembership, error)
}
