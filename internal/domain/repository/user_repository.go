package repository

import (
	"context"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para usuarios y membresías (DIP).
// La implementación vive en infrastructure.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetMembership devuelve nil, nil si el usuario no pertenece al negocio.
	GetMembership(ctx context.Context, userID, businessID string) (*entity.Member, error)
}
