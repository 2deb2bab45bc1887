package business

import (
	"context"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/dto"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/repository"
	"github.com/AmadeusReus/gestorpyme-api/pkg/logger"
)

// UseCase consultas de negocios (usado por el selector de negocio del admin).
type UseCase struct {
	repo repository.BusinessRepository
	log  *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.BusinessRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, log: log}
}

// ListByUser devuelve los negocios a los que pertenece el usuario, con su rol.
func (uc *UseCase) ListByUser(ctx context.Context, userID string) ([]dto.BusinessResponse, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	memberships, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		if domain.IsDomainError(err) {
			return nil, err
		}
		uc.log.Error().Err(err).Msg("falla de almacenamiento en negocios")
		return nil, domain.ErrUnavailable
	}
	out := make([]dto.BusinessResponse, 0, len(memberships))
	for _, m := range memberships {
		out = append(out, dto.BusinessResponse{ID: m.BusinessID, Name: m.Name, Role: m.Role})
	}
	return out, nil
}
