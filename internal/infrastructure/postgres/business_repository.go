package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/repository"
)

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo implementación del puerto BusinessRepository sobre PostgreSQL.
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository construye el adaptador de persistencia para negocios.
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

// GetByID obtiene un negocio por ID. Devuelve nil, nil si no existe.
func (r *BusinessRepo) GetByID(ctx context.Context, id string) (*entity.Business, error) {
	query := `SELECT id, nombre, creado_en FROM negocios WHERE id = $1`
	var b entity.Business
	err := r.q.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get negocio by id: %w", err)
	}
	return &b, nil
}

// ListByUser lista los negocios a los que pertenece el usuario, con su rol en cada uno.
func (r *BusinessRepo) ListByUser(ctx context.Context, userID string) ([]*entity.BusinessMembership, error) {
	query := `
		SELECT n.id, n.nombre, m.rol
		FROM miembros m
		JOIN negocios n ON n.id = m.negocio_id
		WHERE m.usuario_id = $1
		ORDER BY n.nombre`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list negocios by usuario: %w", err)
	}
	defer rows.Close()
	var list []*entity.BusinessMembership
	for rows.Next() {
		var m entity.BusinessMembership
		if err := rows.Scan(&m.BusinessID, &m.Name, &m.Role); err != nil {
			return nil, fmt.Errorf("scan membresía: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
