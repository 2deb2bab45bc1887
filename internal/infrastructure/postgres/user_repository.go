package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// GetByID obtiene un usuario por ID. Devuelve nil, nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT id, nombre_completo, username, password_hash, activo, creado_en
		FROM usuarios WHERE id = $1`
	var u entity.User
	err := r.q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.FullName, &u.Username, &u.PasswordHash, &u.Active, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by id: %w", err)
	}
	return &u, nil
}

// FindByUsername obtiene un usuario por username. Devuelve nil, nil si no existe.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `
		SELECT id, nombre_completo, username, password_hash, activo, creado_en
		FROM usuarios WHERE username = $1 LIMIT 1`
	var u entity.User
	err := r.q.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.FullName, &u.Username, &u.PasswordHash, &u.Active, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by username: %w", err)
	}
	return &u, nil
}

// GetMembership obtiene la membresía de un usuario en un negocio. Devuelve nil, nil si no pertenece.
func (r *UserRepo) GetMembership(ctx context.Context, userID, businessID string) (*entity.Member, error) {
	query := `
		SELECT usuario_id, negocio_id, rol
		FROM miembros WHERE usuario_id = $1 AND negocio_id = $2`
	var m entity.Member
	err := r.q.QueryRow(ctx, query, userID, businessID).Scan(&m.UserID, &m.BusinessID, &m.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membresía: %w", err)
	}
	return &m, nil
}
