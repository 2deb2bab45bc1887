package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/auth"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/dto"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/session"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/entity"
	"github.com/AmadeusReus/gestorpyme-api/pkg/jwt"
	"github.com/AmadeusReus/gestorpyme-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type userStore struct {
	users map[string]*entity.User // key: username
}

func (r *userStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *userStore) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.users[username], nil
}

func (r *userStore) GetMembership(context.Context, string, string) (*entity.Member, error) {
	return nil, nil
}

type businessStore struct {
	memberships map[string][]*entity.BusinessMembership // key: userID
}

func (r *businessStore) GetByID(context.Context, string) (*entity.Business, error) {
	return nil, nil
}

func (r *businessStore) ListByUser(_ context.Context, userID string) ([]*entity.BusinessMembership, error) {
	return r.memberships[userID], nil
}

// plainVerifier acepta cuando hash == "hash:" + plano.
type plainVerifier struct{}

func (plainVerifier) Verify(plain, hash string) bool { return hash == "hash:"+plain }

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	anaID  = "user-ana"
	bizID  = "negocio-1"
	secret = "test-secret-key-for-unit-tests"
)

func newUseCase(t *testing.T) (*auth.UseCase, *session.Guard) {
	t.Helper()
	users := &userStore{users: map[string]*entity.User{
		"ana":      {ID: anaID, FullName: "Ana Pérez", Username: "ana", PasswordHash: "hash:secreta123", Active: true},
		"inactivo": {ID: "user-in", Username: "inactivo", PasswordHash: "hash:x", Active: false},
		"huerfano": {ID: "user-hu", Username: "huerfano", PasswordHash: "hash:x", Active: true},
	}}
	businesses := &businessStore{memberships: map[string][]*entity.BusinessMembership{
		anaID: {{BusinessID: bizID, Name: "Asadero El Buen Sabor", Role: entity.RoleEmpleado}},
	}}
	guard := session.NewGuard()
	uc := auth.NewUseCase(users, businesses, plainVerifier{}, guard, auth.JWTConfig{
		Secret:     secret,
		ExpMinutes: 60,
		Issuer:     "gestorpyme-test",
	}, logger.NewNop())
	return uc, guard
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso_EmiteTokenConClaims(t *testing.T) {
	uc, _ := newUseCase(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Username: "ana", Password: "secreta123", Handle: "ventana-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	assert.Equal(t, anaID, out.User.ID)
	assert.Equal(t, "Ana Pérez", out.User.FullName)
	assert.Equal(t, entity.RoleEmpleado, out.User.Role)
	assert.Equal(t, bizID, out.User.BusinessID)

	userID, businessID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, anaID, userID)
	assert.Equal(t, bizID, businessID)
	assert.Equal(t, entity.RoleEmpleado, role)
}

// Usuario inexistente y contraseña mala responden idéntico para no filtrar
// qué usuarios existen.
func TestLogin_CredencialesMalas_MismoError(t *testing.T) {
	uc, _ := newUseCase(t)

	_, errNoUser := uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	_, errBadPass := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "incorrecta"})

	assert.ErrorIs(t, errNoUser, domain.ErrUnauthorized)
	assert.ErrorIs(t, errBadPass, domain.ErrUnauthorized)
	assert.Equal(t, errNoUser, errBadPass)
}

func TestLogin_CuentaInactiva_Forbidden(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "inactivo", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_SinNegocioAsignado_Forbidden(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "huerfano", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Sesión única: el segundo login del mismo usuario se rechaza mientras la
// primera sesión siga activa, y vuelve a funcionar tras el logout.
func TestLogin_SesionUnica(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secreta123", Handle: "v1"})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secreta123", Handle: "v2"})
	require.Error(t, err)
	var denied *auth.SessionDeniedError
	require.ErrorAs(t, err, &denied)
	assert.ErrorIs(t, err, domain.ErrConflict)

	uc.Logout(anaID)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secreta123", Handle: "v2"})
	assert.NoError(t, err)
}

// Cerrar la ventana libera todas sus sesiones aunque no hubo logout explícito.
func TestReleaseHandle_LiberaSesionesDeLaVentana(t *testing.T) {
	uc, guard := newUseCase(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secreta123", Handle: "v1"})
	require.NoError(t, err)

	removed := uc.ReleaseHandle("v1")
	assert.Equal(t, 1, removed)

	_, active := guard.Active(anaID)
	assert.False(t, active)
}
