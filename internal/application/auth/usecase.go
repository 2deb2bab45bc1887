package auth

import (
	"context"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/dto"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/session"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain/repository"
	"github.com/AmadeusReus/gestorpyme-api/pkg/jwt"
	"github.com/AmadeusReus/gestorpyme-api/pkg/logger"
)

// CredentialVerifier puerto de verificación de credenciales (plano vs hash).
// La implementación bcrypt vive en infrastructure.
type CredentialVerifier interface {
	Verify(plain, hash string) bool
}

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SessionDeniedError la política de sesión única rechazó el login.
type SessionDeniedError struct {
	Reason string
}

func (e *SessionDeniedError) Error() string { return e.Reason }

func (e *SessionDeniedError) Unwrap() error { return domain.ErrConflict }

// UseCase autenticación: login con política de sesión única y logout.
type UseCase struct {
	userRepo     repository.UserRepository
	businessRepo repository.BusinessRepository
	verifier     CredentialVerifier
	guard        *session.Guard
	jwtCfg       JWTConfig
	log          *logger.Logger
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(
	userRepo repository.UserRepository,
	businessRepo repository.BusinessRepository,
	verifier CredentialVerifier,
	guard *session.Guard,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		verifier:     verifier,
		guard:        guard,
		jwtCfg:       jwtCfg,
		log:          log,
	}
}

// Login verifica credenciales, exige cuenta activa y membresía, registra la
// sesión en el guard (una sesión activa por usuario) y emite el JWT.
// Usuario inexistente y contraseña incorrecta responden lo mismo
// (ErrUnauthorized) para no filtrar qué usuarios existen.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, uc.translateErr("login", err)
	}
	if user == nil {
		uc.log.Warn().Str("username", in.Username).Msg("login fallido: usuario no encontrado")
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		uc.log.Warn().Str("username", in.Username).Msg("login fallido: cuenta desactivada")
		return nil, domain.ErrForbidden
	}
	if !uc.verifier.Verify(in.Password, user.PasswordHash) {
		uc.log.Warn().Str("username", in.Username).Msg("login fallido: contraseña incorrecta")
		return nil, domain.ErrUnauthorized
	}

	memberships, err := uc.businessRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, uc.translateErr("login", err)
	}
	if len(memberships) == 0 {
		uc.log.Error().Str("username", in.Username).Msg("usuario válido sin negocio asignado")
		return nil, domain.ErrForbidden
	}
	primary := memberships[0]

	granted, reason := uc.guard.Register(user.ID, user.Username, in.Handle)
	if !granted {
		uc.log.Warn().Str("username", in.Username).Msg("multi-sesión rechazada")
		return nil, &SessionDeniedError{Reason: reason}
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, primary.BusinessID, primary.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		uc.guard.Release(user.ID)
		return nil, uc.translateErr("login", err)
	}

	uc.log.Info().Str("username", user.Username).Str("rol", primary.Role).Msg("login exitoso")
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:         user.ID,
			Username:   user.Username,
			FullName:   user.FullName,
			Role:       primary.Role,
			BusinessID: primary.BusinessID,
		},
	}, nil
}

// Logout libera la sesión del usuario; no falla si no había sesión.
func (uc *UseCase) Logout(userID string) {
	uc.guard.Release(userID)
	uc.log.Info().Str("usuario", userID).Msg("sesión finalizada")
}

// ReleaseHandle libera todas las sesiones de una ventana/cliente cerrada.
func (uc *UseCase) ReleaseHandle(handle string) int {
	removed := uc.guard.ReleaseAllForHandle(handle)
	if removed > 0 {
		uc.log.Info().Str("handle", handle).Int("sesiones", removed).Msg("sesiones de ventana liberadas")
	}
	return removed
}

func (uc *UseCase) translateErr(op string, err error) error {
	if domain.IsDomainError(err) {
		return err
	}
	uc.log.Error().Err(err).Str("op", op).Msg("falla de almacenamiento en auth")
	return domain.ErrUnavailable
}
