package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/auth"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/dto"
)

// AuthHandler maneja login y logout.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login autentica al usuario y registra la sesión única.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username y password son requeridos"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Logout libera la sesión del usuario autenticado.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.uc.Logout(GetUserID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// ReleaseHandle libera todas las sesiones registradas por una ventana o
// cliente. Es la salida para un cliente que murió sin hacer logout: ya no
// tiene token, solo conoce su propio handle, por eso la ruta es pública.
// POST /api/auth/release-handle
func (h *AuthHandler) ReleaseHandle(c *fiber.Ctx) error {
	var in dto.ReleaseHandleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Handle == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "handle es requerido"})
	}
	released := h.uc.ReleaseHandle(in.Handle)
	return c.JSON(dto.ReleaseHandleResponse{Released: released})
}
