package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/auth"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/dto"
	"github.com/AmadeusReus/gestorpyme-api/internal/domain"
)

// respondError traduce errores de dominio a respuestas HTTP. Los errores de
// máquina de estados envuelven ErrConflict, así que los casos específicos se
// revisan antes que el genérico.
func respondError(c *fiber.Ctx, err error) error {
	var held *domain.ShiftHeldByOtherError
	if errors.As(err, &held) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SHIFT_HELD", Message: held.Error()})
	}
	var open *domain.ShiftsOpenError
	if errors.As(err, &open) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SHIFTS_OPEN", Message: open.Error()})
	}
	var denied *auth.SessionDeniedError
	if errors.As(err, &denied) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_ACTIVE", Message: denied.Error()})
	}

	switch {
	case errors.Is(err, domain.ErrDayLocked):
		return conflict(c, "DAY_REVIEWED", err)
	case errors.Is(err, domain.ErrDayFull):
		return conflict(c, "DAY_FULL", err)
	case errors.Is(err, domain.ErrAlreadyClosed):
		return conflict(c, "SHIFT_CLOSED", err)
	case errors.Is(err, domain.ErrShiftNotClosed):
		return conflict(c, "SHIFT_NOT_CLOSED", err)
	case errors.Is(err, domain.ErrAlreadySealed):
		return conflict(c, "DAY_ALREADY_SEALED", err)
	case errors.Is(err, domain.ErrNoDay):
		return conflict(c, "NO_DAY", err)
	case errors.Is(err, domain.ErrDuplicate):
		return conflict(c, "DUPLICATE", err)
	case errors.Is(err, domain.ErrConflict):
		return conflict(c, "CONFLICT", err)
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "almacenamiento no disponible, intente de nuevo"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

func conflict(c *fiber.Ctx, code string, err error) error {
	return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
