package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnavailable  = errors.New("almacenamiento no disponible")
)

// Violaciones de la máquina de estados del ciclo turno/día contable.
// Todas se desenvuelven (errors.Is) a ErrConflict para que la capa de
// presentación pueda distinguir cada caso y mostrar la orientación correcta.
var (
	ErrDayLocked      = fmt.Errorf("el día contable ya fue revisado y cerrado: %w", ErrConflict)
	ErrDayFull        = fmt.Errorf("ya se cerraron los dos turnos del día: %w", ErrConflict)
	ErrAlreadyClosed  = fmt.Errorf("el turno ya fue cerrado: %w", ErrConflict)
	ErrShiftNotClosed = fmt.Errorf("solo se pueden auditar turnos cerrados: %w", ErrConflict)
	ErrAlreadySealed  = fmt.Errorf("el día ya ha sido revisado: %w", ErrConflict)
	ErrNoDay          = fmt.Errorf("no existe día contable para revisar: %w", ErrConflict)
)

// IsDomainError reporta si err es (o envuelve) alguno de los errores de
// dominio conocidos. Lo que no lo sea es una falla de infraestructura y debe
// traducirse antes de llegar al caller.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrUserNotFound, ErrInvalidInput, ErrDuplicate,
		ErrUnauthorized, ErrForbidden, ErrConflict, ErrUnavailable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ShiftHeldByOtherError indica que el turno abierto pertenece a otro empleado.
type ShiftHeldByOtherError struct {
	OperatorName string
	ShiftNumber  int
}

func (e *ShiftHeldByOtherError) Error() string {
	return fmt.Sprintf("el turno %d está abierto por %s; debe cerrarse antes de poder abrir uno nuevo", e.ShiftNumber, e.OperatorName)
}

func (e *ShiftHeldByOtherError) Unwrap() error { return ErrConflict }

// ShiftsOpenError indica cuántos turnos del día siguen sin cerrar al intentar el sello.
type ShiftsOpenError struct {
	Open int
}

func (e *ShiftsOpenError) Error() string {
	return fmt.Sprintf("no todos los turnos están cerrados (%d abiertos)", e.Open)
}

func (e *ShiftsOpenError) Unwrap() error { return ErrConflict }
