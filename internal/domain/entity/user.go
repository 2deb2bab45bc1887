package entity

import "time"

// Roles válidos para Member (deben coincidir con el CHECK de la tabla miembros).
const (
	RoleEmpleado      = "empleado"
	RoleSupervisor    = "supervisor"
	RoleAdministrador = "administrador"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	FullName     string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Active       bool
	CreatedAt    time.Time
}

// Member representa la pertenencia de un usuario a un negocio con exactamente un rol.
type Member struct {
	UserID     string
	BusinessID string
	Role       string // empleado, supervisor, administrador
}

// CanAudit indica si el rol puede confirmar auditorías y sellar el día.
func (m *Member) CanAudit() bool {
	return m.Role == RoleSupervisor || m.Role == RoleAdministrador
}
