package session

import (
	"fmt"
	"sync"
	"time"
)

// ActiveSession sesión transitoria de un usuario en una ventana/cliente.
// No se persiste: un reinicio del proceso limpia todas las sesiones.
type ActiveSession struct {
	UserID    string
	Username  string
	Handle    string // identificador de la ventana/cliente de presentación
	StartTime time.Time
}

// Guard registro en memoria que impone a lo sumo una sesión activa por
// usuario. Register y Release son atómicos entre sí por usuario.
type Guard struct {
	mu       sync.Mutex
	sessions map[string]ActiveSession
	now      func() time.Time
}

// NewGuard construye el registro vacío.
func NewGuard() *Guard {
	return &Guard{
		sessions: make(map[string]ActiveSession),
		now:      time.Now,
	}
}

// Register intenta registrar una sesión para el usuario. Si ya existe una,
// se rechaza indicando hace cuánto está abierta la sesión existente.
func (g *Guard) Register(userID, username, handle string) (bool, string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.sessions[userID]; ok {
		elapsed := g.now().Sub(existing.StartTime).Round(time.Second)
		return false, fmt.Sprintf(
			"este usuario ya tiene una sesión activa en otra ventana (abierta hace %s); cierre esa sesión primero", elapsed)
	}

	g.sessions[userID] = ActiveSession{
		UserID:    userID,
		Username:  username,
		Handle:    handle,
		StartTime: g.now(),
	}
	return true, ""
}

// Release elimina la sesión del usuario si existe; no hace nada si no.
func (g *Guard) Release(userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sessions, userID)
}

// ReleaseAllForHandle elimina todas las sesiones de una ventana/cliente.
// Se usa cuando la ventana de presentación se cierra, para no dejar
// bloqueos huérfanos.
func (g *Guard) ReleaseAllForHandle(handle string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	for userID, s := range g.sessions {
		if s.Handle == handle {
			delete(g.sessions, userID)
			removed++
		}
	}
	return removed
}

// Active devuelve la sesión activa del usuario, si la hay.
func (g *Guard) Active(userID string) (ActiveSession, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.sessions[userID]
	return s, ok
}
