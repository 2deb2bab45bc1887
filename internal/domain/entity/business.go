package entity

import "time"

// Business representa un negocio (una caja registradora por día contable).
// Inmutable una vez creado.
type Business struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// BusinessMembership negocio al que pertenece un usuario, con su rol (vista de negocio:getByUser).
type BusinessMembership struct {
	BusinessID string
	Name       string
	Role       string
}
