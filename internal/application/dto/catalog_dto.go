package dto

import "time"

// CatalogItemRequest body para crear o renombrar una entrada de catálogo.
type CatalogItemRequest struct {
	Name string `json:"nombre"`
}

// CatalogItemResponse entrada de catálogo (proveedor, tipo de gasto o tipo
// de pago digital).
type CatalogItemResponse struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"negocio_id"`
	Name       string    `json:"nombre"`
	Active     bool      `json:"activo"`
	CreatedAt  time.Time `json:"created_at"`
}

// BusinessResponse negocio con el rol del usuario consultante.
type BusinessResponse struct {
	ID   string `json:"id"`
	Name string `json:"nombre_negocio"`
	Role string `json:"rol"`
}
