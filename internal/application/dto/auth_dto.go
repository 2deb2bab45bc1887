package dto

// LoginRequest body para POST /api/auth/login.
// Handle identifica la ventana/cliente de presentación para la política de
// sesión única (se libera con el logout o al cerrarse la ventana).
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Handle   string `json:"handle"`
}

// LoginResponse token JWT más los datos del usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse usuario autenticado con su rol y negocio.
type UserResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"nombre_completo"`
	Role       string `json:"rol"`
	BusinessID string `json:"negocio_id"`
}

// LogoutRequest body para POST /api/auth/logout.
type LogoutRequest struct {
	UserID string `json:"user_id"`
}

// ReleaseHandleRequest body para POST /api/auth/release-handle.
type ReleaseHandleRequest struct {
	Handle string `json:"handle"`
}

// ReleaseHandleResponse cuántas sesiones liberó la ventana.
type ReleaseHandleResponse struct {
	Released int `json:"released"`
}
