package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest entrada para registrar un administrador.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthResponse salida de login/registro con el token JWT.
type AuthResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}
