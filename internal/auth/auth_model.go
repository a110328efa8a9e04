package auth

import "github.com/google/uuid"

const minPasswordLength = 4

// User is the identity returned by the auth service.
type User struct {
	ID           uuid.UUID      `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

// Session is a token pair issued by the auth service.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email" example:"socio@club.cl"`
	Password        string `json:"password" binding:"required" example:"clave123"`
	PasswordConfirm string `json:"password_confirm" binding:"required" example:"clave123"`
	NombreCompleto  string `json:"nombre_completo" binding:"required,max=200" example:"María José Pérez"`
	Rut             string `json:"rut" binding:"required" example:"11.222.333-4"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"socio@club.cl"`
	Password string `json:"password" binding:"required" example:"clave123"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}
