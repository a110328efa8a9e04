package profile

import (
	"time"

	"github.com/DhavalSuthar-24/clubportal/internal/models"
	"github.com/google/uuid"
)

const (
	RolSocio     = "socio"
	RolDirectiva = "directiva"
)

// Profile is the club-side record of an auth user. ID is the auth user id.
// Credentials live only in the auth service.
type Profile struct {
	ID              uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	Email           string      `json:"email"`
	NombreCompleto  string      `json:"nombre_completo"`
	Rut             string      `json:"rut"`
	Telefono        string      `json:"telefono"`
	FechaNacimiento models.Date `json:"fecha_nacimiento" gorm:"type:date"`
	Rol             string      `json:"rol" gorm:"default:'socio'"`
	PerfilCompleto  bool        `json:"perfil_completo" gorm:"default:false"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// IsComplete reports whether every field the club requires has been filled in.
func (p *Profile) IsComplete() bool {
	return p.NombreCompleto != "" && p.Rut != "" && p.Telefono != "" && !p.FechaNacimiento.IsZero()
}

type UpdateProfileRequest struct {
	NombreCompleto  string      `json:"nombre_completo" binding:"required,max=200" example:"María José Pérez"`
	Rut             string      `json:"rut" binding:"required" example:"11.222.333-4"`
	Telefono        string      `json:"telefono" binding:"omitempty,max=30" example:"+56912345678"`
	FechaNacimiento models.Date `json:"fecha_nacimiento" swaggertype:"string" example:"1990-05-21"`
}
