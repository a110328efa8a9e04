package voucher

import (
	"time"

	"github.com/DhavalSuthar-24/clubportal/internal/models"
	"github.com/google/uuid"
)

const (
	EstadoPendiente = "pendiente"
	EstadoAprobado  = "aprobado"
	EstadoRechazado = "rechazado"
)

// Voucher is a payment proof. The file itself lives in external storage;
// ArchivoURL points at it.
type Voucher struct {
	models.BaseModel
	UserID     uuid.UUID  `json:"user_id" gorm:"type:uuid;index"`
	Concepto   string     `json:"concepto"`
	Monto      int64      `json:"monto"`
	ArchivoURL string     `json:"archivo_url"`
	Estado     string     `json:"estado" gorm:"default:'pendiente'"`
	Comentario string     `json:"comentario"`
	ReviewedBy *uuid.UUID `json:"reviewed_by,omitempty" gorm:"type:uuid"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}

func (Voucher) TableName() string { return "vouchers" }

type CreateVoucherRequest struct {
	Concepto   string `json:"concepto" binding:"required,max=200" example:"Cuota anual 2026"`
	Monto      int64  `json:"monto" binding:"required,gt=0" example:"45000"`
	ArchivoURL string `json:"archivo_url" binding:"required,url" example:"https://storage.club.cl/vouchers/abc.pdf"`
}

type ReviewRequest struct {
	Estado     string `json:"estado" binding:"required,oneof=aprobado rechazado" example:"aprobado"`
	Comentario string `json:"comentario" binding:"omitempty,max=1000"`
}
