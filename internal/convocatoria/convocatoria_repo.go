package convocatoria

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrConvocatoriaNotFound = errors.New("convocatoria not found")

type ConvocatoriaRepository interface {
	ListPublished(ctx context.Context) ([]Convocatoria, error)
	ListAll(ctx context.Context) ([]Convocatoria, error)
	GetConvocatoriaByID(ctx context.Context, id uuid.UUID) (*Convocatoria, error)
	CreateConvocatoria(ctx context.Context, c *Convocatoria) error
	UpdateConvocatoria(ctx context.Context, c *Convocatoria) error
	DeleteConvocatoria(ctx context.Context, id uuid.UUID) error

	CreateInscripcion(ctx context.Context, i *Inscripcion) error
	ListInscripciones(ctx context.Context, convocatoriaID uuid.UUID) ([]Inscripcion, error)
}

type convocatoriaRepository struct {
	db *gorm.DB
}

func NewConvocatoriaRepository(db *gorm.DB) ConvocatoriaRepository {
	return &convocatoriaRepository{db: db}
}

func (r *convocatoriaRepository) ListPublished(ctx context.Context) ([]Convocatoria, error) {
	var out []Convocatoria
	err := r.db.WithContext(ctx).
		Where("estado <> ?", EstadoBorrador).
		Order("fecha_inicio DESC").
		Find(&out).Error
	return out, err
}

func (r *convocatoriaRepository) ListAll(ctx context.Context) ([]Convocatoria, error) {
	var out []Convocatoria
	err := r.db.WithContext(ctx).Order("fecha_inicio DESC").Find(&out).Error
	return out, err
}

func (r *convocatoriaRepository) GetConvocatoriaByID(ctx context.Context, id uuid.UUID) (*Convocatoria, error) {
	var c Convocatoria
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConvocatoriaNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *convocatoriaRepository) CreateConvocatoria(ctx context.Context, c *Convocatoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *convocatoriaRepository) UpdateConvocatoria(ctx context.Context, c *Convocatoria) error {
	res := r.db.WithContext(ctx).Model(&Convocatoria{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"titulo":       c.Titulo,
			"club":         c.Club,
			"piscina":      c.Piscina,
			"fecha_inicio": c.FechaInicio,
			"fecha_fin":    c.FechaFin,
			"estado":       c.Estado,
			"descripcion":  c.Descripcion,
			"campos":       c.Campos,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConvocatoriaNotFound
	}
	return nil
}

func (r *convocatoriaRepository) DeleteConvocatoria(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Convocatoria{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConvocatoriaNotFound
	}
	return nil
}

func (r *convocatoriaRepository) CreateInscripcion(ctx context.Context, i *Inscripcion) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *convocatoriaRepository) ListInscripciones(ctx context.Context, convocatoriaID uuid.UUID) ([]Inscripcion, error) {
	var out []Inscripcion
	err := r.db.WithContext(ctx).
		Where("convocatoria_id = ?", convocatoriaID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}
