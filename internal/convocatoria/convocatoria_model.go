package convocatoria

import (
	"time"

	"github.com/DhavalSuthar-24/clubportal/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	EstadoBorrador = "borrador"
	EstadoAbierta  = "abierta"
	EstadoCerrada  = "cerrada"
)

type Convocatoria struct {
	models.BaseModel
	Titulo      string       `json:"titulo"`
	Club        string       `json:"club"`
	Piscina     string       `json:"piscina"`
	FechaInicio models.Date  `json:"fecha_inicio" gorm:"type:date" swaggertype:"string"`
	FechaFin    models.Date  `json:"fecha_fin" gorm:"type:date" swaggertype:"string"`
	Estado      string       `json:"estado" gorm:"default:'borrador'"`
	Descripcion string       `json:"descripcion"`
	Campos      FieldSchemas `json:"campos" gorm:"type:jsonb"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (Convocatoria) TableName() string { return "convocatorias" }

// Inscripcion is one submission. Repeated submissions by a user are kept.
type Inscripcion struct {
	models.BaseModel
	ConvocatoriaID  uuid.UUID         `json:"convocatoria_id" gorm:"type:uuid;index"`
	UserID          uuid.UUID         `json:"user_id" gorm:"type:uuid;index"`
	RespuestaCampos datatypes.JSONMap `json:"respuesta_campos" gorm:"type:jsonb" swaggertype:"object"`
}

func (Inscripcion) TableName() string { return "inscripciones" }

func answersToJSONMap(answers []Answer) datatypes.JSONMap {
	m := datatypes.JSONMap{}
	for _, a := range answers {
		m[a.Key] = a.Value
	}
	return m
}

// FormFieldView describes one input of the rendered form.
type FormFieldView struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
	ReadOnly bool     `json:"read_only"`
	Value    string   `json:"value"`
}

type FormView struct {
	Convocatoria Convocatoria    `json:"convocatoria"`
	Fields       []FormFieldView `json:"fields"`
}

func buildFormView(conv Convocatoria, fields []Field, prefill Prefill) FormView {
	views := []FormFieldView{
		{Key: KeyNombreCompleto, Label: "Nombre completo", Type: FieldText, ReadOnly: true, Value: prefill.NombreCompleto},
		{Key: KeyRut, Label: "RUT", Type: FieldText, ReadOnly: true, Value: prefill.Rut},
	}
	for _, f := range fields {
		s := f.Schema()
		views = append(views, FormFieldView{
			Key:      s.Key,
			Label:    s.Label,
			Type:     s.Type,
			Options:  s.Options,
			Required: s.Required,
		})
	}
	return FormView{Convocatoria: conv, Fields: views}
}

type SubmitRequest struct {
	Respuestas map[string]string `json:"respuestas"`
}

// SubmitResponse echoes the stored document in form order.
type SubmitResponse struct {
	Inscripcion Inscripcion `json:"inscripcion"`
	Respuestas  []Answer    `json:"respuestas"`
}

type ConvocatoriaRequest struct {
	Titulo      string        `json:"titulo" binding:"required,max=200" example:"Copa Primavera"`
	Club        string        `json:"club" binding:"required,max=200" example:"Club Natación Ñuñoa"`
	Piscina     string        `json:"piscina" binding:"omitempty,max=200" example:"Estadio Nacional"`
	FechaInicio models.Date   `json:"fecha_inicio" swaggertype:"string" example:"2026-11-07"`
	FechaFin    models.Date   `json:"fecha_fin" swaggertype:"string" example:"2026-11-08"`
	Estado      string        `json:"estado" binding:"required,oneof=borrador abierta cerrada" example:"abierta"`
	Descripcion string        `json:"descripcion" binding:"omitempty,max=5000"`
	Campos      []FieldSchema `json:"campos"`
}

func (r ConvocatoriaRequest) apply(c *Convocatoria) {
	c.Titulo = r.Titulo
	c.Club = r.Club
	c.Piscina = r.Piscina
	c.FechaInicio = r.FechaInicio
	c.FechaFin = r.FechaFin
	c.Estado = r.Estado
	c.Descripcion = r.Descripcion
	c.Campos = FieldSchemas(r.Campos)
}
