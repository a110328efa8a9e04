package convocatoria

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/DhavalSuthar-24/clubportal/internal/models"
)

const (
	FieldText   = "text"
	FieldSelect = "select"
	FieldDate   = "date"
)

// Fixed read-only keys prefilled from the member's profile.
const (
	KeyNombreCompleto = "nombre_completo"
	KeyRut            = "rut"
)

var ErrUnknownFieldType = errors.New("unknown field type")

// FieldSchema is one stored entry of a convocatoria's campos column.
type FieldSchema struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required,omitempty"`
}

// FieldSchemas is the jsonb campos column.
type FieldSchemas []FieldSchema

func (f FieldSchemas) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]FieldSchema(f))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *FieldSchemas) Scan(src interface{}) error {
	return models.ScanJSON(src, f)
}

// Field is a typed form field. The set of implementations is closed:
// TextField, SelectField and DateField.
type Field interface {
	Key() string
	Label() string
	Type() string
	Validate(value string) error
	Schema() FieldSchema
}

type baseField struct {
	key      string
	label    string
	required bool
}

func (f baseField) Key() string   { return f.key }
func (f baseField) Label() string { return f.label }

func (f baseField) checkRequired(value string) error {
	if f.required && strings.TrimSpace(value) == "" {
		return fmt.Errorf("El campo '%s' es obligatorio", f.label)
	}
	return nil
}

type TextField struct{ baseField }

func (TextField) Type() string { return FieldText }

func (f TextField) Validate(value string) error {
	return f.checkRequired(value)
}

func (f TextField) Schema() FieldSchema {
	return FieldSchema{Key: f.key, Label: f.label, Type: FieldText, Required: f.required}
}

type SelectField struct {
	baseField
	options []string
}

func (SelectField) Type() string { return FieldSelect }

func (f SelectField) Options() []string { return f.options }

func (f SelectField) Validate(value string) error {
	if err := f.checkRequired(value); err != nil {
		return err
	}
	if value == "" {
		return nil
	}
	for _, o := range f.options {
		if o == value {
			return nil
		}
	}
	return fmt.Errorf("El campo '%s' debe ser una de las opciones: %s", f.label, strings.Join(f.options, ", "))
}

func (f SelectField) Schema() FieldSchema {
	return FieldSchema{Key: f.key, Label: f.label, Type: FieldSelect, Options: f.options, Required: f.required}
}

type DateField struct{ baseField }

func (DateField) Type() string { return FieldDate }

func (f DateField) Validate(value string) error {
	if err := f.checkRequired(value); err != nil {
		return err
	}
	if value == "" {
		return nil
	}
	if _, err := models.ParseDate(value); err != nil {
		return fmt.Errorf("El campo '%s' debe ser una fecha AAAA-MM-DD", f.label)
	}
	return nil
}

func (f DateField) Schema() FieldSchema {
	return FieldSchema{Key: f.key, Label: f.label, Type: FieldDate, Required: f.required}
}

// ParseField turns a stored schema entry into its typed field.
func ParseField(s FieldSchema) (Field, error) {
	base := baseField{key: s.Key, label: s.Label, required: s.Required}
	if base.label == "" {
		base.label = s.Key
	}
	switch s.Type {
	case FieldText:
		return TextField{base}, nil
	case FieldSelect:
		if len(s.Options) == 0 {
			return nil, fmt.Errorf("field %q: select needs at least one option", s.Key)
		}
		return SelectField{baseField: base, options: s.Options}, nil
	case FieldDate:
		return DateField{base}, nil
	default:
		return nil, fmt.Errorf("field %q: %w %q", s.Key, ErrUnknownFieldType, s.Type)
	}
}

// ParseFields parses a whole schema, keeping its order. Keys must be present,
// unique, and distinct from the fixed profile keys.
func ParseFields(schemas []FieldSchema) ([]Field, error) {
	fields := make([]Field, 0, len(schemas))
	seen := map[string]bool{KeyNombreCompleto: true, KeyRut: true}
	for i, s := range schemas {
		if strings.TrimSpace(s.Key) == "" {
			return nil, fmt.Errorf("field %d: key is required", i)
		}
		if seen[s.Key] {
			return nil, fmt.Errorf("field %q: duplicate or reserved key", s.Key)
		}
		seen[s.Key] = true

		f, err := ParseField(s)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// Answer is one entry of a submitted form, in display order.
type Answer struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Prefill holds the read-only values taken from the member's profile.
type Prefill struct {
	NombreCompleto string `json:"nombre_completo"`
	Rut            string `json:"rut"`
}

// BuildAnswers validates values against fields and returns the response
// document: the fixed profile keys first, then every field in schema order.
// Keys absent from values are submitted as "".
func BuildAnswers(fields []Field, prefill Prefill, values map[string]string) ([]Answer, map[string]string) {
	answers := []Answer{
		{Key: KeyNombreCompleto, Label: "Nombre completo", Value: prefill.NombreCompleto},
		{Key: KeyRut, Label: "RUT", Value: prefill.Rut},
	}
	problems := map[string]string{}
	for _, f := range fields {
		v := values[f.Key()]
		if err := f.Validate(v); err != nil {
			problems[f.Key()] = err.Error()
		}
		answers = append(answers, Answer{Key: f.Key(), Label: f.Label(), Value: v})
	}
	if len(problems) == 0 {
		problems = nil
	}
	return answers, problems
}
