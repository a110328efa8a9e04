package convocatoria

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DhavalSuthar-24/clubportal/internal/common"
	"github.com/DhavalSuthar-24/clubportal/internal/profile"
	"github.com/DhavalSuthar-24/clubportal/pkg/mailer"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	convocatorias []Convocatoria
	inscripciones []Inscripcion
}

func (r *fakeRepo) ListPublished(context.Context) ([]Convocatoria, error) {
	var out []Convocatoria
	for _, c := range r.convocatorias {
		if c.Estado != EstadoBorrador {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAll(context.Context) ([]Convocatoria, error) {
	return r.convocatorias, nil
}

func (r *fakeRepo) GetConvocatoriaByID(_ context.Context, id uuid.UUID) (*Convocatoria, error) {
	for _, c := range r.convocatorias {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, ErrConvocatoriaNotFound
}

func (r *fakeRepo) CreateConvocatoria(_ context.Context, c *Convocatoria) error {
	c.ID = uuid.New()
	r.convocatorias = append(r.convocatorias, *c)
	return nil
}

func (r *fakeRepo) UpdateConvocatoria(_ context.Context, c *Convocatoria) error {
	for i := range r.convocatorias {
		if r.convocatorias[i].ID == c.ID {
			r.convocatorias[i] = *c
			return nil
		}
	}
	return ErrConvocatoriaNotFound
}

func (r *fakeRepo) DeleteConvocatoria(_ context.Context, id uuid.UUID) error {
	for i := range r.convocatorias {
		if r.convocatorias[i].ID == id {
			r.convocatorias = append(r.convocatorias[:i], r.convocatorias[i+1:]...)
			return nil
		}
	}
	return ErrConvocatoriaNotFound
}

func (r *fakeRepo) CreateInscripcion(_ context.Context, i *Inscripcion) error {
	i.ID = uuid.New()
	r.inscripciones = append(r.inscripciones, *i)
	return nil
}

func (r *fakeRepo) ListInscripciones(_ context.Context, id uuid.UUID) ([]Inscripcion, error) {
	var out []Inscripcion
	for _, i := range r.inscripciones {
		if i.ConvocatoriaID == id {
			out = append(out, i)
		}
	}
	return out, nil
}

type fakeProfiles struct {
	profile *profile.Profile
	err     error
}

func (f fakeProfiles) GetProfileByID(context.Context, uuid.UUID) (*profile.Profile, error) {
	return f.profile, f.err
}

type sentMail struct {
	to       mailer.Recipient
	template string
	data     map[string]any
}

type fakeMailer struct {
	sent chan sentMail
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan sentMail, 4)}
}

func (m *fakeMailer) SendTemplate(_ context.Context, to mailer.Recipient, templateID string, data map[string]any) error {
	m.sent <- sentMail{to: to, template: templateID, data: data}
	return nil
}

func newConvocatoria(estado string) Convocatoria {
	c := Convocatoria{
		Titulo: "Copa Primavera",
		Club:   "Delfines",
		Estado: estado,
		Campos: FieldSchemas(sampleSchema()),
	}
	c.ID = uuid.New()
	return c
}

type testEnv struct {
	router *gin.Engine
	repo   *fakeRepo
	mail   *fakeMailer
}

func setup(t *testing.T, profiles ProfileReader, convs ...Convocatoria) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := &fakeRepo{convocatorias: convs}
	m := newFakeMailer()

	r := gin.New()
	authenticated := r.Group("/api", func(c *gin.Context) {
		common.SetSession(c, common.Session{UserID: uuid.New(), Email: "ana@club.cl"})
		c.Next()
	})
	RegisterConvocatoriaRoutes(authenticated, authenticated.Group("/admin"), repo, profiles, m,
		RouteConfig{FrontendURL: "https://portal.club.cl", InscripcionTemplate: "d-insc"})
	return testEnv{router: r, repo: repo, mail: m}
}

func (e testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type envelope[T any] struct {
	Message string            `json:"message"`
	Data    T                 `json:"data"`
	Fields  map[string]string `json:"fields"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

var ana = fakeProfiles{profile: &profile.Profile{NombreCompleto: "Ana Pérez", Rut: "11.222.333-4", Email: "ana@club.cl"}}

func TestGetForm_NotFound(t *testing.T) {
	draft := newConvocatoria(EstadoBorrador)
	env := setup(t, ana, draft)

	for _, path := range []string{
		"/api/convocatorias/" + uuid.NewString() + "/form",
		"/api/convocatorias/nope/form",
		"/api/convocatorias/" + draft.ID.String() + "/form",
	} {
		rec := env.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, msgConvocatoriaNotFound, decode[any](t, rec).Message)
	}
}

func TestGetForm_PrefillsFromProfile(t *testing.T) {
	conv := newConvocatoria(EstadoAbierta)
	env := setup(t, ana, conv)

	rec := env.do(http.MethodGet, "/api/convocatorias/"+conv.ID.String()+"/form", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	fields := decode[FormView](t, rec).Data.Fields
	require.Len(t, fields, 5)
	assert.Equal(t, FormFieldView{Key: KeyNombreCompleto, Label: "Nombre completo", Type: FieldText, ReadOnly: true, Value: "Ana Pérez"}, fields[0])
	assert.Equal(t, "11.222.333-4", fields[1].Value)
	assert.Equal(t, []string{"50 libre", "100 libre"}, fields[3].Options)
	assert.Equal(t, FieldDate, fields[4].Type)
}

func TestGetForm_ProfileFailureDegrades(t *testing.T) {
	conv := newConvocatoria(EstadoAbierta)
	env := setup(t, fakeProfiles{err: errors.New("connection reset")}, conv)

	rec := env.do(http.MethodGet, "/api/convocatorias/"+conv.ID.String()+"/form", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	fields := decode[FormView](t, rec).Data.Fields
	assert.Empty(t, fields[0].Value)
	assert.Empty(t, fields[1].Value)
}

func TestGetForm_UnknownFieldTypeIsAnError(t *testing.T) {
	conv := newConvocatoria(EstadoAbierta)
	conv.Campos = append(conv.Campos, FieldSchema{Key: "d", Type: "checkbox"})
	env := setup(t, ana, conv)

	rec := env.do(http.MethodGet, "/api/convocatorias/"+conv.ID.String()+"/form", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSubmit_StoresDocument(t *testing.T) {
	conv := newConvocatoria(EstadoAbierta)
	env := setup(t, ana, conv)

	rec := env.do(http.MethodPost, "/api/convocatorias/"+conv.ID.String()+"/inscripciones", SubmitRequest{
		Respuestas: map[string]string{"a": "Master B", "b": "50 libre", "c": "1990-05-21"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[SubmitResponse](t, rec)
	assert.Equal(t, msgInscripcionOK, resp.Message)

	keys := []string{}
	for _, a := range resp.Data.Respuestas {
		keys = append(keys, a.Key)
	}
	assert.Equal(t, []string{KeyNombreCompleto, KeyRut, "a", "b", "c"}, keys)

	require.Len(t, env.repo.inscripciones, 1)
	stored := env.repo.inscripciones[0]
	assert.Equal(t, conv.ID, stored.ConvocatoriaID)
	assert.Equal(t, map[string]interface{}{
		KeyNombreCompleto: "Ana Pérez",
		KeyRut:            "11.222.333-4",
		"a":               "Master B",
		"b":               "50 libre",
		"c":               "1990-05-21",
	}, map[string]interface{}(stored.RespuestaCampos))

	select {
	case m := <-env.mail.sent:
		assert.Equal(t, "ana@club.cl", m.to.Address)
		assert.Equal(t, "d-insc", m.template)
		assert.Equal(t, "Copa Primavera", m.data["titulo"])
	case <-time.After(time.Second):
		t.Fatal("confirmation email not sent")
	}
}

func TestSubmit_RepeatedSubmissionsAreKept(t *testing.T) {
	conv := newConvocatoria(EstadoAbierta)
	env := setup(t, ana, conv)

	for i := 0; i < 2; i++ {
		rec := env.do(http.MethodPost, "/api/convocatorias/"+conv.ID.String()+"/inscripciones",
			SubmitRequest{Respuestas: map[string]string{"b": "50 libre"}})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	assert.Len(t, env.repo.inscripciones, 2)
}

func TestSubmit_Rejections(t *testing.T) {
	open := newConvocatoria(EstadoAbierta)
	closed := newConvocatoria(EstadoCerrada)
	env := setup(t, ana, open, closed)

	rec := env.do(http.MethodPost, "/api/convocatorias/"+open.ID.String()+"/inscripciones",
		SubmitRequest{Respuestas: map[string]string{"b": "400 medley", "c": "mañana"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	fields := decode[any](t, rec).Fields
	assert.Contains(t, fields, "b")
	assert.Contains(t, fields, "c")

	rec = env.do(http.MethodPost, "/api/convocatorias/"+closed.ID.String()+"/inscripciones",
		SubmitRequest{Respuestas: map[string]string{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgConvocatoriaCerrada, decode[any](t, rec).Message)

	rec = env.do(http.MethodPost, "/api/convocatorias/"+uuid.NewString()+"/inscripciones",
		SubmitRequest{Respuestas: map[string]string{}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Empty(t, env.repo.inscripciones)
}

func TestListConvocatorias_HidesDrafts(t *testing.T) {
	env := setup(t, ana, newConvocatoria(EstadoBorrador), newConvocatoria(EstadoAbierta), newConvocatoria(EstadoCerrada))

	rec := env.do(http.MethodGet, "/api/convocatorias", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range decode[[]Convocatoria](t, rec).Data {
		assert.NotEqual(t, EstadoBorrador, c.Estado)
	}
	assert.Len(t, decode[[]Convocatoria](t, rec).Data, 2)
}

func TestQRCode(t *testing.T) {
	conv := newConvocatoria(EstadoAbierta)
	env := setup(t, ana, conv)

	rec := env.do(http.MethodGet, "/api/convocatorias/"+conv.ID.String()+"/qr", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}

func TestAdmin_ConvocatoriaCRUD(t *testing.T) {
	env := setup(t, ana)

	valid := ConvocatoriaRequest{Titulo: "Copa", Club: "Delfines", Estado: EstadoBorrador, Campos: sampleSchema()}

	rec := env.do(http.MethodPost, "/api/admin/convocatorias", valid)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[Convocatoria](t, rec).Data

	bad := valid
	bad.Campos = []FieldSchema{{Key: "x", Type: FieldText}, {Key: "x", Type: FieldText}}
	rec = env.do(http.MethodPost, "/api/admin/convocatorias", bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[any](t, rec).Fields, "campos")

	updated := valid
	updated.Estado = EstadoAbierta
	rec = env.do(http.MethodPut, "/api/admin/convocatorias/"+created.ID.String(), updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, EstadoAbierta, env.repo.convocatorias[0].Estado)

	rec = env.do(http.MethodGet, "/api/admin/convocatorias/"+created.ID.String()+"/inscripciones", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodDelete, "/api/admin/convocatorias/"+created.ID.String(), nil).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodDelete, "/api/admin/convocatorias/"+created.ID.String()+"?confirm=true", nil).Code)
	assert.Empty(t, env.repo.convocatorias)
}
