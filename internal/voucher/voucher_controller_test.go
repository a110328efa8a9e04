package voucher

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DhavalSuthar-24/clubportal/internal/common"
	"github.com/DhavalSuthar-24/clubportal/pkg/mailer"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	vouchers []Voucher
}

func (r *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]Voucher, error) {
	var out []Voucher
	for _, v := range r.vouchers {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeRepo) List(_ context.Context, estado string) ([]Voucher, error) {
	var out []Voucher
	for _, v := range r.vouchers {
		if estado == "" || v.Estado == estado {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateVoucher(_ context.Context, v *Voucher) error {
	v.ID = uuid.New()
	r.vouchers = append(r.vouchers, *v)
	return nil
}

func (r *fakeRepo) Review(_ context.Context, v *Voucher) error {
	for i := range r.vouchers {
		if r.vouchers[i].ID != v.ID {
			continue
		}
		if r.vouchers[i].Estado != EstadoPendiente {
			return ErrAlreadyReviewed
		}
		r.vouchers[i].Estado = v.Estado
		r.vouchers[i].Comentario = v.Comentario
		r.vouchers[i].ReviewedBy = v.ReviewedBy
		r.vouchers[i].ReviewedAt = v.ReviewedAt
		return nil
	}
	return ErrVoucherNotFound
}

type chanMailer chan mailer.Recipient

func (m chanMailer) SendTemplate(_ context.Context, to mailer.Recipient, _ string, _ map[string]any) error {
	m <- to
	return nil
}

func setupRouter(repo VoucherRepository, m mailer.Mailer, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", func(c *gin.Context) {
		common.SetSession(c, common.Session{UserID: userID, Email: "ana@club.cl"})
		c.Next()
	})
	RegisterVoucherRoutes(api, api.Group("/admin"), repo, m, "directiva@club.cl", "d-voucher")
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateVoucher(t *testing.T) {
	repo := &fakeRepo{}
	m := make(chanMailer, 1)
	userID := uuid.New()
	r := setupRouter(repo, m, userID)

	rec := do(r, http.MethodPost, "/api/vouchers", CreateVoucherRequest{
		Concepto: "Cuota anual", Monto: 45000, ArchivoURL: "https://storage.club.cl/v/1.pdf",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.vouchers, 1)
	assert.Equal(t, EstadoPendiente, repo.vouchers[0].Estado)
	assert.Equal(t, userID, repo.vouchers[0].UserID)

	select {
	case to := <-m:
		assert.Equal(t, "directiva@club.cl", to.Address)
	case <-time.After(time.Second):
		t.Fatal("directiva not notified")
	}

	rec = do(r, http.MethodPost, "/api/vouchers", CreateVoucherRequest{Concepto: "x", Monto: 0, ArchivoURL: "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMine(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{vouchers: []Voucher{{UserID: userID, Concepto: "mío"}, {UserID: uuid.New(), Concepto: "ajeno"}}}

	rec := do(setupRouter(repo, make(chanMailer, 1), userID), http.MethodGet, "/api/vouchers/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []Voucher `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "mío", body.Data[0].Concepto)
}

func TestReview(t *testing.T) {
	pending := Voucher{Estado: EstadoPendiente}
	pending.ID = uuid.New()
	repo := &fakeRepo{vouchers: []Voucher{pending}}
	reviewer := uuid.New()
	r := setupRouter(repo, make(chanMailer, 1), reviewer)
	path := "/api/admin/vouchers/" + pending.ID.String() + "/estado"

	rec := do(r, http.MethodPut, path, ReviewRequest{Estado: EstadoPendiente})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPut, path, ReviewRequest{Estado: EstadoAprobado, Comentario: "ok"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, EstadoAprobado, repo.vouchers[0].Estado)
	assert.Equal(t, reviewer, *repo.vouchers[0].ReviewedBy)

	rec = do(r, http.MethodPut, path, ReviewRequest{Estado: EstadoRechazado})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(r, http.MethodPut, "/api/admin/vouchers/"+uuid.NewString()+"/estado", ReviewRequest{Estado: EstadoAprobado})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListVouchers_FilterByEstado(t *testing.T) {
	repo := &fakeRepo{vouchers: []Voucher{{Estado: EstadoPendiente}, {Estado: EstadoAprobado}}}
	r := setupRouter(repo, make(chanMailer, 1), uuid.New())

	rec := do(r, http.MethodGet, "/api/admin/vouchers?estado=pendiente", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []Voucher `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/admin/vouchers?estado=otro", nil).Code)
}
