package voucher

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/DhavalSuthar-24/clubportal/internal/common"
	"github.com/DhavalSuthar-24/clubportal/pkg/mailer"
	"github.com/DhavalSuthar-24/clubportal/pkg/responses"
	"github.com/DhavalSuthar-24/clubportal/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgVoucherNotFound = "Comprobante no encontrado"

type VoucherController struct {
	repo           VoucherRepository
	mail           mailer.Mailer
	directivaEmail string
	templateID     string
}

func NewVoucherController(repo VoucherRepository, m mailer.Mailer, directivaEmail, templateID string) *VoucherController {
	return &VoucherController{repo: repo, mail: m, directivaEmail: directivaEmail, templateID: templateID}
}

// ListMine godoc
// @Summary My vouchers
// @Tags Vouchers
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Voucher}
// @Failure 401 {object} responses.ErrorResponse
// @Router /vouchers/me [get]
// @Security BearerAuth
func (vc *VoucherController) ListMine(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	vouchers, err := vc.repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", vouchers)
}

// CreateVoucher godoc
// @Summary Submit a payment voucher
// @Description The file must already be uploaded; archivo_url points at it.
// @Tags Vouchers
// @Accept json
// @Produce json
// @Param voucher body CreateVoucherRequest true "Voucher"
// @Success 201 {object} responses.SuccessResponse{data=Voucher}
// @Failure 400 {object} responses.ErrorResponse
// @Router /vouchers [post]
// @Security BearerAuth
func (vc *VoucherController) CreateVoucher(c *gin.Context) {
	s, err := common.SessionFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	var req CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Datos del comprobante inválidos", validator.ParseError(err))
		return
	}

	v := Voucher{
		UserID:     s.UserID,
		Concepto:   req.Concepto,
		Monto:      req.Monto,
		ArchivoURL: req.ArchivoURL,
		Estado:     EstadoPendiente,
	}
	if err := vc.repo.CreateVoucher(c.Request.Context(), &v); err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	vc.notifyDirectiva(c.Request.Context(), s.Email, v)
	responses.SendSuccess(c, http.StatusCreated, "Comprobante enviado", v)
}

func (vc *VoucherController) notifyDirectiva(ctx context.Context, from string, v Voucher) {
	if vc.directivaEmail == "" {
		return
	}
	data := map[string]any{
		"socio":       from,
		"concepto":    v.Concepto,
		"monto":       v.Monto,
		"archivo_url": v.ArchivoURL,
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		to := mailer.Recipient{Name: "Directiva", Address: vc.directivaEmail}
		if err := vc.mail.SendTemplate(ctx, to, vc.templateID, data); err != nil {
			log.Printf("voucher: notifying directiva failed: %v", err)
		}
	}()
}

// ListVouchers godoc
// @Summary Vouchers to review
// @Tags Admin Vouchers
// @Produce json
// @Param estado query string false "pendiente, aprobado or rechazado"
// @Success 200 {object} responses.SuccessResponse{data=[]Voucher}
// @Failure 400 {object} responses.ErrorResponse
// @Router /admin/vouchers [get]
// @Security BearerAuth
func (vc *VoucherController) ListVouchers(c *gin.Context) {
	estado := c.Query("estado")
	switch estado {
	case "", EstadoPendiente, EstadoAprobado, EstadoRechazado:
	default:
		responses.BadRequest(c, "Estado inválido")
		return
	}
	vouchers, err := vc.repo.List(c.Request.Context(), estado)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", vouchers)
}

// Review godoc
// @Summary Approve or reject a voucher
// @Tags Admin Vouchers
// @Accept json
// @Produce json
// @Param id path string true "Voucher ID"
// @Param review body ReviewRequest true "Decision"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /admin/vouchers/{id}/estado [put]
// @Security BearerAuth
func (vc *VoucherController) Review(c *gin.Context) {
	reviewer, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.NotFound(c, msgVoucherNotFound)
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Datos inválidos", validator.ParseError(err))
		return
	}

	now := time.Now()
	v := Voucher{Estado: req.Estado, Comentario: req.Comentario, ReviewedBy: &reviewer, ReviewedAt: &now}
	v.ID = id
	if err := vc.repo.Review(c.Request.Context(), &v); err != nil {
		switch {
		case errors.Is(err, ErrVoucherNotFound):
			responses.NotFound(c, msgVoucherNotFound)
		case errors.Is(err, ErrAlreadyReviewed):
			responses.SendError(c, http.StatusConflict, "El comprobante ya fue revisado")
		default:
			responses.InternalServerError(c, err.Error())
		}
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Comprobante "+req.Estado, v)
}
