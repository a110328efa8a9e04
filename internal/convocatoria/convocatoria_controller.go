package convocatoria

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/DhavalSuthar-24/clubportal/internal/common"
	"github.com/DhavalSuthar-24/clubportal/internal/profile"
	"github.com/DhavalSuthar-24/clubportal/pkg/mailer"
	"github.com/DhavalSuthar-24/clubportal/pkg/responses"
	"github.com/DhavalSuthar-24/clubportal/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const (
	msgConvocatoriaNotFound = "Convocatoria no encontrada"
	msgConvocatoriaCerrada  = "La convocatoria no está recibiendo inscripciones"
	msgInscripcionOK        = "¡Inscripción enviada con éxito!"
	msgInvalidSchema        = "El formulario de la convocatoria no es válido"
	qrSize                  = 256
)

// ProfileReader loads the profile used to prefill name and RUT.
type ProfileReader interface {
	GetProfileByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error)
}

type ConvocatoriaController struct {
	repo        ConvocatoriaRepository
	profiles    ProfileReader
	mail        mailer.Mailer
	frontendURL string
	templateID  string
}

func NewConvocatoriaController(repo ConvocatoriaRepository, profiles ProfileReader, m mailer.Mailer, frontendURL, templateID string) *ConvocatoriaController {
	return &ConvocatoriaController{
		repo:        repo,
		profiles:    profiles,
		mail:        m,
		frontendURL: frontendURL,
		templateID:  templateID,
	}
}

// loadPublished returns the convocatoria behind the :id param, or writes the
// not-found answer. Drafts are not found for members.
func (cc *ConvocatoriaController) loadPublished(c *gin.Context) (*Convocatoria, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.NotFound(c, msgConvocatoriaNotFound)
		return nil, false
	}
	conv, err := cc.repo.GetConvocatoriaByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrConvocatoriaNotFound) {
			responses.NotFound(c, msgConvocatoriaNotFound)
			return nil, false
		}
		responses.InternalServerError(c, err.Error())
		return nil, false
	}
	if conv.Estado == EstadoBorrador {
		responses.NotFound(c, msgConvocatoriaNotFound)
		return nil, false
	}
	return conv, true
}

// prefill reads name and RUT from the profile. Failures degrade to empty values.
func (cc *ConvocatoriaController) prefill(ctx context.Context, userID uuid.UUID) (Prefill, string) {
	p, err := cc.profiles.GetProfileByID(ctx, userID)
	if err != nil {
		log.Printf("convocatoria: prefill for %s failed: %v", userID, err)
		return Prefill{}, ""
	}
	return Prefill{NombreCompleto: p.NombreCompleto, Rut: p.Rut}, p.Email
}

// ListConvocatorias godoc
// @Summary List published convocatorias
// @Tags Convocatorias
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Convocatoria}
// @Failure 500 {object} responses.ErrorResponse
// @Router /convocatorias [get]
// @Security BearerAuth
func (cc *ConvocatoriaController) ListConvocatorias(c *gin.Context) {
	convs, err := cc.repo.ListPublished(c.Request.Context())
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", convs)
}

// GetForm godoc
// @Summary Inscription form of a convocatoria
// @Description Name and RUT come from the member's profile and are read-only.
// @Tags Convocatorias
// @Produce json
// @Param id path string true "Convocatoria ID"
// @Success 200 {object} responses.SuccessResponse{data=FormView}
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /convocatorias/{id}/form [get]
// @Security BearerAuth
func (cc *ConvocatoriaController) GetForm(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	conv, ok := cc.loadPublished(c)
	if !ok {
		return
	}
	fields, err := ParseFields(conv.Campos)
	if err != nil {
		log.Printf("convocatoria %s: %v", conv.ID, err)
		responses.InternalServerError(c, msgInvalidSchema)
		return
	}

	prefill, _ := cc.prefill(c.Request.Context(), userID)
	responses.SendSuccess(c, http.StatusOK, "", buildFormView(*conv, fields, prefill))
}

// Submit godoc
// @Summary Submit an inscription
// @Description Fields missing from respuestas are stored as empty strings.
// @Tags Convocatorias
// @Accept json
// @Produce json
// @Param id path string true "Convocatoria ID"
// @Param inscripcion body SubmitRequest true "Answers keyed by field key"
// @Success 201 {object} responses.SuccessResponse{data=SubmitResponse}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /convocatorias/{id}/inscripciones [post]
// @Security BearerAuth
func (cc *ConvocatoriaController) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	s, err := common.SessionFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Datos inválidos", validator.ParseError(err))
		return
	}
	conv, ok := cc.loadPublished(c)
	if !ok {
		return
	}
	if conv.Estado != EstadoAbierta {
		responses.BadRequest(c, msgConvocatoriaCerrada)
		return
	}
	fields, err := ParseFields(conv.Campos)
	if err != nil {
		log.Printf("convocatoria %s: %v", conv.ID, err)
		responses.InternalServerError(c, msgInvalidSchema)
		return
	}

	prefill, profileEmail := cc.prefill(ctx, s.UserID)
	answers, problems := BuildAnswers(fields, prefill, req.Respuestas)
	if problems != nil {
		responses.SendValidationError(c, "Revisa los campos del formulario", problems)
		return
	}

	insc := Inscripcion{
		ConvocatoriaID:  conv.ID,
		UserID:          s.UserID,
		RespuestaCampos: answersToJSONMap(answers),
	}
	if err := cc.repo.CreateInscripcion(ctx, &insc); err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}

	to := s.Email
	if to == "" {
		to = profileEmail
	}
	cc.notify(ctx, to, prefill.NombreCompleto, *conv, answers)

	responses.SendSuccess(c, http.StatusCreated, msgInscripcionOK, SubmitResponse{Inscripcion: insc, Respuestas: answers})
}

// notify sends the confirmation email in the background; failures are only logged.
func (cc *ConvocatoriaController) notify(ctx context.Context, to, name string, conv Convocatoria, answers []Answer) {
	if to == "" {
		return
	}
	data := map[string]any{
		"nombre":       name,
		"titulo":       conv.Titulo,
		"club":         conv.Club,
		"piscina":      conv.Piscina,
		"fecha_inicio": conv.FechaInicio.String(),
		"respuestas":   answers,
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		err := cc.mail.SendTemplate(ctx, mailer.Recipient{Name: name, Address: to}, cc.templateID, data)
		if err != nil {
			log.Printf("convocatoria: confirmation email to %s failed: %v", to, err)
		}
	}()
}

// QRCode godoc
// @Summary QR code linking to the inscription page
// @Tags Convocatorias
// @Produce png
// @Param id path string true "Convocatoria ID"
// @Success 200 {file} binary
// @Failure 404 {object} responses.ErrorResponse
// @Router /convocatorias/{id}/qr [get]
// @Security BearerAuth
func (cc *ConvocatoriaController) QRCode(c *gin.Context) {
	conv, ok := cc.loadPublished(c)
	if !ok {
		return
	}
	link := fmt.Sprintf("%s/convocatorias/%s/inscripcion", cc.frontendURL, conv.ID)
	png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
