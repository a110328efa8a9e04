package convocatoria

import (
	"errors"
	"net/http"

	"github.com/DhavalSuthar-24/clubportal/pkg/responses"
	"github.com/DhavalSuthar-24/clubportal/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminController struct {
	repo ConvocatoriaRepository
}

func NewAdminController(repo ConvocatoriaRepository) *AdminController {
	return &AdminController{repo: repo}
}

// bindConvocatoria binds the body and checks the campos schema.
func bindConvocatoria(c *gin.Context) (ConvocatoriaRequest, bool) {
	var req ConvocatoriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Datos de convocatoria inválidos", validator.ParseError(err))
		return req, false
	}
	if _, err := ParseFields(req.Campos); err != nil {
		responses.SendValidationError(c, msgInvalidSchema, map[string]string{"campos": err.Error()})
		return req, false
	}
	if !req.FechaFin.IsZero() && req.FechaFin.Before(req.FechaInicio.Time) {
		responses.SendValidationError(c, "Datos de convocatoria inválidos",
			map[string]string{"fecha_fin": "La fecha de término no puede ser anterior a la de inicio"})
		return req, false
	}
	return req, true
}

// ListAll godoc
// @Summary List every convocatoria, drafts included
// @Tags Admin Convocatorias
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Convocatoria}
// @Router /admin/convocatorias [get]
// @Security BearerAuth
func (ac *AdminController) ListAll(c *gin.Context) {
	convs, err := ac.repo.ListAll(c.Request.Context())
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", convs)
}

// CreateConvocatoria godoc
// @Summary Create a convocatoria
// @Tags Admin Convocatorias
// @Accept json
// @Produce json
// @Param convocatoria body ConvocatoriaRequest true "Convocatoria"
// @Success 201 {object} responses.SuccessResponse{data=Convocatoria}
// @Failure 400 {object} responses.ErrorResponse
// @Router /admin/convocatorias [post]
// @Security BearerAuth
func (ac *AdminController) CreateConvocatoria(c *gin.Context) {
	req, ok := bindConvocatoria(c)
	if !ok {
		return
	}
	var conv Convocatoria
	req.apply(&conv)
	if err := ac.repo.CreateConvocatoria(c.Request.Context(), &conv); err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Convocatoria creada", conv)
}

// UpdateConvocatoria godoc
// @Summary Overwrite a convocatoria
// @Tags Admin Convocatorias
// @Accept json
// @Produce json
// @Param id path string true "Convocatoria ID"
// @Param convocatoria body ConvocatoriaRequest true "Convocatoria"
// @Success 200 {object} responses.SuccessResponse{data=Convocatoria}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /admin/convocatorias/{id} [put]
// @Security BearerAuth
func (ac *AdminController) UpdateConvocatoria(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.NotFound(c, msgConvocatoriaNotFound)
		return
	}
	req, ok := bindConvocatoria(c)
	if !ok {
		return
	}
	conv := Convocatoria{}
	conv.ID = id
	req.apply(&conv)
	if err := ac.repo.UpdateConvocatoria(c.Request.Context(), &conv); err != nil {
		if errors.Is(err, ErrConvocatoriaNotFound) {
			responses.NotFound(c, msgConvocatoriaNotFound)
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Convocatoria actualizada", conv)
}

// DeleteConvocatoria godoc
// @Summary Delete a convocatoria
// @Tags Admin Convocatorias
// @Produce json
// @Param id path string true "Convocatoria ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /admin/convocatorias/{id} [delete]
// @Security BearerAuth
func (ac *AdminController) DeleteConvocatoria(c *gin.Context) {
	if c.Query("confirm") != "true" {
		responses.BadRequest(c, "Confirma la eliminación con ?confirm=true")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.NotFound(c, msgConvocatoriaNotFound)
		return
	}
	if err := ac.repo.DeleteConvocatoria(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrConvocatoriaNotFound) {
			responses.NotFound(c, msgConvocatoriaNotFound)
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Convocatoria eliminada", nil)
}

// ListInscripciones godoc
// @Summary Submissions received by a convocatoria
// @Tags Admin Convocatorias
// @Produce json
// @Param id path string true "Convocatoria ID"
// @Success 200 {object} responses.SuccessResponse{data=[]Inscripcion}
// @Failure 404 {object} responses.ErrorResponse
// @Router /admin/convocatorias/{id}/inscripciones [get]
// @Security BearerAuth
func (ac *AdminController) ListInscripciones(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.NotFound(c, msgConvocatoriaNotFound)
		return
	}
	if _, err := ac.repo.GetConvocatoriaByID(ctx, id); err != nil {
		if errors.Is(err, ErrConvocatoriaNotFound) {
			responses.NotFound(c, msgConvocatoriaNotFound)
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}
	inscripciones, err := ac.repo.ListInscripciones(ctx, id)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", inscripciones)
}
