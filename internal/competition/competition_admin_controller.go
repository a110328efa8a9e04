package competition

import (
	"errors"
	"net/http"

	"github.com/DhavalSuthar-24/clubportal/pkg/responses"
	"github.com/DhavalSuthar-24/clubportal/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgStageNotFound      = "Etapa no encontrada"
	msgConfirmationNeeded = "Confirma la eliminación con ?confirm=true"
)

// AdminController is the directiva's competition CRUD.
type AdminController struct {
	repo CompetitionRepository
}

func NewAdminController(repo CompetitionRepository) *AdminController {
	return &AdminController{repo: repo}
}

func (r CompetitionRequest) apply(c *Competition) {
	c.Name = r.Name
	c.Organizer = r.Organizer
	c.StartDate = r.StartDate
	c.EndDate = r.EndDate
	c.Status = r.Status
	c.Location = r.Location
	c.Description = r.Description
}

// ListAll godoc
// @Summary List every competition, drafts included
// @Tags Admin Competitions
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Competition}
// @Failure 500 {object} responses.ErrorResponse
// @Router /admin/competitions [get]
// @Security BearerAuth
func (ac *AdminController) ListAll(c *gin.Context) {
	comps, err := ac.repo.ListAll(c.Request.Context())
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", comps)
}

// CreateCompetition godoc
// @Summary Create a competition
// @Tags Admin Competitions
// @Accept json
// @Produce json
// @Param competition body CompetitionRequest true "Competition"
// @Success 201 {object} responses.SuccessResponse{data=Competition}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /admin/competitions [post]
// @Security BearerAuth
func (ac *AdminController) CreateCompetition(c *gin.Context) {
	var req CompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Datos de competencia inválidos", validator.ParseError(err))
		return
	}

	var comp Competition
	req.apply(&comp)
	if err := ac.repo.CreateCompetition(c.Request.Context(), &comp); err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Competencia creada", comp)
}

// UpdateCompetition godoc
// @Summary Overwrite a competition
// @Description Every editable field is replaced; concurrent edits are last-write-wins.
// @Tags Admin Competitions
// @Accept json
// @Produce json
// @Param id path string true "Competition ID"
// @Param competition body CompetitionRequest true "Competition"
// @Success 200 {object} responses.SuccessResponse{data=Competition}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /admin/competitions/{id} [put]
// @Security BearerAuth
func (ac *AdminController) UpdateCompetition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.NotFound(c, msgCompetitionNotFound)
		return
	}
	var req CompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Datos de competencia inválidos", validator.ParseError(err))
		return
	}

	comp := Competition{}
	comp.ID = id
	req.apply(&comp)
	if err := ac.repo.UpdateCompetition(c.Request.Context(), &comp); err != nil {
		if errors.Is(err, ErrCompetitionNotFound) {
			responses.NotFound(c, msgCompetitionNotFound)
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Competencia actualizada", comp)
}

// DeleteCompetition godoc
// @Summary Delete a competition
// @Description Requires confirm=true. Stages, events and enrollments are left to the database.
// @Tags Admin Competitions
// @Produce json
// @Param id path string true "Competition ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /admin/competitions/{id} [delete]
// @Security BearerAuth
func (ac *AdminController) DeleteCompetition(c *gin.Context) {
	if c.Query("confirm") != "true" {
		responses.BadRequest(c, msgConfirmationNeeded)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.NotFound(c, msgCompetitionNotFound)
		return
	}
	if err := ac.repo.DeleteCompetition(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrCompetitionNotFound) {
			responses.NotFound(c, msgCompetitionNotFound)
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Competencia eliminada", nil)
}

// AddStage godoc
// @Summary Add a stage to a competition
// @Tags Admin Competitions
// @Accept json
// @Produce json
// @Param id path string true "Competition ID"
// @Param stage body StageRequest true "Stage"
// @Success 201 {object} responses.SuccessResponse{data=Stage}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /admin/competitions/{id}/stages [post]
// @Security BearerAuth
func (ac *AdminController) AddStage(c *gin.Context) {
	ctx := c.Request.Context()

	compID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.NotFound(c, msgCompetitionNotFound)
		return
	}
	var req StageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Datos de etapa inválidos", validator.ParseError(err))
		return
	}
	if _, err := ac.repo.GetCompetitionByID(ctx, compID); err != nil {
		if errors.Is(err, ErrCompetitionNotFound) {
			responses.NotFound(c, msgCompetitionNotFound)
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}

	stage := Stage{CompetitionID: compID, Name: req.Name, Date: req.Date}
	if err := ac.repo.CreateStage(ctx, &stage); err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Etapa creada", stage)
}

// AddEvent godoc
// @Summary Add an event to a stage
// @Tags Admin Competitions
// @Accept json
// @Produce json
// @Param stage_id path string true "Stage ID"
// @Param event body EventRequest true "Event"
// @Success 201 {object} responses.SuccessResponse{data=Event}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /admin/stages/{stage_id}/events [post]
// @Security BearerAuth
func (ac *AdminController) AddEvent(c *gin.Context) {
	ctx := c.Request.Context()

	stageID, err := uuid.Parse(c.Param("stage_id"))
	if err != nil {
		responses.NotFound(c, msgStageNotFound)
		return
	}
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Datos de prueba inválidos", validator.ParseError(err))
		return
	}
	if _, err := ac.repo.GetStageByID(ctx, stageID); err != nil {
		if errors.Is(err, ErrStageNotFound) {
			responses.NotFound(c, msgStageNotFound)
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}

	event := Event{StageID: stageID, Name: req.Name, Category: req.Category}
	if err := ac.repo.CreateEvent(ctx, &event); err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Prueba creada", event)
}
