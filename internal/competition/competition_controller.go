package competition

import (
	"errors"
	"net/http"

	"github.com/DhavalSuthar-24/clubportal/internal/common"
	"github.com/DhavalSuthar-24/clubportal/pkg/responses"
	"github.com/DhavalSuthar-24/clubportal/pkg/search"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgLoadFailed          = "No se pudieron cargar las competencias"
	msgCompetitionNotFound = "Competencia no encontrada"
	msgEventNotFound       = "Prueba no encontrada"
	msgEnrollmentClosed    = "La competencia no admite inscripciones"
)

// CompetitionController serves the member-facing competition pages.
type CompetitionController struct {
	repo CompetitionRepository
}

func NewCompetitionController(repo CompetitionRepository) *CompetitionController {
	return &CompetitionController{repo: repo}
}

func sessionUserID(c *gin.Context) *uuid.UUID {
	id, err := common.GetUserIDFromContext(c)
	if err != nil {
		return nil
	}
	return &id
}

func competitionName(c ListItem) string { return c.Name }

// ListCompetitions godoc
// @Summary List open and closed competitions
// @Description Sorted by start date, newest first. Each row says whether the caller is enrolled.
// @Tags Competitions
// @Produce json
// @Param q query string false "Fuzzy filter on the competition name"
// @Success 200 {object} responses.SuccessResponse{data=[]ListItem}
// @Failure 500 {object} responses.ErrorResponse
// @Router /competitions [get]
// @Security BearerAuth
func (cc *CompetitionController) ListCompetitions(c *gin.Context) {
	ctx := c.Request.Context()

	comps, err := cc.repo.ListVisible(ctx)
	if err != nil {
		responses.InternalServerError(c, msgLoadFailed)
		return
	}
	status, err := ResolveEnrollmentStatus(ctx, cc.repo, sessionUserID(c))
	if err != nil {
		responses.InternalServerError(c, msgLoadFailed)
		return
	}

	items := search.Filter(withEnrollment(comps, status), c.Query("q"), competitionName)
	responses.SendSuccess(c, http.StatusOK, "", items)
}

// Calendar godoc
// @Summary Competition calendar
// @Tags Competitions
// @Produce json
// @Param q query string false "Fuzzy filter on the competition name"
// @Success 200 {object} responses.SuccessResponse{data=[]CalendarEntry}
// @Failure 500 {object} responses.ErrorResponse
// @Router /competitions/calendar [get]
// @Security BearerAuth
func (cc *CompetitionController) Calendar(c *gin.Context) {
	comps, err := cc.repo.ListVisible(c.Request.Context())
	if err != nil {
		responses.InternalServerError(c, msgLoadFailed)
		return
	}
	comps = search.Filter(comps, c.Query("q"), func(comp Competition) string { return comp.Name })

	entries := make([]CalendarEntry, 0, len(comps))
	for _, comp := range comps {
		if !IsVisible(comp.Status) {
			continue
		}
		entries = append(entries, toCalendarEntry(comp))
	}
	responses.SendSuccess(c, http.StatusOK, "", entries)
}

// GetCompetition godoc
// @Summary Competition detail with stages and events
// @Tags Competitions
// @Produce json
// @Param id path string true "Competition ID"
// @Success 200 {object} responses.SuccessResponse{data=ListItem}
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /competitions/{id} [get]
// @Security BearerAuth
func (cc *CompetitionController) GetCompetition(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.NotFound(c, msgCompetitionNotFound)
		return
	}
	comp, err := cc.repo.GetCompetitionByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCompetitionNotFound) {
			responses.NotFound(c, msgCompetitionNotFound)
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}
	if !IsVisible(comp.Status) {
		responses.NotFound(c, msgCompetitionNotFound)
		return
	}

	status, err := ResolveEnrollmentStatus(ctx, cc.repo, sessionUserID(c))
	if err != nil {
		responses.InternalServerError(c, msgLoadFailed)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", ListItem{Competition: *comp, Inscrito: status.Has(comp.ID)})
}

// Enroll godoc
// @Summary Enroll in a competition event
// @Description Inserts an enrollment row for an event of an open competition. Repeated enrollments are not rejected.
// @Tags Competitions
// @Produce json
// @Param event_id path string true "Event ID"
// @Success 201 {object} responses.SuccessResponse{data=Enrollment}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /competitions/events/{event_id}/enroll [post]
// @Security BearerAuth
func (cc *CompetitionController) Enroll(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		responses.NotFound(c, msgEventNotFound)
		return
	}
	comp, err := cc.repo.GetEventCompetition(ctx, eventID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			responses.NotFound(c, msgEventNotFound)
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}
	// Events of competitions members cannot see do not exist for them.
	if !IsVisible(comp.Status) {
		responses.NotFound(c, msgEventNotFound)
		return
	}
	if comp.Status != StatusOpen {
		responses.BadRequest(c, msgEnrollmentClosed)
		return
	}

	enrollment := &Enrollment{UserID: userID, EventID: eventID}
	if err := cc.repo.CreateEnrollment(ctx, enrollment); err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Inscripción realizada", enrollment)
}
