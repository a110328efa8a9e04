package club

import (
	"errors"
	"net/http"
	"strings"

	"github.com/DhavalSuthar-24/clubportal/pkg/responses"
	"github.com/DhavalSuthar-24/clubportal/pkg/search"
	"github.com/DhavalSuthar-24/clubportal/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgClubNotFound = "Club no encontrado"

type ClubController struct {
	repo ClubRepository
}

func NewClubController(repo ClubRepository) *ClubController {
	return &ClubController{repo: repo}
}

// respondWithList re-fetches the list so the caller sees the current state.
func (cc *ClubController) respondWithList(c *gin.Context, code int, message string) {
	clubs, err := cc.repo.ListClubs(c.Request.Context())
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	clubs = search.Filter(clubs, c.Query("q"), func(cl Club) string { return cl.Name })
	responses.SendSuccess(c, code, message, clubs)
}

// ListClubs godoc
// @Summary List clubs by name
// @Tags Clubs
// @Produce json
// @Param q query string false "Fuzzy filter on the club name"
// @Success 200 {object} responses.SuccessResponse{data=[]Club}
// @Failure 500 {object} responses.ErrorResponse
// @Router /clubs [get]
// @Security BearerAuth
func (cc *ClubController) ListClubs(c *gin.Context) {
	cc.respondWithList(c, http.StatusOK, "")
}

// CreateClub godoc
// @Summary Add a club
// @Tags Admin Clubs
// @Accept json
// @Produce json
// @Param club body CreateClubRequest true "Club"
// @Success 201 {object} responses.SuccessResponse{data=[]Club}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /admin/clubs [post]
// @Security BearerAuth
func (cc *ClubController) CreateClub(c *gin.Context) {
	var req CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Datos de club inválidos", validator.ParseError(err))
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		responses.BadRequest(c, "El nombre del club es obligatorio")
		return
	}

	if err := cc.repo.CreateClub(c.Request.Context(), &Club{Name: name}); err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	cc.respondWithList(c, http.StatusCreated, "Club agregado")
}

// DeleteClub godoc
// @Summary Delete a club
// @Description Requires confirm=true. Competitions naming the club as organizer keep that name.
// @Tags Admin Clubs
// @Produce json
// @Param id path string true "Club ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} responses.SuccessResponse{data=[]Club}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /admin/clubs/{id} [delete]
// @Security BearerAuth
func (cc *ClubController) DeleteClub(c *gin.Context) {
	if c.Query("confirm") != "true" {
		responses.BadRequest(c, "Confirma la eliminación con ?confirm=true")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.NotFound(c, msgClubNotFound)
		return
	}
	if err := cc.repo.DeleteClub(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrClubNotFound) {
			responses.NotFound(c, msgClubNotFound)
			return
		}
		responses.InternalServerError(c, err.Error())
		return
	}
	cc.respondWithList(c, http.StatusOK, "Club eliminado")
}
