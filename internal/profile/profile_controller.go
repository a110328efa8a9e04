package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/DhavalSuthar-24/clubportal/internal/common"
	"github.com/DhavalSuthar-24/clubportal/pkg/responses"
	"github.com/DhavalSuthar-24/clubportal/pkg/rut"
	"github.com/DhavalSuthar-24/clubportal/pkg/validator"
	"github.com/gin-gonic/gin"
)

// ProfileController handles the signed-in user's profile.
type ProfileController struct {
	repo ProfileRepository
}

func NewProfileController(repo ProfileRepository) *ProfileController {
	return &ProfileController{repo: repo}
}

// loadOrCreate returns the session user's profile. A user whose profile row is
// missing, such as after an interrupted registration, gets a socio profile
// built from the token's email and registration metadata.
func (pc *ProfileController) loadOrCreate(ctx context.Context, s common.Session) (*Profile, error) {
	p, err := pc.repo.GetProfileByID(ctx, s.UserID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	p = &Profile{
		ID:             s.UserID,
		Email:          strings.ToLower(strings.TrimSpace(s.Email)),
		NombreCompleto: strings.TrimSpace(s.NombreCompleto),
		Rol:            RolSocio,
	}
	if rut.Validate(s.Rut) {
		p.Rut = rut.Format(s.Rut)
	}
	p.PerfilCompleto = p.IsComplete()
	if err := pc.repo.CreateProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create missing profile: %w", err)
	}
	log.Printf("profile: created missing profile for %s", s.UserID)
	// Another request may have inserted the row first.
	return pc.repo.GetProfileByID(ctx, s.UserID)
}

// GetMyProfile godoc
// @Summary Get my profile
// @Tags Profile
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Profile}
// @Failure 401 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /profile/me [get]
// @Security BearerAuth
func (pc *ProfileController) GetMyProfile(c *gin.Context) {
	s, err := common.SessionFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	p, err := pc.loadOrCreate(c.Request.Context(), s)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", p)
}

// UpdateMyProfile godoc
// @Summary Complete or update my profile
// @Description Sets name, RUT, phone and birth date; perfil_completo becomes true when all are present.
// @Tags Profile
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Profile data"
// @Success 200 {object} responses.SuccessResponse{data=Profile}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /profile/me [put]
// @Security BearerAuth
func (pc *ProfileController) UpdateMyProfile(c *gin.Context) {
	s, err := common.SessionFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Datos inválidos", validator.ParseError(err))
		return
	}
	if !rut.Validate(req.Rut) {
		responses.SendValidationError(c, "Datos inválidos", map[string]string{"rut": "RUT inválido"})
		return
	}

	ctx := c.Request.Context()
	p, err := pc.loadOrCreate(ctx, s)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}

	p.NombreCompleto = strings.TrimSpace(req.NombreCompleto)
	p.Rut = rut.Format(req.Rut)
	p.Telefono = strings.TrimSpace(req.Telefono)
	p.FechaNacimiento = req.FechaNacimiento
	p.PerfilCompleto = p.IsComplete()

	if err := pc.repo.UpdateProfile(ctx, p); err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Perfil actualizado", p)
}
