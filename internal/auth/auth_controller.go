package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/DhavalSuthar-24/clubportal/internal/common"
	"github.com/DhavalSuthar-24/clubportal/internal/profile"
	"github.com/DhavalSuthar-24/clubportal/pkg/responses"
	"github.com/DhavalSuthar-24/clubportal/pkg/rut"
	"github.com/DhavalSuthar-24/clubportal/pkg/validator"
	"github.com/gin-gonic/gin"
)

const (
	msgPasswordTooShort   = "La contraseña debe tener al menos 4 caracteres"
	msgPasswordMismatch   = "Las contraseñas no coinciden"
	msgInvalidRut         = "RUT inválido"
	msgIncorrectPassword  = "La contraseña actual es incorrecta"
	msgPasswordChanged    = "Contraseña actualizada correctamente"
	msgRegistered         = "Registro exitoso. Revisa tu correo para confirmar la cuenta."
	msgLoggedOut          = "Sesión cerrada"
	msgInvalidCredentials = "Credenciales inválidas"
)

type AuthController struct {
	auth     AuthService
	profiles profile.ProfileRepository
}

func NewAuthController(auth AuthService, profiles profile.ProfileRepository) *AuthController {
	return &AuthController{auth: auth, profiles: profiles}
}

// checkNewPassword runs the local password rules that gate every remote call.
func checkNewPassword(password, confirm string) string {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return msgPasswordTooShort
	}
	if password != confirm {
		return msgPasswordMismatch
	}
	return ""
}

// @Summary      Register a member
// @Description  Validates locally, signs up at the auth service and creates the socio profile
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201 {object} responses.SuccessResponse{data=profile.Profile}
// @Failure      400 {object} responses.ErrorResponse
// @Failure      429 {object} responses.ErrorResponse
// @Failure      502 {object} responses.ErrorResponse
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Datos de registro inválidos", validator.ParseError(err))
		return
	}
	if msg := checkNewPassword(req.Password, req.PasswordConfirm); msg != "" {
		responses.BadRequest(c, msg)
		return
	}
	if !rut.Validate(req.Rut) {
		responses.BadRequest(c, msgInvalidRut)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	formattedRut := rut.Format(req.Rut)
	nombre := strings.TrimSpace(req.NombreCompleto)

	u, err := ac.auth.SignUp(c.Request.Context(), email, req.Password, map[string]any{
		"nombre_completo": nombre,
		"rut":             formattedRut,
	})
	if err != nil {
		sendAuthError(c, err)
		return
	}

	p := &profile.Profile{
		ID:             u.ID,
		Email:          email,
		NombreCompleto: nombre,
		Rut:            formattedRut,
		Rol:            profile.RolSocio,
	}
	// The auth user already exists, so a failed insert must not fail the
	// registration. The profile is created on the user's first profile read.
	if err := ac.profiles.CreateProfile(c.Request.Context(), p); err != nil {
		log.Printf("auth: profile for new user %s not created: %v", u.ID, err)
	}

	responses.SendSuccess(c, http.StatusCreated, msgRegistered, p)
}

// @Summary      Sign in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} responses.SuccessResponse{data=Session}
// @Failure      400 {object} responses.ErrorResponse
// @Failure      401 {object} responses.ErrorResponse
// @Failure      429 {object} responses.ErrorResponse
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Datos inválidos", validator.ParseError(err))
		return
	}

	sess, err := ac.auth.SignInWithPassword(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		if isRejection(err) {
			responses.Unauthorized(c, msgInvalidCredentials)
			return
		}
		sendAuthError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Sesión iniciada", sess)
}

// @Summary      Refresh the session
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh token"
// @Success      200 {object} responses.SuccessResponse{data=Session}
// @Failure      400 {object} responses.ErrorResponse
// @Failure      401 {object} responses.ErrorResponse
// @Router       /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Datos inválidos", validator.ParseError(err))
		return
	}
	sess, err := ac.auth.RefreshSession(c.Request.Context(), req.RefreshToken)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", sess)
}

// @Summary      Change password
// @Description  The current password is verified by the auth service before the update is sent
// @Tags         Auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "Current and new password"
// @Success      200 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      401 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Failure      502 {object} responses.ErrorResponse
// @Router       /auth/change-password [post]
func (ac *AuthController) ChangePassword(c *gin.Context) {
	s, err := common.SessionFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Datos inválidos", validator.ParseError(err))
		return
	}
	if msg := checkNewPassword(req.NewPassword, req.PasswordConfirm); msg != "" {
		responses.BadRequest(c, msg)
		return
	}

	email := s.Email
	if email == "" {
		p, err := ac.profiles.GetProfileByID(c.Request.Context(), s.UserID)
		if err != nil {
			responses.InternalServerError(c, err.Error())
			return
		}
		email = p.Email
	}

	verified, err := ac.auth.SignInWithPassword(c.Request.Context(), email, req.CurrentPassword)
	if err != nil {
		if isRejection(err) {
			responses.Unauthorized(c, msgIncorrectPassword)
			return
		}
		sendAuthError(c, err)
		return
	}

	if err := ac.auth.UpdatePassword(c.Request.Context(), verified.AccessToken, req.NewPassword); err != nil {
		sendAuthError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, msgPasswordChanged, nil)
}

// @Summary      Sign out
// @Description  Revokes the session's refresh tokens at the auth service
// @Tags         Auth
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse
// @Failure      401 {object} responses.ErrorResponse
// @Router       /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	s, err := common.SessionFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	if err := ac.auth.SignOut(c.Request.Context(), s.AccessToken); err != nil {
		// The token expires on its own; the client drops it either way.
		log.Printf("auth: sign out for %s failed: %v", s.UserID, err)
	}
	responses.SendSuccess(c, http.StatusOK, msgLoggedOut, nil)
}

// isRejection reports whether the auth service refused the request itself,
// as opposed to failing or being unreachable.
func isRejection(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		apiErr.StatusCode >= http.StatusBadRequest &&
		apiErr.StatusCode < http.StatusInternalServerError &&
		apiErr.StatusCode != http.StatusTooManyRequests
}

// sendAuthError surfaces the auth service's own message.
func sendAuthError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status >= http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		responses.SendError(c, status, apiErr.Message)
		return
	}
	responses.SendError(c, http.StatusBadGateway, err.Error())
}
