package middleware

import (
	"strings"

	"github.com/DhavalSuthar-24/clubportal/internal/common"
	"github.com/DhavalSuthar-24/clubportal/pkg/responses"
	"github.com/DhavalSuthar-24/clubportal/pkg/token"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware lets a request through only with a valid access token from
// the auth service, and attaches the resulting common.Session.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.Unauthorized(c, "Authorization header is required")
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			responses.Unauthorized(c, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			responses.Unauthorized(c, "Invalid or expired token: "+err.Error())
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			responses.Unauthorized(c, "Could not extract user ID from token: "+err.Error())
			return
		}

		common.SetSession(c, common.Session{
			UserID:         userID,
			Email:          claims.Email,
			AccessToken:    bearerToken[1],
			NombreCompleto: claims.Metadata("nombre_completo"),
			Rut:            claims.Metadata("rut"),
		})
		c.Next()
	}
}
