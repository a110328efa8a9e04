package auth

import (
	"github.com/DhavalSuthar-24/clubportal/internal/profile"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes mounts the public auth endpoints on public (behind limit)
// and the session endpoints on authenticated.
func RegisterAuthRoutes(public, authenticated *gin.RouterGroup, limit gin.HandlerFunc, svc AuthService, profiles profile.ProfileRepository) {
	authController := NewAuthController(svc, profiles)

	authPublic := public.Group("/auth", limit)
	{
		authPublic.POST("/register", authController.Register)
		authPublic.POST("/login", authController.Login)
		authPublic.POST("/refresh-token", authController.RefreshToken)
	}

	authProtected := authenticated.Group("/auth")
	{
		authProtected.POST("/change-password", limit, authController.ChangePassword)
		authProtected.POST("/logout", authController.Logout)
	}
}
