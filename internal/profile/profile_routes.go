package profile

import (
	"github.com/gin-gonic/gin"
)

// RegisterProfileRoutes mounts /profile on a group that already requires authentication.
func RegisterProfileRoutes(authenticated *gin.RouterGroup, repo ProfileRepository) {
	profileController := NewProfileController(repo)

	me := authenticated.Group("/profile/me")
	{
		me.GET("", profileController.GetMyProfile)
		me.PUT("", profileController.UpdateMyProfile)
	}
}
