package club

import "github.com/gin-gonic/gin"

func RegisterClubRoutes(authenticated, admin *gin.RouterGroup, repo ClubRepository) {
	clubController := NewClubController(repo)

	authenticated.GET("/clubs", clubController.ListClubs)

	adminClubs := admin.Group("/clubs")
	{
		adminClubs.POST("", clubController.CreateClub)
		adminClubs.DELETE("/:id", clubController.DeleteClub)
	}
}
