package competition

import (
	"github.com/gin-gonic/gin"
)

// RegisterCompetitionRoutes mounts member routes on authenticated and CRUD routes on admin.
func RegisterCompetitionRoutes(authenticated, admin *gin.RouterGroup, repo CompetitionRepository) {
	competitionController := NewCompetitionController(repo)
	adminController := NewAdminController(repo)

	competitions := authenticated.Group("/competitions")
	{
		competitions.GET("", competitionController.ListCompetitions)
		competitions.GET("/calendar", competitionController.Calendar)
		competitions.GET("/:id", competitionController.GetCompetition)
		competitions.POST("/events/:event_id/enroll", competitionController.Enroll)
	}

	adminCompetitions := admin.Group("/competitions")
	{
		adminCompetitions.GET("", adminController.ListAll)
		adminCompetitions.POST("", adminController.CreateCompetition)
		adminCompetitions.PUT("/:id", adminController.UpdateCompetition)
		adminCompetitions.DELETE("/:id", adminController.DeleteCompetition)
		adminCompetitions.POST("/:id/stages", adminController.AddStage)
	}
	admin.POST("/stages/:stage_id/events", adminController.AddEvent)
}
