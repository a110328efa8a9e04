package convocatoria

import (
	"github.com/DhavalSuthar-24/clubportal/pkg/mailer"
	"github.com/gin-gonic/gin"
)

type RouteConfig struct {
	FrontendURL         string
	InscripcionTemplate string
}

func RegisterConvocatoriaRoutes(authenticated, admin *gin.RouterGroup, repo ConvocatoriaRepository, profiles ProfileReader, m mailer.Mailer, cfg RouteConfig) {
	convocatoriaController := NewConvocatoriaController(repo, profiles, m, cfg.FrontendURL, cfg.InscripcionTemplate)
	adminController := NewAdminController(repo)

	convocatorias := authenticated.Group("/convocatorias")
	{
		convocatorias.GET("", convocatoriaController.ListConvocatorias)
		convocatorias.GET("/:id/form", convocatoriaController.GetForm)
		convocatorias.GET("/:id/qr", convocatoriaController.QRCode)
		convocatorias.POST("/:id/inscripciones", convocatoriaController.Submit)
	}

	adminConvocatorias := admin.Group("/convocatorias")
	{
		adminConvocatorias.GET("", adminController.ListAll)
		adminConvocatorias.POST("", adminController.CreateConvocatoria)
		adminConvocatorias.PUT("/:id", adminController.UpdateConvocatoria)
		adminConvocatorias.DELETE("/:id", adminController.DeleteConvocatoria)
		adminConvocatorias.GET("/:id/inscripciones", adminController.ListInscripciones)
	}
}
