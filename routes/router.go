package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/clubportal/config"
	"github.com/DhavalSuthar-24/clubportal/internal/auth"
	"github.com/DhavalSuthar-24/clubportal/internal/club"
	"github.com/DhavalSuthar-24/clubportal/internal/competition"
	"github.com/DhavalSuthar-24/clubportal/internal/convocatoria"
	"github.com/DhavalSuthar-24/clubportal/internal/middleware"
	"github.com/DhavalSuthar-24/clubportal/internal/profile"
	"github.com/DhavalSuthar-24/clubportal/internal/voucher"
	"github.com/DhavalSuthar-24/clubportal/pkg/mailer"
	"github.com/DhavalSuthar-24/clubportal/pkg/ratelimit"
	"github.com/DhavalSuthar-24/clubportal/pkg/rmiddleware"
)

func SetupRoutes(cfg *config.Config, db *gorm.DB, authService auth.AuthService, m mailer.Mailer) (*gin.Engine, error) {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	// Client IPs key the rate limiter; only configured proxies may rewrite them.
	if err := r.SetTrustedProxies(cfg.App.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Welcome page
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`
			<html>
				<head><title>Club Portal</title></head>
				<body style="text-align:center; margin-top: 40px;">
					<h1>Club Portal API</h1>
					<a href="/swagger/index.html">swagger</a>
				</body>
			</html>
		`))
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	profileRepo := profile.NewProfileRepository(db)
	limiter := ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	// API routes
	api := r.Group("/api")
	authenticated := api.Group("", middleware.AuthMiddleware(cfg.Auth.JWTSecret))
	admin := authenticated.Group("/admin", rmiddleware.DirectivaMiddleware(profileRepo))

	auth.RegisterAuthRoutes(api, authenticated, limiter.Middleware(), authService, profileRepo)
	profile.RegisterProfileRoutes(authenticated, profileRepo)
	competition.RegisterCompetitionRoutes(authenticated, admin, competition.NewCompetitionRepository(db))
	club.RegisterClubRoutes(authenticated, admin, club.NewClubRepository(db))
	convocatoria.RegisterConvocatoriaRoutes(authenticated, admin,
		convocatoria.NewConvocatoriaRepository(db), profileRepo, m,
		convocatoria.RouteConfig{
			FrontendURL:         cfg.App.FrontendURL,
			InscripcionTemplate: cfg.Mail.InscripcionTemplate,
		})
	voucher.RegisterVoucherRoutes(authenticated, admin, voucher.NewVoucherRepository(db), m,
		cfg.Mail.DirectivaEmail, cfg.Mail.VoucherTemplate)

	return r, nil
}
