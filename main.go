package main

import (
	"log"

	"github.com/DhavalSuthar-24/clubportal/config"
	_ "github.com/DhavalSuthar-24/clubportal/docs"
	"github.com/DhavalSuthar-24/clubportal/internal/auth"
	"github.com/DhavalSuthar-24/clubportal/internal/club"
	"github.com/DhavalSuthar-24/clubportal/internal/competition"
	"github.com/DhavalSuthar-24/clubportal/internal/convocatoria"
	"github.com/DhavalSuthar-24/clubportal/internal/profile"
	"github.com/DhavalSuthar-24/clubportal/internal/voucher"
	"github.com/DhavalSuthar-24/clubportal/pkg/mailer"
	"github.com/DhavalSuthar-24/clubportal/routes"
)

// @title Club Portal REST API
// @version 1.0
// @description Registration and administration backend for a swimming club.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// The hosted backend owns the schema; migrate only local databases.
	if cfg.App.Migrate {
		err := db.AutoMigrate(
			&profile.Profile{},
			&competition.Competition{}, &competition.Stage{}, &competition.Event{}, &competition.Enrollment{},
			&club.Club{},
			&convocatoria.Convocatoria{}, &convocatoria.Inscripcion{},
			&voucher.Voucher{},
		)
		if err != nil {
			log.Fatalf("AutoMigrate failed: %v", err)
		}
		log.Println("AutoMigrate successful")
	}

	authService := auth.NewAuthService(cfg.Auth.URL, cfg.Auth.AnonKey)
	m := mailer.New(cfg.Mail.SendgridKey, cfg.Mail.FromEmail, cfg.Mail.FromName)

	r, err := routes.SetupRoutes(cfg, db, authService, m)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
