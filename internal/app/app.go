package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/slatesocial/site/assets"
	"github.com/slatesocial/site/internal/config"
	"github.com/slatesocial/site/internal/db"
	"github.com/slatesocial/site/internal/repository"
	"github.com/slatesocial/site/internal/service"
	"github.com/slatesocial/site/internal/site"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	Registrations       repository.RegistrationRepository
	EmailService        *service.EmailService
	RegistrationService *service.RegistrationService
	BlogService         *service.BlogService
	PageService         *service.PageService
	Builder             *site.Builder
}

// NewBuilder wires only what a static build needs: no database, no email.
func NewBuilder(cfg *config.Config) *site.Builder {
	return site.NewBuilder(cfg, service.NewBlogService(cfg.ContentPath), service.NewPageService(cfg.ContentPath), assets.AssetsFS)
}

// New wires the preview server: the site builder plus the registration
// backend behind the form.
func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	registrations := repository.NewRegistrationRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.ResendAudienceID,
		cfg.RegisterNotifyEmail,
		cfg.SiteURL,
		cfg.SiteName,
		cfg.IsDevelopment(),
	)
	registrationService := service.NewRegistrationService(registrations, emailService)
	blogService := service.NewBlogService(cfg.ContentPath)
	pageService := service.NewPageService(cfg.ContentPath)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		Registrations:       registrations,
		EmailService:        emailService,
		RegistrationService: registrationService,
		BlogService:         blogService,
		PageService:         pageService,
		Builder:             site.NewBuilder(cfg, blogService, pageService, assets.AssetsFS),
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
