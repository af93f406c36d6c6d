// Package server assembles stores, services, controllers and routes into a
// ready gin engine.
package server

import (
	"context"
	"errors"
	"fmt"

	"abeg-fix/config"
	"abeg-fix/controllers"
	"abeg-fix/jobs"
	"abeg-fix/libs"
	"abeg-fix/middleware"
	"abeg-fix/repositories"
	"abeg-fix/repositories/memstore"
	"abeg-fix/routes"
	"abeg-fix/services"
	"abeg-fix/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Router  *gin.Engine
	Sweeper *jobs.UnverifiedSweeper

	pool  *pgxpool.Pool
	redis *redis.Client
}

type stores struct {
	accounts  services.AccountStore
	reviews   services.ReviewStore
	favorites services.FavoriteStore
	directory services.ArtisanDirectory
}

// New connects to the configured backends and builds the HTTP surface.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	app := &App{}

	var st stores
	var db controllers.Pinger
	switch cfg.Store {
	case config.StoreMemory:
		logger.Warn("Using in-memory store, data is lost on restart")
		mem := memstore.New()
		st = stores{mem.Accounts(), mem.Reviews(), mem.Favorites(), mem.Directory()}
	default:
		if err := config.RunMigrations(cfg, logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		pool, err := config.ConnectDB(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		app.pool = pool
		db = pool
		st = stores{
			accounts:  repositories.NewAccountRepository(pool),
			reviews:   repositories.NewReviewRepository(pool),
			favorites: repositories.NewFavoriteRepository(pool),
			directory: repositories.NewDirectoryRepository(pool),
		}
	}

	app.redis = config.ConnectRedis(ctx, cfg, logger)

	mailer, err := newMailer(cfg, logger)
	if err != nil {
		app.Close()
		return nil, err
	}
	media, err := newMedia(cfg, logger)
	if err != nil {
		app.Close()
		return nil, err
	}

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	authSvc := services.NewAuthService(st.accounts, st.favorites, mailer, tokens, services.AuthConfig{
		OTPTTL:        cfg.OTPTTL,
		ResetTokenTTL: cfg.ResetTokenTTL,
		FrontendURL:   cfg.FrontendURL,
	}, logger)
	aggregator := services.NewRatingAggregator(st.reviews, st.accounts, logger)

	ctrl := routes.Controllers{
		Auth:    controllers.NewAuthController(authSvc),
		Profile: controllers.NewProfileController(services.NewProfileService(st.accounts, media, logger), cfg.MaxUploadSize),
		User: controllers.NewUserController(
			services.NewDirectoryService(st.directory),
			services.NewFavoriteService(st.favorites, st.directory, logger),
		),
		Review: controllers.NewReviewController(services.NewReviewService(st.reviews, st.directory, aggregator, logger)),
		Health: controllers.NewHealthController(db),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadSize
	router.Use(middleware.Recovery(logger), middleware.RequestLogger(logger), middleware.CORSMiddleware(cfg))

	limiter := middleware.RateLimit(app.redis, cfg.RateLimitRequests, cfg.RateLimitWindow, logger)
	routes.SetupRoutes(router, ctrl, authSvc, limiter)

	app.Router = router
	app.Sweeper = jobs.NewUnverifiedSweeper(st.accounts, cfg.UnverifiedMaxAge, cfg.SweepInterval, logger)
	return app, nil
}

func newMailer(cfg *config.Config, logger *zap.Logger) (services.Mailer, error) {
	mailer, err := libs.NewEmailService(cfg)
	if errors.Is(err, libs.ErrSMTPNotConfigured) {
		if cfg.IsProduction() {
			return nil, err
		}
		logger.Warn("SMTP not configured, emails will be logged instead of sent")
		return libs.NewLogMailer(logger), nil
	}
	return mailer, err
}

func newMedia(cfg *config.Config, logger *zap.Logger) (services.MediaUploader, error) {
	media, err := libs.NewCloudinaryService(cfg)
	if errors.Is(err, libs.ErrCloudinaryNotConfigured) {
		logger.Warn("Cloudinary not configured, image uploads are disabled")
		return libs.DisabledUploader{}, nil
	}
	if err != nil {
		return nil, err
	}
	return media, nil
}

func (a *App) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
