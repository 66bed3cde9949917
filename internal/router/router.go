package router

import (
	"time"

	"revu/config"
	"revu/internal/domain"
	"revu/internal/handler"
	"revu/internal/middleware"
	"revu/internal/repository"
	"revu/internal/service"
	"revu/internal/ws"
	"revu/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers onto a gin engine.
// cloud may be nil when uploads are not configured.
func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client, log zerolog.Logger) (*gin.Engine, *service.SessionService) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Observe(log))
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.Server.RateLimit, time.Minute)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	hub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(userRepo)
	sessionSvc := service.NewSessionService(sessionRepo, userRepo, cfg.Session.TTL)
	notifSvc := service.NewNotificationService(notificationRepo, hub)
	appSvc := service.NewApplicationService(appRepo, campaignRepo, userRepo, notifSvc)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, sessionSvc, cfg.Session.CookieName)
	campaignHandler := handler.NewCampaignHandler(campaignRepo, appRepo, likeRepo, userRepo)
	appHandler := handler.NewApplicationHandler(appSvc, appRepo, campaignRepo)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	uploadHandler := handler.NewUploadHandler(cloud)

	authMw := middleware.SessionAuth(sessionSvc, cfg.Session.CookieName)
	optionalMw := middleware.OptionalSession(sessionSvc, cfg.Session.CookieName)

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMw, authHandler.Logout)
			authGroup.GET("/me", authMw, authHandler.Me)
		}

		api.GET("/campaigns", campaignHandler.List)
		api.GET("/campaigns/:id", optionalMw, campaignHandler.Get)
		api.POST("/campaigns", authMw, middleware.RequireRole(domain.RoleAdvertiser), campaignHandler.Create)
		api.GET("/campaigns/:id/applications", authMw, middleware.RequireRole(domain.RoleAdvertiser), campaignHandler.ListApplications)
		api.POST("/campaigns/:id/like", authMw, campaignHandler.ToggleLike)

		api.POST("/applications", authMw, middleware.RequireRole(domain.RoleInfluencer), appHandler.Apply)
		api.GET("/applications/me", authMw, appHandler.ListMine)
		api.PATCH("/applications/:id/status", authMw, middleware.RequireRole(domain.RoleAdvertiser), appHandler.SetStatus)
		api.PATCH("/applications/:id/review", authMw, middleware.RequireRole(domain.RoleInfluencer), appHandler.SubmitReview)
		api.POST("/applications/:id/points", authMw, middleware.RequireRole(domain.RoleAdvertiser), appHandler.AwardPoints)

		api.GET("/notifications", authMw, notificationHandler.List)
		api.PATCH("/notifications/:id/read", authMw, notificationHandler.MarkRead)

		api.GET("/advertiser/campaigns", authMw, middleware.RequireRole(domain.RoleAdvertiser), campaignHandler.AdvertiserCampaigns)

		api.POST("/uploads/image", authMw, uploadHandler.UploadImage)

		api.GET("/ws/notifications", authMw, handler.NotificationStream(hub))
	}

	return r, sessionSvc
}
