// Package router wires middleware, handlers and routes into the gin engine.
package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/auth"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/config"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/handlers"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/middleware"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/models"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
)

// Services bundles everything the router needs to build handlers.
type Services struct {
	Tokens       *auth.TokenService
	Auth         *services.AuthService
	Users        *services.UserService
	Audit        *services.AuditService
	Projects     *services.ProjectService
	Academics    *services.AcademicService
	TechStacks   *services.TechStackService
	Testimonials *services.TestimonialService
	Media        *services.MediaService
	Contact      *services.ContactService
}

// New builds the gin engine with all routes registered.
func New(cfg *config.Config, svc Services) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.StrictTransportSecurity())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.BodySizeLimit(middleware.DefaultBodyLimit))
	r.Use(middleware.Authenticate(svc.Tokens))

	authHandler := handlers.NewAuthHandler(svc.Auth, svc.Users, svc.Audit)
	userHandler := handlers.NewUserHandler(svc.Users, svc.Audit)
	projectHandler := handlers.NewProjectHandler(svc.Projects)
	academicHandler := handlers.NewAcademicHandler(svc.Academics)
	techStackHandler := handlers.NewTechStackHandler(svc.TechStacks)
	testimonialHandler := handlers.NewTestimonialHandler(svc.Testimonials)
	mediaHandler := handlers.NewMediaHandler(svc.Media)
	contactHandler := handlers.NewContactHandler(svc.Contact)
	systemHandler := handlers.NewSystemHandler(svc.Users, svc.Projects, svc.Contact, svc.Audit)

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	contactLimiter := middleware.NewRateLimiter(5, time.Minute)

	// Uploaded files are public once stored.
	r.Static("/uploads", svc.Media.Dir())

	api := r.Group("/api")
	{
		api.GET("/version", systemHandler.Version)
		api.GET("/health", systemHandler.Health)

		// Public portfolio surface. Drafts and unapproved entries are
		// filtered inside the handlers.
		api.GET("/projects", projectHandler.List)
		api.GET("/projects/:id", projectHandler.Get)
		api.GET("/academics", academicHandler.List)
		api.GET("/academics/:id", academicHandler.Get)
		api.GET("/techstacks", techStackHandler.List)
		api.GET("/techstacks/:id", techStackHandler.Get)
		api.GET("/testimonials", testimonialHandler.List)

		api.POST("/contact", contactLimiter.Middleware(), contactHandler.Submit)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/google", loginLimiter.Middleware(), authHandler.LoginGoogle)
			authGroup.POST("/github", loginLimiter.Middleware(), authHandler.LoginGitHub)
			authGroup.POST("/2fa/verify", loginLimiter.Middleware(), authHandler.VerifyTwoFactor)
			authGroup.POST("/refresh", authHandler.Refresh)

			me := authGroup.Group("")
			me.Use(middleware.RequireAuthority(models.LevelViewer))
			{
				me.GET("/me", authHandler.Me)
				me.POST("/logout", authHandler.Logout)
				me.POST("/2fa/setup", authHandler.SetupTwoFactor)
				me.POST("/2fa/enable", authHandler.EnableTwoFactor)
				me.POST("/2fa/disable", authHandler.DisableTwoFactor)
			}
		}

		// Content writes need content-manager authority.
		content := api.Group("")
		content.Use(middleware.RequireAuthority(models.LevelContentManager))
		{
			content.POST("/projects", projectHandler.Create)
			content.PUT("/projects/:id", projectHandler.Update)
			content.DELETE("/projects/:id", projectHandler.Delete)

			content.POST("/academics", academicHandler.Create)
			content.PUT("/academics/:id", academicHandler.Update)
			content.DELETE("/academics/:id", academicHandler.Delete)

			content.POST("/techstacks", techStackHandler.Create)
			content.PUT("/techstacks/:id", techStackHandler.Update)
			content.DELETE("/techstacks/:id", techStackHandler.Delete)

			content.GET("/testimonials/:id", testimonialHandler.Get)
			content.POST("/testimonials", testimonialHandler.Create)
			content.PUT("/testimonials/:id", testimonialHandler.Update)
			content.PUT("/testimonials/:id/approval", testimonialHandler.SetApproved)
			content.DELETE("/testimonials/:id", testimonialHandler.Delete)
		}

		// Media is gated by permission rather than raw authority level.
		media := api.Group("/media")
		media.Use(middleware.RequirePermission("media.manage"))
		{
			media.GET("", mediaHandler.List)
			media.GET("/:id", mediaHandler.Get)
			media.POST("", mediaHandler.Upload)
			media.DELETE("/:id", mediaHandler.Delete)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuthority(models.LevelAdmin))
		{
			admin.GET("/users", userHandler.List)
			admin.GET("/users/:id", userHandler.Get)
			admin.PUT("/users/:id", userHandler.UpdateProfile)
			admin.PUT("/users/:id/enabled", userHandler.SetEnabled)

			admin.GET("/stats", systemHandler.Stats)
			admin.GET("/audit-logs", systemHandler.AuditLogs)

			admin.GET("/messages", contactHandler.List)
			admin.GET("/messages/unread-count", contactHandler.UnreadCount)
			admin.GET("/messages/:id", contactHandler.Get)
			admin.PUT("/messages/:id/read", contactHandler.MarkRead)
			admin.DELETE("/messages/:id", contactHandler.Delete)

			super := admin.Group("")
			super.Use(middleware.RequireAuthority(models.LevelSuperAdmin))
			{
				super.POST("/users", userHandler.Create)
				super.PUT("/users/:id/role", userHandler.ChangeRole)
				super.PUT("/users/:id/password", userHandler.ChangePassword)
				super.DELETE("/users/:id", userHandler.Delete)
				super.GET("/users/stats", userHandler.Stats)
				super.GET("/system/status", systemHandler.Status)
			}
		}
	}

	return r
}
