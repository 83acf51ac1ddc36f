package main

import (
	"github.com/arturkh/blogstack/internal/config"
	"github.com/arturkh/blogstack/internal/middleware"
	"github.com/arturkh/blogstack/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.Use(middleware.CORS())

	r.GET("/health", svc.healthHandler.Check)

	generalLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	authLimiter := middleware.NewRateLimiter(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)

	api := r.Group("/api", generalLimiter.Middleware())
	{
		// Credential-bearing routes get the strict limiter on top.
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/refresh", svc.authHandler.Refresh)
			auth.POST("/logout", svc.authHandler.Logout)
		}

		profile := api.Group("/auth", middleware.AuthRequired(svc.tokenManager))
		{
			profile.GET("/profile", svc.authHandler.Profile)
			profile.PUT("/profile", svc.authHandler.UpdateProfile)
		}

		// Public reads; OptionalAuth widens visibility for signed-in users.
		public := api.Group("", middleware.OptionalAuth(svc.tokenManager))
		{
			public.GET("/posts", svc.postHandler.List)
			public.GET("/posts/:slug", svc.postHandler.GetBySlug)
			public.GET("/posts/:slug/comments", svc.commentHandler.ListByPost)
			public.GET("/categories", svc.categoryHandler.List)
			public.GET("/categories/:slug", svc.categoryHandler.GetBySlug)
		}

		// Writes require a verified access token.
		protected := api.Group("", middleware.AuthRequired(svc.tokenManager))
		{
			protected.POST("/posts", svc.postHandler.Create)
			protected.PUT("/posts/:slug", svc.postHandler.Update)
			protected.DELETE("/posts/:slug", svc.postHandler.Delete)
			protected.POST("/posts/:slug/comments", svc.commentHandler.Create)
			protected.DELETE("/comments/:id", svc.commentHandler.Delete)
		}

		// Moderation and taxonomy management are admin only.
		admin := api.Group("", middleware.AuthRequired(svc.tokenManager), middleware.AdminRequired())
		{
			admin.POST("/categories", svc.categoryHandler.Create)
			admin.PUT("/categories/:id", svc.categoryHandler.Update)
			admin.DELETE("/categories/:id", svc.categoryHandler.Delete)
			admin.POST("/comments/:id/approve", svc.commentHandler.Approve)
		}
	}
}
