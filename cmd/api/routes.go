package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/arlearn/assessment-api/internal/config"
	"github.com/arlearn/assessment-api/internal/handler"
	"github.com/arlearn/assessment-api/internal/middleware"
)

type routerDeps struct {
	auth        *handler.AuthHandler
	catalog     *handler.CatalogHandler
	assessments *handler.AssessmentHandler
	admin       *handler.AdminHandler
	authMW      *middleware.AuthMiddleware
	limiter     *middleware.RateLimiter
}

func newRouter(cfg *config.Config, d routerDeps) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var authLimit, submitLimit gin.HandlerFunc = passThrough, passThrough
	if cfg.RateLimit.Enabled && d.limiter != nil {
		authLimit = d.limiter.Limit(middleware.AuthRateLimitConfig(cfg.RateLimit.Auth, cfg.RateLimit.Window))
		submitLimit = d.limiter.LimitByUser(middleware.SubmitRateLimitConfig(cfg.RateLimit.Submit, cfg.RateLimit.Window))
	}

	requireAuth := d.authMW.RequireAuth()
	adminOnly := d.authMW.AdminOnly()

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authLimit, d.auth.Register)
			authGroup.POST("/login", authLimit, d.auth.Login)
			authGroup.GET("/me", requireAuth, d.auth.Me)
		}

		admin := api.Group("")
		admin.Use(requireAuth, adminOnly)
		{
			admin.POST("/subjects", d.catalog.CreateSubject)
			admin.POST("/models", d.catalog.CreateModel)
			admin.POST("/questions", d.catalog.CreateQuestion)
			admin.POST("/admin/initialize-data", d.admin.InitializeData)
		}

		authed := api.Group("")
		authed.Use(requireAuth)
		{
			authed.GET("/subjects", d.catalog.ListSubjects)
			authed.GET("/subjects/:id", middleware.ExtractUUIDParam("id", "subjectID"), d.catalog.GetSubject)
			authed.GET("/models", d.catalog.ListModels)
			authed.GET("/models/:id", middleware.ExtractUUIDParam("id", "modelID"), d.catalog.GetModel)
			authed.GET("/questions/:model_id", middleware.ExtractUUIDParam("model_id", "modelID"), d.catalog.ListQuestions)

			authed.POST("/assessments/submit", submitLimit, d.assessments.Submit)
			authed.GET("/performance", d.assessments.GetPerformance)
			authed.GET("/performance/export", d.assessments.ExportHistory)
			authed.GET("/leaderboard", d.assessments.GetLeaderboard)
		}
	}

	return router
}

func passThrough(c *gin.Context) { c.Next() }
