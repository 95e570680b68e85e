package app

import (
	"roleplay_coach_backend/docs"
	"roleplay_coach_backend/internal/config"
	"roleplay_coach_backend/internal/middleware"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerTraineeRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, repos)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/leaderboard", c.stats.Leaderboard)
		public.GET("/tts/voices", c.tts.Voices)

		// Scenario browsing is open so the landing page can show the catalog.
		public.GET("/scenarios", middleware.TryAuthMiddleware(a.Config), c.scenario.List)
		public.GET("/scenarios/:id", middleware.TryAuthMiddleware(a.Config), c.scenario.Get)
	}
}

func (a *App) registerTraineeRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.PUT("/user/password", c.user.ChangePassword)
	rg.GET("/user/stats", c.user.GetStats)
	rg.GET("/user/progress", c.stats.Progress)
	rg.GET("/user/activity", c.user.GetRecentActivity)

	// AI role-play turns
	rg.POST("/conversation", c.conversation.Respond)
	rg.POST("/conversation/enhanced", c.conversation.RespondEnhanced)
	rg.POST("/evaluation", c.evaluation.Evaluate)
	rg.POST("/extract", c.extraction.Extract)
	rg.POST("/tts", c.tts.Synthesize)

	// Training sessions
	rg.POST("/sessions", c.session.Start)
	rg.GET("/sessions", c.session.History)
	rg.GET("/sessions/:id", c.session.GetSummary)
	rg.POST("/sessions/:id/messages", c.session.AddMessage)
	rg.GET("/sessions/:id/messages", c.session.GetMessages)
	rg.POST("/sessions/:id/metrics", c.conversation.RecordMetric)
	rg.POST("/sessions/:id/complete", c.session.Complete)
	rg.POST("/sessions/:id/abandon", c.session.Abandon)

	// Knowledge base (read side)
	rg.GET("/knowledge", c.knowledge.List)
	rg.GET("/knowledge/search", c.knowledge.Search)
	rg.GET("/knowledge/:id", c.knowledge.Get)

	// Gamification
	rg.GET("/achievements", c.achievement.List)
	rg.GET("/challenges", c.challenge.List)
	rg.POST("/challenges/:id/join", c.challenge.Join)
	rg.POST("/challenges/:id/leave", c.challenge.Leave)
	rg.POST("/challenges/:id/score", c.challenge.SubmitScore)
	rg.GET("/teams", c.team.List)
	rg.POST("/teams", c.team.Create)
	rg.GET("/teams/:id/members", c.team.Members)
	rg.POST("/teams/:id/join", c.team.Join)
	rg.POST("/teams/:id/leave", c.team.Leave)
	rg.DELETE("/teams/:id", c.team.Delete)

	// Uploads
	rg.POST("/uploads/recording", c.upload.UploadRecording)
	rg.GET("/uploads", c.upload.ListFiles)
	rg.DELETE("/uploads/:id", c.upload.DeleteFile)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	admin := router.Group("/api/admin")
	admin.Use(
		middleware.AuthMiddleware(a.Config),
		middleware.ActivityMiddleware(repos.user),
		middleware.RoleMiddleware(model.RoleAdmin),
	)
	{
		admin.POST("/scenarios", c.scenario.Create)
		admin.PUT("/scenarios/:id", c.scenario.Update)
		admin.DELETE("/scenarios/:id", c.scenario.Delete)

		admin.GET("/behaviors", c.behavior.List)
		admin.POST("/behaviors", c.behavior.Create)
		admin.PUT("/behaviors/:id", c.behavior.Update)
		admin.DELETE("/behaviors/:id", c.behavior.Delete)

		admin.POST("/knowledge", c.knowledge.Create)
		admin.PUT("/knowledge/:id", c.knowledge.Update)
		admin.DELETE("/knowledge/:id", c.knowledge.Delete)

		admin.POST("/challenges", c.challenge.Create)
	}
}
