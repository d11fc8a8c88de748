package app

import (
	"first20_backend/docs"
	"first20_backend/internal/config"
	"first20_backend/internal/middleware"
	"first20_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		a.registerSkillRoutes(authGroup, c, repos)
		a.registerPracticeRoutes(authGroup, c)

		authGroup.GET("/dashboard", c.dashboard.GetDashboard)
		authGroup.GET("/badges", c.badge.ListMyBadges)
		authGroup.GET("/badges/catalog", c.badge.ListCatalog)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/signup", c.auth.Register)
		public.POST("/auth/token", c.auth.Login)
	}
}

func (a *App) registerSkillRoutes(group *gin.RouterGroup, c *controllers, repos *repositories) {
	group.POST("/skills", c.skill.CreateSkill)
	group.GET("/skills", c.skill.ListSkills)
	group.GET("/skills/active", c.skill.GetActiveSkill)

	owned := group.Group("/skills/:id")
	owned.Use(middleware.RequireOwnership("id", repos.skill))
	{
		owned.GET("", c.skill.GetSkill)
		owned.POST("/start", c.skill.StartSkill)
		owned.POST("/complete", c.skill.CompleteSkill)
		owned.POST("/shift", c.skill.ShiftSchedule)
		owned.GET("/plans", c.skill.ListPlans)
		owned.GET("/calendar", c.skill.ExportCalendar)
		owned.POST("/calendar/publish", c.skill.PublishCalendar)
		owned.GET("/sessions", c.session.ListSessions)
		owned.POST("/sessions", c.session.LogSession)
	}

	group.POST("/plans/:id/resources", middleware.RequireOwnership("id", repos.plan), c.plan.AddResource)
}

func (a *App) registerPracticeRoutes(group *gin.RouterGroup, c *controllers) {
	group.POST("/sessions", c.session.LogSession)
	group.POST("/reflections", c.session.SaveReflection)
}
