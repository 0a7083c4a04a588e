package app

import (
	"career_coach_backend/docs"
	"career_coach_backend/internal/config"
	"career_coach_backend/internal/middleware"
	"career_coach_backend/internal/util"
	"career_coach_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.NoRoute(util.NotFound)

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		user := authGroup.Group("/user")
		{
			user.GET("/onboarding-status", c.user.OnboardingStatus)
			user.POST("/update", c.user.UpdateProfile)
		}

		a.registerInterviewRoutes(authGroup, c)
		a.registerCareerRoutes(authGroup, c)
	}
}

func (a *App) registerInterviewRoutes(group *gin.RouterGroup, c *controllers) {
	interview := group.Group("/interview")
	{
		interview.POST("/generate-quiz", c.interview.GenerateQuiz)
		interview.POST("/save-result", c.interview.SaveResult)
		interview.GET("/quiz-history", c.interview.QuizHistory)

		interview.GET("/todos", c.interview.ListTodos)
		interview.PATCH("/todos/:id/complete", c.interview.ToggleTodo)
		interview.DELETE("/todos/:id", c.interview.DeleteTodo)

		interview.GET("/assessments", c.interview.ListAssessments)
		interview.GET("/assessments/:id", c.interview.GetAssessment)
		interview.DELETE("/assessments/:id", c.interview.DeleteAssessment)
	}
}

func (a *App) registerCareerRoutes(group *gin.RouterGroup, c *controllers) {
	dashboard := group.Group("/dashboard")
	{
		dashboard.GET("/insights", c.dashboard.GetInsights)
		dashboard.POST("/insights/refresh", c.dashboard.RefreshInsights)
		dashboard.GET("/stats", c.dashboard.GetStats)
	}

	resume := group.Group("/resume")
	{
		resume.GET("", c.resume.GetResume)
		resume.POST("", c.resume.SaveResume)
		resume.PUT("", c.resume.UpdateResume)
		resume.DELETE("", c.resume.DeleteResume)
		resume.POST("/improve", c.resume.ImproveResume)
		resume.POST("/analyze", c.resume.AnalyzeResume)
		resume.POST("/export", c.resume.ExportResume)
	}

	letters := group.Group("/cover-letters")
	{
		letters.POST("/generate", c.coverLetter.Generate)
		letters.POST("", c.coverLetter.Create)
		letters.GET("", c.coverLetter.List)
		letters.GET("/:id", c.coverLetter.Get)
		letters.PUT("/:id", c.coverLetter.Update)
		letters.PATCH("/:id/status", c.coverLetter.UpdateStatus)
		letters.DELETE("/:id", c.coverLetter.Delete)
	}
}
