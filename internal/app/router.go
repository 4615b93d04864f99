package app

import (
	"academy_backend/docs"
	"academy_backend/internal/config"
	"academy_backend/internal/middleware"
	"academy_backend/internal/model"

	"academy_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerAuthoringRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Check)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	// Curriculum
	rg.GET("/curriculum", c.curriculum.Outline)
	rg.GET("/lessons/:id", c.curriculum.LessonDetail)
	rg.POST("/lessons/:id/complete", c.curriculum.CompleteLesson)

	// Assessments
	rg.GET("/assessments/:id/questions", c.assessment.Questions)
	rg.POST("/assessments/:id/submit", c.assessment.Submit)
	rg.GET("/assessments/:id/eligibility", c.assessment.RetryEligibility)

	// Access checks
	rg.GET("/access/lessons/:id", c.progression.CheckLesson)
	rg.GET("/access/modules/:id", c.progression.CheckModule)
	rg.GET("/access/terms/:id", c.progression.CheckTerm)
	rg.GET("/access/years/:id", c.progression.CheckYear)

	// Weak-concept ledger
	rg.GET("/weak-areas", c.weakArea.List)
	rg.GET("/weak-areas/reviews", c.weakArea.RequiredReviews)

	// Transcript
	rg.GET("/transcript", c.transcript.Transcript)
	rg.GET("/transcript/years/:id/gpa", c.transcript.YearGPA)
}

func (a *App) registerAuthoringRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Teacher))
	{
		admin.POST("/years", c.curriculum.CreateYear)
		admin.POST("/terms", c.curriculum.CreateTerm)
		admin.POST("/modules", c.curriculum.CreateModule)
		admin.POST("/lessons", c.curriculum.CreateLesson)
		admin.POST("/lessons/:id/video", c.curriculum.UploadLessonVideo)
		admin.POST("/assessments", c.curriculum.CreateAssessment)
		admin.POST("/assessments/:id/questions", c.curriculum.AddQuestion)
	}
}
