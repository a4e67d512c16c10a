package controller

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lectern/config"
	"github.com/lshigami/Lectern/internal/controller/api"
	"github.com/lshigami/Lectern/internal/controller/assessment"
	"github.com/lshigami/Lectern/internal/controller/content"
	"github.com/lshigami/Lectern/internal/dto"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// NewGinEngine builds the engine with request ids, zerolog access logs, CORS,
// bearer-token identity and the swagger UI.
func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	r := gin.New()
	r.Use(api.RequestLogger())
	r.Use(gin.LoggerWithFormatter(api.AccessLog))
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", api.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", api.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", Health)
	return r
}

// Health godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /healthz [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// Handlers groups every controller the API routes to.
type Handlers struct {
	fx.In

	Courses   *content.CourseController
	Lessons   *content.LessonController
	Sections  *content.SectionController
	Tests     *assessment.TestController
	Questions *assessment.QuestionController
	Results   *assessment.ResultController
}

// RegisterRoutes mounts the API under /api/v1. Reads are open; handlers pass the
// resolved actor to the services, which decide on writes.
func RegisterRoutes(router *gin.Engine, cfg *config.Config, h Handlers) {
	v1 := router.Group("/api/v1", api.Authenticate(cfg.Auth.JWTSecret))

	courses := v1.Group("/courses")
	{
		courses.GET("", h.Courses.ListCourses)
		courses.POST("", h.Courses.CreateCourse)
		courses.GET("/:course_id", h.Courses.GetCourse)
		courses.PUT("/:course_id", h.Courses.UpdateCourse)
		courses.DELETE("/:course_id", h.Courses.DeleteCourse)

		courses.GET("/:course_id/lessons", h.Lessons.ListLessons)
		courses.POST("/:course_id/lessons", h.Lessons.CreateLesson)
		courses.GET("/:course_id/lessons/:lesson_id", h.Lessons.GetLesson)
		courses.PUT("/:course_id/lessons/:lesson_id", h.Lessons.UpdateLesson)
		courses.DELETE("/:course_id/lessons/:lesson_id", h.Lessons.DeleteLesson)

		sections := courses.Group("/:course_id/lessons/:lesson_id/sections")
		sections.GET("", h.Sections.ListSections)
		sections.POST("", h.Sections.CreateSection)
		sections.GET("/:section_id", h.Sections.GetSection)
		sections.PUT("/:section_id", h.Sections.UpdateSection)
		sections.DELETE("/:section_id", h.Sections.DeleteSection)

		lessonTests := courses.Group("/:course_id/lessons/:lesson_id/tests")
		lessonTests.GET("", h.Tests.ListLessonTests)
		lessonTests.POST("", h.Tests.CreateLessonTest)
		lessonTests.GET("/:test_id", h.Tests.GetLessonTest)
		lessonTests.PUT("/:test_id", h.Tests.UpdateLessonTest)
		lessonTests.DELETE("/:test_id", h.Tests.DeleteLessonTest)

		finalTests := courses.Group("/:course_id/final-tests")
		finalTests.GET("", h.Tests.ListFinalTests)
		finalTests.POST("", h.Tests.CreateFinalTest)
		finalTests.GET("/:test_id", h.Tests.GetFinalTest)
		finalTests.PUT("/:test_id", h.Tests.UpdateFinalTest)
		finalTests.DELETE("/:test_id", h.Tests.DeleteFinalTest)
	}

	tests := v1.Group("/tests/:test_id")
	{
		tests.GET("", h.Tests.GetTest)
		tests.GET("/questions", h.Questions.ListQuestions)
		tests.POST("/questions", h.Questions.AddQuestion)
		tests.GET("/questions/:question_id/answers", h.Questions.ListAnswers)
		tests.POST("/questions/:question_id/answers", h.Questions.AddAnswer)
		tests.POST("/submit", h.Results.SubmitResult)
		tests.GET("/results", h.Results.ListResults)
		tests.GET("/results/export", h.Results.ExportResults)
	}
}
