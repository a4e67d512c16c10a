package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lectern/config"
	_ "github.com/lshigami/Lectern/docs" // Swagger docs - generated by swag init
	"github.com/lshigami/Lectern/internal/access"
	"github.com/lshigami/Lectern/internal/controller"
	"github.com/lshigami/Lectern/internal/controller/assessment"
	"github.com/lshigami/Lectern/internal/controller/content"
	"github.com/lshigami/Lectern/internal/database"
	"github.com/lshigami/Lectern/internal/logger"
	"github.com/lshigami/Lectern/internal/repository"
	"github.com/lshigami/Lectern/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// @title Lectern API
// @version 1.0
// @description Courses, lessons, sections, quiz tests and learner results.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description HS256 bearer token: "Bearer <token>"
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			controller.NewGinEngine,
			access.NewPolicy,
		),

		fx.Provide(repository.NewSet),

		fx.Provide(
			service.NewCourseService,
			service.NewLessonService,
			service.NewSectionService,
			service.NewTestService,
			service.NewQuestionService,
			service.NewResultService,
		),

		fx.Provide(
			content.NewCourseController,
			content.NewLessonController,
			content.NewSectionController,
			assessment.NewTestController,
			assessment.NewQuestionController,
			assessment.NewResultController,
		),

		fx.Invoke(logger.Configure),
		fx.Invoke(database.Migrate),
		fx.Invoke(controller.RegisterRoutes),
		fx.Invoke(StartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

// StartServer ties the HTTP server to the fx lifecycle.
func StartServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Config) {
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Lectern API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			return server.Shutdown(ctx)
		},
	})
}
