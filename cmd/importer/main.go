// Command importer loads YAML course outlines into the Lectern database.
package main

import (
	"context"
	"os"
	"time"

	"github.com/lshigami/Lectern/config"
	"github.com/lshigami/Lectern/internal/access"
	"github.com/lshigami/Lectern/internal/catalog"
	"github.com/lshigami/Lectern/internal/database"
	"github.com/lshigami/Lectern/internal/logger"
	"github.com/lshigami/Lectern/internal/repository"
	"github.com/lshigami/Lectern/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

func main() {
	logger.Init()

	pflag.String("path", "courses", "YAML file or directory of course outlines")
	pflag.Uint("author", 1, "user id recorded as the author of imported courses")
	pflag.Parse()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		log.Fatal().Err(err).Msg("Failed to bind flags")
	}

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			access.NewPolicy,
			repository.NewSet,
			service.NewCourseService,
			service.NewLessonService,
			service.NewSectionService,
			service.NewTestService,
			catalog.NewImporter,
		),
		fx.Invoke(logger.Configure),
		fx.Invoke(database.Migrate),
		fx.Invoke(runImport),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}
	if err := app.Stop(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to stop importer cleanly")
	}
}

func runImport(lc fx.Lifecycle, im *catalog.Importer) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			courses, err := load(viper.GetString("path"))
			if err != nil {
				return err
			}
			actor := access.Actor{ID: viper.GetUint("author"), Role: access.RoleAdmin}
			sum, err := im.ImportAll(ctx, actor, courses)
			log.Info().
				Int("courses", sum.Courses).
				Int("lessons", sum.Lessons).
				Int("sections", sum.Sections).
				Int("tests", sum.Tests).
				Msg("Import finished")
			return err
		},
	})
}

func load(path string) ([]*catalog.Course, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return catalog.LoadDir(path)
	}
	course, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return []*catalog.Course{course}, nil
}
