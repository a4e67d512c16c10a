package service

import (
	"context"

	"github.com/lshigami/Lectern/internal/access"
	"github.com/lshigami/Lectern/internal/apperror"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/lshigami/Lectern/internal/model"
	"github.com/lshigami/Lectern/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CourseService interface {
	CreateCourse(ctx context.Context, actor access.Actor, req dto.CourseCreateRequest) (*dto.CourseResponse, error)
	ListCourses(ctx context.Context, actor access.Actor) ([]dto.CourseResponse, error)
	GetCourse(ctx context.Context, actor access.Actor, id uint) (*dto.CourseResponse, error)
	UpdateCourse(ctx context.Context, actor access.Actor, id uint, req dto.CourseUpdateRequest) (*dto.CourseResponse, error)
	// DeleteCourse removes the course with its lessons, sections, tests and results.
	DeleteCourse(ctx context.Context, actor access.Actor, id uint) error
}

type courseService struct {
	db     *gorm.DB
	repos  *repository.Set
	policy access.Policy
}

func NewCourseService(db *gorm.DB, repos *repository.Set, policy access.Policy) CourseService {
	return &courseService{db: db, repos: repos, policy: policy}
}

func (s *courseService) CreateCourse(ctx context.Context, actor access.Actor, req dto.CourseCreateRequest) (*dto.CourseResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceCourse, access.OpWrite); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	course := model.Course{Title: req.Title, Description: req.Description, AuthorID: actor.ID}
	if err := s.repos.Courses.Create(ctx, &course); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create course")
		return nil, apperror.Storage(err, "creating course")
	}
	log.Info().Uint("courseID", course.ID).Uint("authorID", actor.ID).Msg("Course created")

	resp := toCourseResponse(&course)
	return &resp, nil
}

func (s *courseService) ListCourses(ctx context.Context, actor access.Actor) ([]dto.CourseResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceCourse, access.OpRead); err != nil {
		return nil, err
	}
	courses, err := s.repos.Courses.FindAll(ctx)
	if err != nil {
		return nil, apperror.Storage(err, "listing courses")
	}
	resp := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		resp = append(resp, toCourseResponse(&courses[i]))
	}
	return resp, nil
}

func (s *courseService) GetCourse(ctx context.Context, actor access.Actor, id uint) (*dto.CourseResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceCourse, access.OpRead); err != nil {
		return nil, err
	}
	course, err := s.repos.Courses.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, "course", id)
	}
	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, actor access.Actor, id uint, req dto.CourseUpdateRequest) (*dto.CourseResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceCourse, access.OpWrite); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	course, err := s.repos.Courses.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, "course", id)
	}
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if err := s.repos.Courses.Update(ctx, course); err != nil {
		log.Error().Err(err).Uint("courseID", id).Msg("Failed to update course")
		return nil, apperror.Storage(err, "updating course %d", id)
	}

	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, actor access.Actor, id uint) error {
	if err := access.Authorize(s.policy, actor, access.ResourceCourse, access.OpWrite); err != nil {
		return err
	}
	if _, err := s.repos.Courses.FindByID(ctx, id); err != nil {
		return apperror.FromDB(err, "course", id)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteCourse(ctx, s.repos.WithTx(tx), id)
	})
	if err != nil {
		log.Error().Err(err).Uint("courseID", id).Msg("Failed to delete course")
		return apperror.Storage(err, "deleting course %d", id)
	}
	log.Info().Uint("courseID", id).Msg("Course deleted")
	return nil
}
