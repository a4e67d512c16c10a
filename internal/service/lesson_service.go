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

type LessonService interface {
	CreateLesson(ctx context.Context, actor access.Actor, courseID uint, req dto.LessonCreateRequest) (*dto.LessonResponse, error)
	// ListLessons returns the course's lessons by ascending order, ties broken by id.
	ListLessons(ctx context.Context, actor access.Actor, courseID uint) ([]dto.LessonResponse, error)
	GetLesson(ctx context.Context, actor access.Actor, courseID, lessonID uint) (*dto.LessonResponse, error)
	UpdateLesson(ctx context.Context, actor access.Actor, courseID, lessonID uint, req dto.LessonUpdateRequest) (*dto.LessonResponse, error)
	DeleteLesson(ctx context.Context, actor access.Actor, courseID, lessonID uint) error
}

type lessonService struct {
	db     *gorm.DB
	repos  *repository.Set
	policy access.Policy
}

func NewLessonService(db *gorm.DB, repos *repository.Set, policy access.Policy) LessonService {
	return &lessonService{db: db, repos: repos, policy: policy}
}

func (s *lessonService) requireCourse(ctx context.Context, courseID uint) error {
	if _, err := s.repos.Courses.FindByID(ctx, courseID); err != nil {
		return apperror.FromDB(err, "course", courseID)
	}
	return nil
}

func (s *lessonService) CreateLesson(ctx context.Context, actor access.Actor, courseID uint, req dto.LessonCreateRequest) (*dto.LessonResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceLesson, access.OpWrite); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}

	lesson := model.Lesson{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		VideoRef:    req.VideoRef,
		Order:       req.Order,
	}
	if err := s.repos.Lessons.Create(ctx, &lesson); err != nil {
		log.Error().Err(err).Uint("courseID", courseID).Msg("Failed to create lesson")
		return nil, apperror.Storage(err, "creating lesson in course %d", courseID)
	}
	log.Info().Uint("courseID", courseID).Uint("lessonID", lesson.ID).Msg("Lesson created")

	resp := toLessonResponse(&lesson)
	return &resp, nil
}

func (s *lessonService) ListLessons(ctx context.Context, actor access.Actor, courseID uint) ([]dto.LessonResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceLesson, access.OpRead); err != nil {
		return nil, err
	}
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}
	lessons, err := s.repos.Lessons.FindByCourseID(ctx, courseID)
	if err != nil {
		return nil, apperror.Storage(err, "listing lessons of course %d", courseID)
	}
	resp := make([]dto.LessonResponse, 0, len(lessons))
	for i := range lessons {
		resp = append(resp, toLessonResponse(&lessons[i]))
	}
	return resp, nil
}

func (s *lessonService) GetLesson(ctx context.Context, actor access.Actor, courseID, lessonID uint) (*dto.LessonResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceLesson, access.OpRead); err != nil {
		return nil, err
	}
	lesson, err := s.repos.Lessons.FindInCourse(ctx, courseID, lessonID)
	if err != nil {
		return nil, apperror.FromDB(err, "lesson", lessonID)
	}
	resp := toLessonResponse(lesson)
	return &resp, nil
}

func (s *lessonService) UpdateLesson(ctx context.Context, actor access.Actor, courseID, lessonID uint, req dto.LessonUpdateRequest) (*dto.LessonResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceLesson, access.OpWrite); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	lesson, err := s.repos.Lessons.FindInCourse(ctx, courseID, lessonID)
	if err != nil {
		return nil, apperror.FromDB(err, "lesson", lessonID)
	}
	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.VideoRef != nil {
		lesson.VideoRef = req.VideoRef
	}
	if req.Order != nil {
		lesson.Order = *req.Order
	}
	if err := s.repos.Lessons.Update(ctx, lesson); err != nil {
		log.Error().Err(err).Uint("lessonID", lessonID).Msg("Failed to update lesson")
		return nil, apperror.Storage(err, "updating lesson %d", lessonID)
	}

	resp := toLessonResponse(lesson)
	return &resp, nil
}

func (s *lessonService) DeleteLesson(ctx context.Context, actor access.Actor, courseID, lessonID uint) error {
	if err := access.Authorize(s.policy, actor, access.ResourceLesson, access.OpWrite); err != nil {
		return err
	}
	if _, err := s.repos.Lessons.FindInCourse(ctx, courseID, lessonID); err != nil {
		return apperror.FromDB(err, "lesson", lessonID)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteLessons(ctx, s.repos.WithTx(tx), []uint{lessonID})
	})
	if err != nil {
		log.Error().Err(err).Uint("lessonID", lessonID).Msg("Failed to delete lesson")
		return apperror.Storage(err, "deleting lesson %d", lessonID)
	}
	log.Info().Uint("courseID", courseID).Uint("lessonID", lessonID).Msg("Lesson deleted")
	return nil
}
