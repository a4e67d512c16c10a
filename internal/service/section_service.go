package service

import (
	"context"

	"github.com/lshigami/Lectern/internal/access"
	"github.com/lshigami/Lectern/internal/apperror"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/lshigami/Lectern/internal/model"
	"github.com/lshigami/Lectern/internal/repository"
	"github.com/rs/zerolog/log"
)

type SectionService interface {
	CreateSection(ctx context.Context, actor access.Actor, courseID, lessonID uint, req dto.SectionCreateRequest) (*dto.SectionResponse, error)
	ListSections(ctx context.Context, actor access.Actor, courseID, lessonID uint) ([]dto.SectionResponse, error)
	GetSection(ctx context.Context, actor access.Actor, courseID, lessonID, sectionID uint) (*dto.SectionResponse, error)
	UpdateSection(ctx context.Context, actor access.Actor, courseID, lessonID, sectionID uint, req dto.SectionUpdateRequest) (*dto.SectionResponse, error)
	DeleteSection(ctx context.Context, actor access.Actor, courseID, lessonID, sectionID uint) error
}

type sectionService struct {
	repos  *repository.Set
	policy access.Policy
}

func NewSectionService(repos *repository.Set, policy access.Policy) SectionService {
	return &sectionService{repos: repos, policy: policy}
}

// requireLesson resolves the course/lesson route prefix.
func (s *sectionService) requireLesson(ctx context.Context, courseID, lessonID uint) error {
	if _, err := s.repos.Lessons.FindInCourse(ctx, courseID, lessonID); err != nil {
		return apperror.FromDB(err, "lesson", lessonID)
	}
	return nil
}

func (s *sectionService) findSection(ctx context.Context, courseID, lessonID, sectionID uint) (*model.Section, error) {
	if err := s.requireLesson(ctx, courseID, lessonID); err != nil {
		return nil, err
	}
	section, err := s.repos.Sections.FindInLesson(ctx, lessonID, sectionID)
	if err != nil {
		return nil, apperror.FromDB(err, "section", sectionID)
	}
	return section, nil
}

func (s *sectionService) CreateSection(ctx context.Context, actor access.Actor, courseID, lessonID uint, req dto.SectionCreateRequest) (*dto.SectionResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceSection, access.OpWrite); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := s.requireLesson(ctx, courseID, lessonID); err != nil {
		return nil, err
	}

	section := model.Section{
		LessonID: lessonID,
		Title:    req.Title,
		Content:  req.Content,
		VideoRef: req.VideoRef,
		Order:    req.Order,
	}
	if err := s.repos.Sections.Create(ctx, &section); err != nil {
		log.Error().Err(err).Uint("lessonID", lessonID).Msg("Failed to create section")
		return nil, apperror.Storage(err, "creating section in lesson %d", lessonID)
	}

	resp := toSectionResponse(&section)
	return &resp, nil
}

func (s *sectionService) ListSections(ctx context.Context, actor access.Actor, courseID, lessonID uint) ([]dto.SectionResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceSection, access.OpRead); err != nil {
		return nil, err
	}
	if err := s.requireLesson(ctx, courseID, lessonID); err != nil {
		return nil, err
	}
	sections, err := s.repos.Sections.FindByLessonID(ctx, lessonID)
	if err != nil {
		return nil, apperror.Storage(err, "listing sections of lesson %d", lessonID)
	}
	resp := make([]dto.SectionResponse, 0, len(sections))
	for i := range sections {
		resp = append(resp, toSectionResponse(&sections[i]))
	}
	return resp, nil
}

func (s *sectionService) GetSection(ctx context.Context, actor access.Actor, courseID, lessonID, sectionID uint) (*dto.SectionResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceSection, access.OpRead); err != nil {
		return nil, err
	}
	section, err := s.findSection(ctx, courseID, lessonID, sectionID)
	if err != nil {
		return nil, err
	}
	resp := toSectionResponse(section)
	return &resp, nil
}

func (s *sectionService) UpdateSection(ctx context.Context, actor access.Actor, courseID, lessonID, sectionID uint, req dto.SectionUpdateRequest) (*dto.SectionResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceSection, access.OpWrite); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	section, err := s.findSection(ctx, courseID, lessonID, sectionID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		section.Title = *req.Title
	}
	if req.Content != nil {
		section.Content = *req.Content
	}
	if req.VideoRef != nil {
		section.VideoRef = req.VideoRef
	}
	if req.Order != nil {
		section.Order = *req.Order
	}
	if err := s.repos.Sections.Update(ctx, section); err != nil {
		log.Error().Err(err).Uint("sectionID", sectionID).Msg("Failed to update section")
		return nil, apperror.Storage(err, "updating section %d", sectionID)
	}

	resp := toSectionResponse(section)
	return &resp, nil
}

func (s *sectionService) DeleteSection(ctx context.Context, actor access.Actor, courseID, lessonID, sectionID uint) error {
	if err := access.Authorize(s.policy, actor, access.ResourceSection, access.OpWrite); err != nil {
		return err
	}
	if _, err := s.findSection(ctx, courseID, lessonID, sectionID); err != nil {
		return err
	}
	if err := s.repos.Sections.Delete(ctx, sectionID); err != nil {
		log.Error().Err(err).Uint("sectionID", sectionID).Msg("Failed to delete section")
		return apperror.Storage(err, "deleting section %d", sectionID)
	}
	return nil
}
