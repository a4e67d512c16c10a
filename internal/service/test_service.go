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

// TestScope is the owner scope a route resolved for a test lookup.
// The zero scope matches any test.
type TestScope struct {
	CourseID *uint
	LessonID *uint
}

func LessonScope(courseID, lessonID uint) TestScope {
	return TestScope{CourseID: &courseID, LessonID: &lessonID}
}

func FinalTestScope(courseID uint) TestScope {
	return TestScope{CourseID: &courseID}
}

func (s TestScope) filter() repository.TestFilter {
	return repository.TestFilter{LessonID: s.LessonID, CourseID: s.CourseID}
}

type TestService interface {
	// CreateTest persists the test with its whole question/answer tree in one transaction.
	// The owner comes from the caller's route, never from the payload.
	CreateTest(ctx context.Context, actor access.Actor, owner model.Owner, req dto.TestCreateRequest) (*dto.TestResponse, error)
	CreateLessonTest(ctx context.Context, actor access.Actor, courseID, lessonID uint, req dto.TestCreateRequest) (*dto.TestResponse, error)
	CreateFinalTest(ctx context.Context, actor access.Actor, courseID uint, req dto.TestCreateRequest) (*dto.TestResponse, error)
	GetTest(ctx context.Context, actor access.Actor, id uint, scope TestScope) (*dto.TestResponse, error)
	ListLessonTests(ctx context.Context, actor access.Actor, courseID, lessonID uint) ([]dto.TestResponse, error)
	ListFinalTests(ctx context.Context, actor access.Actor, courseID uint) ([]dto.TestResponse, error)
	UpdateTest(ctx context.Context, actor access.Actor, id uint, scope TestScope, req dto.TestUpdateRequest) (*dto.TestResponse, error)
	// DeleteTest removes the test, its questions, answers and recorded results.
	DeleteTest(ctx context.Context, actor access.Actor, id uint, scope TestScope) error
}

type testService struct {
	db     *gorm.DB
	repos  *repository.Set
	policy access.Policy
}

func NewTestService(db *gorm.DB, repos *repository.Set, policy access.Policy) TestService {
	return &testService{db: db, repos: repos, policy: policy}
}

func (s *testService) CreateTest(ctx context.Context, actor access.Actor, owner model.Owner, req dto.TestCreateRequest) (*dto.TestResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceTest, access.OpWrite); err != nil {
		return nil, err
	}
	if !owner.Valid() {
		return nil, apperror.Validation("%s", model.ErrInvalidOwner)
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, owner); err != nil {
		return nil, err
	}

	test := model.Test{Title: req.Title, Description: req.Description}
	test.SetOwner(owner)
	test.Questions = buildQuestions(0, req.Questions, 0)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repos.WithTx(tx).Tests.Create(ctx, &test)
	})
	if err != nil {
		log.Error().Err(err).Stringer("owner", owner).Msg("Failed to create test with questions in transaction")
		return nil, apperror.Storage(err, "creating test for %s", owner)
	}
	log.Info().Uint("testID", test.ID).Stringer("owner", owner).Int("questions", len(test.Questions)).Msg("Test created")

	return s.load(ctx, test.ID, TestScope{})
}

func (s *testService) CreateLessonTest(ctx context.Context, actor access.Actor, courseID, lessonID uint, req dto.TestCreateRequest) (*dto.TestResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceTest, access.OpWrite); err != nil {
		return nil, err
	}
	if _, err := s.repos.Lessons.FindInCourse(ctx, courseID, lessonID); err != nil {
		return nil, apperror.FromDB(err, "lesson", lessonID)
	}
	return s.CreateTest(ctx, actor, model.LessonOwner(lessonID), req)
}

func (s *testService) CreateFinalTest(ctx context.Context, actor access.Actor, courseID uint, req dto.TestCreateRequest) (*dto.TestResponse, error) {
	return s.CreateTest(ctx, actor, model.CourseOwner(courseID), req)
}

func (s *testService) requireOwner(ctx context.Context, owner model.Owner) error {
	switch owner.Kind() {
	case model.OwnerLesson:
		if _, err := s.repos.Lessons.FindByID(ctx, owner.ID()); err != nil {
			return apperror.FromDB(err, "lesson", owner.ID())
		}
	case model.OwnerCourse:
		if _, err := s.repos.Courses.FindByID(ctx, owner.ID()); err != nil {
			return apperror.FromDB(err, "course", owner.ID())
		}
	}
	return nil
}

func (s *testService) load(ctx context.Context, id uint, scope TestScope) (*dto.TestResponse, error) {
	test, err := s.repos.Tests.FindByIDWithQuestions(ctx, id, scope.filter())
	if err != nil {
		return nil, apperror.FromDB(err, "test", id)
	}
	resp := toTestResponse(test)
	return &resp, nil
}

func (s *testService) GetTest(ctx context.Context, actor access.Actor, id uint, scope TestScope) (*dto.TestResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceTest, access.OpRead); err != nil {
		return nil, err
	}
	return s.load(ctx, id, scope)
}

func (s *testService) ListLessonTests(ctx context.Context, actor access.Actor, courseID, lessonID uint) ([]dto.TestResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceTest, access.OpRead); err != nil {
		return nil, err
	}
	if _, err := s.repos.Lessons.FindInCourse(ctx, courseID, lessonID); err != nil {
		return nil, apperror.FromDB(err, "lesson", lessonID)
	}
	tests, err := s.repos.Tests.FindByLessonID(ctx, lessonID)
	if err != nil {
		return nil, apperror.Storage(err, "listing tests of lesson %d", lessonID)
	}
	return toTestResponses(tests), nil
}

func (s *testService) ListFinalTests(ctx context.Context, actor access.Actor, courseID uint) ([]dto.TestResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceTest, access.OpRead); err != nil {
		return nil, err
	}
	if _, err := s.repos.Courses.FindByID(ctx, courseID); err != nil {
		return nil, apperror.FromDB(err, "course", courseID)
	}
	tests, err := s.repos.Tests.FindFinalByCourseID(ctx, courseID)
	if err != nil {
		return nil, apperror.Storage(err, "listing final tests of course %d", courseID)
	}
	return toTestResponses(tests), nil
}

func toTestResponses(tests []model.Test) []dto.TestResponse {
	resp := make([]dto.TestResponse, 0, len(tests))
	for i := range tests {
		resp = append(resp, toTestResponse(&tests[i]))
	}
	return resp
}

func (s *testService) UpdateTest(ctx context.Context, actor access.Actor, id uint, scope TestScope, req dto.TestUpdateRequest) (*dto.TestResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceTest, access.OpWrite); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	test, err := s.repos.Tests.FindByIDWithQuestions(ctx, id, scope.filter())
	if err != nil {
		return nil, apperror.FromDB(err, "test", id)
	}
	if req.Title != nil {
		test.Title = *req.Title
	}
	if req.Description != nil {
		test.Description = *req.Description
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := s.repos.WithTx(tx)
		if err := repos.Tests.UpdateMetadata(ctx, test); err != nil {
			return err
		}
		if req.Questions == nil {
			return nil
		}
		return replaceQuestions(ctx, repos, test.ID, buildQuestions(test.ID, *req.Questions, 0))
	})
	if err != nil {
		log.Error().Err(err).Uint("testID", id).Msg("Failed to update test")
		return nil, apperror.Storage(err, "updating test %d", id)
	}
	log.Info().Uint("testID", id).Bool("questionsReplaced", req.Questions != nil).Msg("Test updated")

	return s.load(ctx, id, TestScope{})
}

func (s *testService) DeleteTest(ctx context.Context, actor access.Actor, id uint, scope TestScope) error {
	if err := access.Authorize(s.policy, actor, access.ResourceTest, access.OpWrite); err != nil {
		return err
	}
	if _, err := s.repos.Tests.FindByIDWithQuestions(ctx, id, scope.filter()); err != nil {
		return apperror.FromDB(err, "test", id)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteTests(ctx, s.repos.WithTx(tx), []uint{id})
	})
	if err != nil {
		log.Error().Err(err).Uint("testID", id).Msg("Failed to delete test")
		return apperror.Storage(err, "deleting test %d", id)
	}
	log.Info().Uint("testID", id).Msg("Test deleted")
	return nil
}
