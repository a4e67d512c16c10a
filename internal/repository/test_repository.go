package repository

import (
	"context"

	"github.com/lshigami/Lectern/internal/model"
	"gorm.io/gorm"
)

// TestFilter narrows test lookups to the route a caller resolved.
// A nil LessonID and CourseID means no restriction.
type TestFilter struct {
	LessonID *uint
	CourseID *uint
}

type TestRepository interface {
	WithTx(tx *gorm.DB) TestRepository
	Create(ctx context.Context, test *model.Test) error
	FindByID(ctx context.Context, id uint) (*model.Test, error)
	FindByIDWithQuestions(ctx context.Context, id uint, filter TestFilter) (*model.Test, error)
	FindByLessonID(ctx context.Context, lessonID uint) ([]model.Test, error)
	FindFinalByCourseID(ctx context.Context, courseID uint) ([]model.Test, error)
	IDsByOwners(ctx context.Context, courseID uint, lessonIDs []uint) ([]uint, error)
	IDsByLessonIDs(ctx context.Context, lessonIDs []uint) ([]uint, error)
	UpdateMetadata(ctx context.Context, test *model.Test) error
	DeleteByIDs(ctx context.Context, ids []uint) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) WithTx(tx *gorm.DB) TestRepository {
	return &testRepository{db: tx}
}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("questions.position ASC").Order("questions.id ASC")
}

func orderedAnswers(db *gorm.DB) *gorm.DB {
	return db.Order("answers.position ASC").Order("answers.id ASC")
}

func withAggregate(db *gorm.DB) *gorm.DB {
	return db.Preload("Questions", orderedQuestions).Preload("Questions.Answers", orderedAnswers)
}

// Create inserts the test and, through gorm's association saving, its questions and answers.
func (r *testRepository) Create(ctx context.Context, test *model.Test) error {
	return r.db.WithContext(ctx).Create(test).Error
}

func (r *testRepository) FindByID(ctx context.Context, id uint) (*model.Test, error) {
	var test model.Test
	if err := r.db.WithContext(ctx).First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDWithQuestions(ctx context.Context, id uint, filter TestFilter) (*model.Test, error) {
	var test model.Test
	query := withAggregate(r.db.WithContext(ctx))
	switch {
	case filter.LessonID != nil && filter.CourseID != nil:
		query = query.
			Joins("JOIN lessons ON lessons.id = tests.lesson_id").
			Where("tests.lesson_id = ? AND lessons.course_id = ?", *filter.LessonID, *filter.CourseID)
	case filter.LessonID != nil:
		query = query.Where("tests.lesson_id = ?", *filter.LessonID)
	case filter.CourseID != nil:
		query = query.Where("tests.course_id = ? AND tests.lesson_id IS NULL", *filter.CourseID)
	}
	if err := query.First(&test, "tests.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByLessonID(ctx context.Context, lessonID uint) ([]model.Test, error) {
	var tests []model.Test
	err := withAggregate(r.db.WithContext(ctx)).
		Where("lesson_id = ?", lessonID).
		Order("id ASC").
		Find(&tests).Error
	return tests, err
}

// FindFinalByCourseID returns course-level tests only; lesson tests never match.
func (r *testRepository) FindFinalByCourseID(ctx context.Context, courseID uint) ([]model.Test, error) {
	var tests []model.Test
	err := withAggregate(r.db.WithContext(ctx)).
		Where("course_id = ? AND lesson_id IS NULL", courseID).
		Order("id ASC").
		Find(&tests).Error
	return tests, err
}

// IDsByOwners collects the course's final tests plus every test of the given lessons.
func (r *testRepository) IDsByOwners(ctx context.Context, courseID uint, lessonIDs []uint) ([]uint, error) {
	var ids []uint
	query := r.db.WithContext(ctx).Model(&model.Test{}).Where("course_id = ?", courseID)
	if len(lessonIDs) > 0 {
		query = query.Or("lesson_id IN ?", lessonIDs)
	}
	err := query.Pluck("id", &ids).Error
	return ids, err
}

func (r *testRepository) IDsByLessonIDs(ctx context.Context, lessonIDs []uint) ([]uint, error) {
	var ids []uint
	if len(lessonIDs) == 0 {
		return ids, nil
	}
	err := r.db.WithContext(ctx).Model(&model.Test{}).Where("lesson_id IN ?", lessonIDs).Pluck("id", &ids).Error
	return ids, err
}

// UpdateMetadata writes title and description only; ownership never changes.
func (r *testRepository) UpdateMetadata(ctx context.Context, test *model.Test) error {
	return r.db.WithContext(ctx).Model(&model.Test{ID: test.ID}).
		Select("title", "description").
		Updates(map[string]any{"title": test.Title, "description": test.Description}).Error
}

func (r *testRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Test{}).Error
}
