package repository

import (
	"context"

	"github.com/lshigami/Lectern/internal/model"
	"gorm.io/gorm"
)

type LessonRepository interface {
	WithTx(tx *gorm.DB) LessonRepository
	Create(ctx context.Context, lesson *model.Lesson) error
	FindByID(ctx context.Context, id uint) (*model.Lesson, error)
	// FindInCourse loads a lesson with its ordered sections, only if it belongs to courseID.
	FindInCourse(ctx context.Context, courseID, lessonID uint) (*model.Lesson, error)
	FindByCourseID(ctx context.Context, courseID uint) ([]model.Lesson, error)
	IDsByCourseID(ctx context.Context, courseID uint) ([]uint, error)
	Update(ctx context.Context, lesson *model.Lesson) error
	DeleteByIDs(ctx context.Context, ids []uint) error
}

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) WithTx(tx *gorm.DB) LessonRepository {
	return &lessonRepository{db: tx}
}

func orderedSections(db *gorm.DB) *gorm.DB {
	return db.Order("sections.sort_order ASC").Order("sections.id ASC")
}

func (r *lessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Omit("Sections", "Tests").Create(lesson).Error
}

func (r *lessonRepository) FindByID(ctx context.Context, id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := r.db.WithContext(ctx).First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) FindInCourse(ctx context.Context, courseID, lessonID uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db.WithContext(ctx).
		Preload("Sections", orderedSections).
		Where("course_id = ?", courseID).
		First(&lesson, lessonID).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) FindByCourseID(ctx context.Context, courseID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.db.WithContext(ctx).
		Preload("Sections", orderedSections).
		Where("course_id = ?", courseID).
		Order("sort_order ASC").Order("id ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepository) IDsByCourseID(ctx context.Context, courseID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Lesson{}).Where("course_id = ?", courseID).Pluck("id", &ids).Error
	return ids, err
}

func (r *lessonRepository) Update(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Omit("Sections", "Tests", "CourseID").Save(lesson).Error
}

func (r *lessonRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Lesson{}).Error
}
