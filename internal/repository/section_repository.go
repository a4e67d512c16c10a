package repository

import (
	"context"

	"github.com/lshigami/Lectern/internal/model"
	"gorm.io/gorm"
)

type SectionRepository interface {
	WithTx(tx *gorm.DB) SectionRepository
	Create(ctx context.Context, section *model.Section) error
	FindInLesson(ctx context.Context, lessonID, sectionID uint) (*model.Section, error)
	FindByLessonID(ctx context.Context, lessonID uint) ([]model.Section, error)
	Update(ctx context.Context, section *model.Section) error
	Delete(ctx context.Context, id uint) error
	DeleteByLessonIDs(ctx context.Context, lessonIDs []uint) error
}

type sectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) WithTx(tx *gorm.DB) SectionRepository {
	return &sectionRepository{db: tx}
}

func (r *sectionRepository) Create(ctx context.Context, section *model.Section) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *sectionRepository) FindInLesson(ctx context.Context, lessonID, sectionID uint) (*model.Section, error) {
	var section model.Section
	if err := r.db.WithContext(ctx).Where("lesson_id = ?", lessonID).First(&section, sectionID).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepository) FindByLessonID(ctx context.Context, lessonID uint) ([]model.Section, error) {
	var sections []model.Section
	err := r.db.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("sort_order ASC").Order("id ASC").
		Find(&sections).Error
	return sections, err
}

func (r *sectionRepository) Update(ctx context.Context, section *model.Section) error {
	return r.db.WithContext(ctx).Omit("LessonID").Save(section).Error
}

func (r *sectionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Section{}, id).Error
}

func (r *sectionRepository) DeleteByLessonIDs(ctx context.Context, lessonIDs []uint) error {
	if len(lessonIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("lesson_id IN ?", lessonIDs).Delete(&model.Section{}).Error
}
