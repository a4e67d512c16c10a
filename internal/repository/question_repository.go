package repository

import (
	"context"

	"github.com/lshigami/Lectern/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	WithTx(tx *gorm.DB) QuestionRepository
	// CreateBatch inserts questions together with their answers.
	CreateBatch(ctx context.Context, questions []model.Question) error
	FindInTest(ctx context.Context, testID, questionID uint) (*model.Question, error)
	FindByTestID(ctx context.Context, testID uint) ([]model.Question, error)
	NextPosition(ctx context.Context, testID uint) (int, error)
	IDsByTestIDs(ctx context.Context, testIDs []uint) ([]uint, error)
	DeleteByTestIDs(ctx context.Context, testIDs []uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) WithTx(tx *gorm.DB) QuestionRepository {
	return &questionRepository{db: tx}
}

func (r *questionRepository) CreateBatch(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&questions).Error
}

func (r *questionRepository) FindInTest(ctx context.Context, testID, questionID uint) (*model.Question, error) {
	var question model.Question
	err := r.db.WithContext(ctx).
		Preload("Answers", orderedAnswers).
		Where("test_id = ?", testID).
		First(&question, questionID).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByTestID(ctx context.Context, testID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.WithContext(ctx).
		Preload("Answers", orderedAnswers).
		Where("test_id = ?", testID).
		Order("position ASC").Order("id ASC").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) NextPosition(ctx context.Context, testID uint) (int, error) {
	maxPos := -1
	err := r.db.WithContext(ctx).Model(&model.Question{}).
		Where("test_id = ?", testID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxPos).Error
	if err != nil {
		return 0, err
	}
	return maxPos + 1, nil
}

func (r *questionRepository) IDsByTestIDs(ctx context.Context, testIDs []uint) ([]uint, error) {
	var ids []uint
	if len(testIDs) == 0 {
		return ids, nil
	}
	err := r.db.WithContext(ctx).Model(&model.Question{}).Where("test_id IN ?", testIDs).Pluck("id", &ids).Error
	return ids, err
}

func (r *questionRepository) DeleteByTestIDs(ctx context.Context, testIDs []uint) error {
	if len(testIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("test_id IN ?", testIDs).Delete(&model.Question{}).Error
}
