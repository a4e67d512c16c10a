package repository

import (
	"context"

	"github.com/lshigami/Lectern/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	WithTx(tx *gorm.DB) AnswerRepository
	Create(ctx context.Context, answer *model.Answer) error
	FindByQuestionID(ctx context.Context, questionID uint) ([]model.Answer, error)
	NextPosition(ctx context.Context, questionID uint) (int, error)
	DeleteByQuestionIDs(ctx context.Context, questionIDs []uint) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) WithTx(tx *gorm.DB) AnswerRepository {
	return &answerRepository{db: tx}
}

func (r *answerRepository) Create(ctx context.Context, answer *model.Answer) error {
	return r.db.WithContext(ctx).Create(answer).Error
}

func (r *answerRepository) FindByQuestionID(ctx context.Context, questionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("position ASC").Order("id ASC").
		Find(&answers).Error
	return answers, err
}

func (r *answerRepository) NextPosition(ctx context.Context, questionID uint) (int, error) {
	maxPos := -1
	err := r.db.WithContext(ctx).Model(&model.Answer{}).
		Where("question_id = ?", questionID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxPos).Error
	if err != nil {
		return 0, err
	}
	return maxPos + 1, nil
}

func (r *answerRepository) DeleteByQuestionIDs(ctx context.Context, questionIDs []uint) error {
	if len(questionIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("question_id IN ?", questionIDs).Delete(&model.Answer{}).Error
}
