package repository

import (
	"context"

	"github.com/lshigami/Lectern/internal/model"
	"gorm.io/gorm"
)

// TestResultRepository exposes no update: results are append-only.
type TestResultRepository interface {
	WithTx(tx *gorm.DB) TestResultRepository
	Create(ctx context.Context, result *model.TestResult) error
	FindByTestID(ctx context.Context, testID uint) ([]model.TestResult, error)
	DeleteByTestIDs(ctx context.Context, testIDs []uint) error
}

type testResultRepository struct {
	db *gorm.DB
}

func NewTestResultRepository(db *gorm.DB) TestResultRepository {
	return &testResultRepository{db: db}
}

func (r *testResultRepository) WithTx(tx *gorm.DB) TestResultRepository {
	return &testResultRepository{db: tx}
}

func (r *testResultRepository) Create(ctx context.Context, result *model.TestResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

// FindByTestID returns newest results first.
func (r *testResultRepository) FindByTestID(ctx context.Context, testID uint) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.db.WithContext(ctx).
		Where("test_id = ?", testID).
		Order("created_at DESC").Order("id DESC").
		Find(&results).Error
	return results, err
}

// DeleteByTestIDs is only used by the cascade when a test's owner is removed.
func (r *testResultRepository) DeleteByTestIDs(ctx context.Context, testIDs []uint) error {
	if len(testIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("test_id IN ?", testIDs).Delete(&model.TestResult{}).Error
}
