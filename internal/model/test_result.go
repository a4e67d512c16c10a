package model

import (
	"time"

	"gorm.io/datatypes"
)

// TestResult is append-only: rows are inserted by submit and never updated.
type TestResult struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	TestID    uint           `json:"test_id" gorm:"not null;index"`
	Score     int            `json:"score" gorm:"not null"`
	Answers   datatypes.JSON `json:"answers" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
}
