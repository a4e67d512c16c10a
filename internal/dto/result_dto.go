package dto

import (
	"time"

	"gorm.io/datatypes"
)

// TestResultSubmitRequest is the learner's submission. Score is trusted as sent.
type TestResultSubmitRequest struct {
	Score   *int           `json:"score" validate:"required"`
	Answers datatypes.JSON `json:"answers" swaggertype:"object"`
}

type TestResultResponse struct {
	ID        uint           `json:"id"`
	UserID    uint           `json:"user_id"`
	TestID    uint           `json:"test_id"`
	Score     int            `json:"score"`
	Answers   datatypes.JSON `json:"answers" swaggertype:"object"`
	CreatedAt time.Time      `json:"created_at"`
}
