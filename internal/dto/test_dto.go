package dto

// AnswerInput is one answer option inside a question payload.
type AnswerInput struct {
	Text      string `json:"text" validate:"required,max=255"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionInput is one question with its ordered answers.
type QuestionInput struct {
	Text    string        `json:"text" validate:"required"`
	Answers []AnswerInput `json:"answers" validate:"dive"`
}

// TestCreateRequest carries the whole aggregate. Ownership comes from the route,
// never from the body.
type TestCreateRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions" validate:"dive"`
}

// TestUpdateRequest merges title and description. Questions, when present (even as
// an empty list), replace the whole question/answer subtree; when absent they are kept.
type TestUpdateRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description"`
	Questions   *[]QuestionInput `json:"questions" validate:"omitempty,dive"`
}

type AnswerResponse struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
	Position  int    `json:"position"`
}

type QuestionResponse struct {
	ID       uint             `json:"id"`
	TestID   uint             `json:"test_id"`
	Text     string           `json:"text"`
	Position int              `json:"position"`
	Answers  []AnswerResponse `json:"answers"`
}

type TestResponse struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	OwnerKind   string             `json:"owner_kind"`
	LessonID    *uint              `json:"lesson_id,omitempty"`
	CourseID    *uint              `json:"course_id,omitempty"`
	Questions   []QuestionResponse `json:"questions"`
}
