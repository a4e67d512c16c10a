package dto

import "time"

type CourseCreateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
}

// CourseUpdateRequest merges: nil fields keep their stored value.
type CourseUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

type CourseResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AuthorID    uint      `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type LessonCreateRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description"`
	VideoRef    *string `json:"video_ref" validate:"omitempty,max=255"`
	Order       int     `json:"order" validate:"min=0"`
}

type LessonUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	VideoRef    *string `json:"video_ref" validate:"omitempty,max=255"`
	Order       *int    `json:"order" validate:"omitempty,min=0"`
}

type LessonResponse struct {
	ID          uint              `json:"id"`
	CourseID    uint              `json:"course_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	VideoRef    *string           `json:"video_ref,omitempty"`
	Order       int               `json:"order"`
	Sections    []SectionResponse `json:"sections"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type SectionCreateRequest struct {
	Title    string  `json:"title" validate:"required,max=255"`
	Content  string  `json:"content"`
	VideoRef *string `json:"video_ref" validate:"omitempty,max=255"`
	Order    int     `json:"order" validate:"min=0"`
}

type SectionUpdateRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content  *string `json:"content"`
	VideoRef *string `json:"video_ref" validate:"omitempty,max=255"`
	Order    *int    `json:"order" validate:"omitempty,min=0"`
}

type SectionResponse struct {
	ID       uint    `json:"id"`
	LessonID uint    `json:"lesson_id"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	VideoRef *string `json:"video_ref,omitempty"`
	Order    int     `json:"order"`
}
