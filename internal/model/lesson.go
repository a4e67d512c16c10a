package model

import (
	"time"
)

type Lesson struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CourseID    uint      `json:"course_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	VideoRef    *string   `json:"video_ref,omitempty"`
	Order       int       `json:"order" gorm:"column:sort_order;not null;default:0"`
	Sections    []Section `json:"sections,omitempty" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE;"`
	Tests       []Test    `json:"tests,omitempty" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE;"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
