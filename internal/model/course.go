package model

import (
	"time"
)

type Course struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	AuthorID    uint      `json:"author_id" gorm:"not null;index"` // set once at creation
	Lessons     []Lesson  `json:"lessons,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;"`
	FinalTests  []Test    `json:"final_tests,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
