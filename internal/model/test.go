package model

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type OwnerKind string

const (
	OwnerLesson OwnerKind = "lesson"
	OwnerCourse OwnerKind = "course"
)

var ErrInvalidOwner = errors.New("test must belong to exactly one of lesson or course")

// Owner is the parent a Test hangs off: a lesson, or a course for final tests.
// Fields are unexported so only LessonOwner, CourseOwner and NewOwner can build a
// usable value; the zero Owner is invalid.
type Owner struct {
	kind OwnerKind
	id   uint
}

func LessonOwner(lessonID uint) Owner { return Owner{kind: OwnerLesson, id: lessonID} }
func CourseOwner(courseID uint) Owner { return Owner{kind: OwnerCourse, id: courseID} }

// NewOwner builds an Owner from the two optional parent ids, rejecting both or neither.
func NewOwner(lessonID, courseID *uint) (Owner, error) {
	switch {
	case lessonID != nil && courseID != nil:
		return Owner{}, fmt.Errorf("%w: both lesson %d and course %d given", ErrInvalidOwner, *lessonID, *courseID)
	case lessonID != nil:
		return LessonOwner(*lessonID), nil
	case courseID != nil:
		return CourseOwner(*courseID), nil
	}
	return Owner{}, fmt.Errorf("%w: neither given", ErrInvalidOwner)
}

func (o Owner) Kind() OwnerKind { return o.kind }
func (o Owner) ID() uint        { return o.id }
func (o Owner) Valid() bool     { return o.kind != "" && o.id != 0 }

func (o Owner) String() string {
	if !o.Valid() {
		return "owner(none)"
	}
	return fmt.Sprintf("%s %d", o.kind, o.id)
}

type Test struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`
	// Exactly one of LessonID and CourseID is set; see Owner.
	LessonID  *uint      `json:"lesson_id,omitempty" gorm:"index"`
	CourseID  *uint      `json:"course_id,omitempty" gorm:"index;check:(lesson_id IS NULL) <> (course_id IS NULL)"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE;"`
}

func (t *Test) Owner() Owner {
	o, err := NewOwner(t.LessonID, t.CourseID)
	if err != nil {
		return Owner{}
	}
	return o
}

// SetOwner stores o in exactly one of the two parent columns.
func (t *Test) SetOwner(o Owner) {
	t.LessonID, t.CourseID = nil, nil
	id := o.ID()
	switch o.Kind() {
	case OwnerLesson:
		t.LessonID = &id
	case OwnerCourse:
		t.CourseID = &id
	}
}

func (t *Test) BeforeCreate(tx *gorm.DB) error {
	if !t.Owner().Valid() {
		return ErrInvalidOwner
	}
	return nil
}
