package repository

import "gorm.io/gorm"

// Set bundles every repository so services can rebind them to one transaction.
type Set struct {
	Courses   CourseRepository
	Lessons   LessonRepository
	Sections  SectionRepository
	Tests     TestRepository
	Questions QuestionRepository
	Answers   AnswerRepository
	Results   TestResultRepository
}

func NewSet(db *gorm.DB) *Set {
	return &Set{
		Courses:   NewCourseRepository(db),
		Lessons:   NewLessonRepository(db),
		Sections:  NewSectionRepository(db),
		Tests:     NewTestRepository(db),
		Questions: NewQuestionRepository(db),
		Answers:   NewAnswerRepository(db),
		Results:   NewTestResultRepository(db),
	}
}

// WithTx returns a Set whose repositories all run inside tx.
func (s *Set) WithTx(tx *gorm.DB) *Set {
	return &Set{
		Courses:   s.Courses.WithTx(tx),
		Lessons:   s.Lessons.WithTx(tx),
		Sections:  s.Sections.WithTx(tx),
		Tests:     s.Tests.WithTx(tx),
		Questions: s.Questions.WithTx(tx),
		Answers:   s.Answers.WithTx(tx),
		Results:   s.Results.WithTx(tx),
	}
}
