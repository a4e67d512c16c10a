package catalog

import (
	"context"
	"fmt"

	"github.com/lshigami/Lectern/internal/access"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/lshigami/Lectern/internal/service"
	"github.com/rs/zerolog/log"
)

// Summary counts what one import created.
type Summary struct {
	Courses  int
	Lessons  int
	Sections int
	Tests    int
}

func (s Summary) plus(o Summary) Summary {
	return Summary{
		Courses:  s.Courses + o.Courses,
		Lessons:  s.Lessons + o.Lessons,
		Sections: s.Sections + o.Sections,
		Tests:    s.Tests + o.Tests,
	}
}

// Importer replays a catalog through the services, so every write goes through
// the same validation and access checks as the API.
type Importer struct {
	courses  service.CourseService
	lessons  service.LessonService
	sections service.SectionService
	tests    service.TestService
}

func NewImporter(courses service.CourseService, lessons service.LessonService, sections service.SectionService, tests service.TestService) *Importer {
	return &Importer{courses: courses, lessons: lessons, sections: sections, tests: tests}
}

func (im *Importer) ImportAll(ctx context.Context, actor access.Actor, courses []*Course) (Summary, error) {
	var total Summary
	for _, c := range courses {
		s, err := im.Import(ctx, actor, c)
		total = total.plus(s)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Import creates one course with its whole tree. When any write after the
// course itself fails, the course is deleted again so no partial tree is left.
func (im *Importer) Import(ctx context.Context, actor access.Actor, c *Course) (Summary, error) {
	course, err := im.courses.CreateCourse(ctx, actor, dto.CourseCreateRequest{Title: c.Title, Description: c.Description})
	if err != nil {
		return Summary{}, fmt.Errorf("course %q: %w", c.Title, err)
	}

	sum, err := im.fill(ctx, actor, course.ID, c)
	if err != nil {
		if delErr := im.courses.DeleteCourse(ctx, actor, course.ID); delErr != nil {
			log.Error().Err(delErr).Uint("courseID", course.ID).Msg("Failed to remove partially imported course")
			return Summary{Courses: 1}.plus(sum), err
		}
		log.Warn().Err(err).Uint("courseID", course.ID).Str("title", c.Title).Msg("Import failed, course removed")
		return Summary{}, err
	}
	sum.Courses++

	log.Info().
		Uint("courseID", course.ID).
		Str("title", c.Title).
		Int("lessons", sum.Lessons).
		Int("sections", sum.Sections).
		Int("tests", sum.Tests).
		Msg("Course imported")
	return sum, nil
}

// fill creates the lessons, sections and tests of c under courseID.
func (im *Importer) fill(ctx context.Context, actor access.Actor, courseID uint, c *Course) (Summary, error) {
	var sum Summary
	for i, l := range c.Lessons {
		lesson, err := im.lessons.CreateLesson(ctx, actor, courseID, dto.LessonCreateRequest{
			Title:       l.Title,
			Description: l.Description,
			VideoRef:    optional(l.VideoRef),
			Order:       orderOr(l.Order, i),
		})
		if err != nil {
			return sum, fmt.Errorf("course %q lesson %q: %w", c.Title, l.Title, err)
		}
		sum.Lessons++

		for j, s := range l.Sections {
			_, err := im.sections.CreateSection(ctx, actor, courseID, lesson.ID, dto.SectionCreateRequest{
				Title:    s.Title,
				Content:  s.Content,
				VideoRef: optional(s.VideoRef),
				Order:    orderOr(s.Order, j),
			})
			if err != nil {
				return sum, fmt.Errorf("lesson %q section %q: %w", l.Title, s.Title, err)
			}
			sum.Sections++
		}

		for _, t := range l.Tests {
			if _, err := im.tests.CreateLessonTest(ctx, actor, courseID, lesson.ID, t.request()); err != nil {
				return sum, fmt.Errorf("lesson %q test %q: %w", l.Title, t.Title, err)
			}
			sum.Tests++
		}
	}

	for _, t := range c.FinalTests {
		if _, err := im.tests.CreateFinalTest(ctx, actor, courseID, t.request()); err != nil {
			return sum, fmt.Errorf("course %q final test %q: %w", c.Title, t.Title, err)
		}
		sum.Tests++
	}
	return sum, nil
}

func (t Test) request() dto.TestCreateRequest {
	req := dto.TestCreateRequest{Title: t.Title, Description: t.Description}
	for _, q := range t.Questions {
		in := dto.QuestionInput{Text: q.Text}
		for _, a := range q.Answers {
			in.Answers = append(in.Answers, dto.AnswerInput{Text: a.Text, IsCorrect: a.Correct})
		}
		req.Questions = append(req.Questions, in)
	}
	return req
}

// orderOr returns the explicit order, or the item's position in the file.
func orderOr(order *int, index int) int {
	if order != nil {
		return *order
	}
	return index
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
