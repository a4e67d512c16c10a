package service

import (
	"testing"

	"github.com/lshigami/Lectern/internal/access"
	"github.com/lshigami/Lectern/internal/apperror"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/lshigami/Lectern/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestLessonAccess(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")

	_, err := f.lessons.CreateLesson(f.ctx, access.Anonymous, c.ID, dto.LessonCreateRequest{Title: "Intro"})
	assert.True(t, apperror.IsForbidden(err), err)

	// Any authenticated role may edit lesson bodies.
	l, err := f.lessons.CreateLesson(f.ctx, student, c.ID, dto.LessonCreateRequest{Title: "Intro"})
	require.NoError(t, err)
	assert.Equal(t, c.ID, l.CourseID)
	assert.Empty(t, l.Sections)

	_, err = f.lessons.CreateLesson(f.ctx, student, 404, dto.LessonCreateRequest{Title: "Intro"})
	assert.True(t, apperror.IsNotFound(err), err)
}

func TestListLessons_Ordered(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	f.lesson(t, c.ID, "third", 2)
	f.lesson(t, c.ID, "first", 0)
	f.lesson(t, c.ID, "second", 1)
	f.lesson(t, c.ID, "second again", 1)

	lessons, err := f.lessons.ListLessons(f.ctx, access.Anonymous, c.ID)
	require.NoError(t, err)
	titles := make([]string, 0, len(lessons))
	for _, l := range lessons {
		titles = append(titles, l.Title)
	}
	assert.Equal(t, []string{"first", "second", "second again", "third"}, titles)

	_, err = f.lessons.ListLessons(f.ctx, access.Anonymous, 404)
	assert.True(t, apperror.IsNotFound(err), err)
}

func TestUpdateLesson_PartialMerge(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	l, err := f.lessons.CreateLesson(f.ctx, teacher, c.ID, dto.LessonCreateRequest{
		Title:       "Intro",
		Description: "basics",
		VideoRef:    strPtr("videos/intro.mp4"),
		Order:       3,
	})
	require.NoError(t, err)

	updated, err := f.lessons.UpdateLesson(f.ctx, student, c.ID, l.ID, dto.LessonUpdateRequest{Order: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Order)
	assert.Equal(t, "Intro", updated.Title)
	assert.Equal(t, "basics", updated.Description)
	require.NotNil(t, updated.VideoRef)
	assert.Equal(t, "videos/intro.mp4", *updated.VideoRef)

	got, err := f.lessons.GetLesson(f.ctx, access.Anonymous, c.ID, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Order)
	assert.Equal(t, c.ID, got.CourseID)

	_, err = f.lessons.UpdateLesson(f.ctx, student, c.ID, l.ID, dto.LessonUpdateRequest{Title: strPtr("")})
	assert.True(t, apperror.IsValidation(err), err)
}

func TestGetLesson_ScopedToCourse(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	other := f.course(t, "Geometry")
	l := f.lesson(t, c.ID, "Intro", 0)

	_, err := f.lessons.GetLesson(f.ctx, student, other.ID, l.ID)
	assert.True(t, apperror.IsNotFound(err), err)

	err = f.lessons.DeleteLesson(f.ctx, student, other.ID, l.ID)
	assert.True(t, apperror.IsNotFound(err), err)
}

func TestDeleteLesson_Cascades(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	l := f.lesson(t, c.ID, "Intro", 0)
	_, err := f.sections.CreateSection(f.ctx, student, c.ID, l.ID, dto.SectionCreateRequest{Title: "Body"})
	require.NoError(t, err)
	_, err = f.tests.CreateLessonTest(f.ctx, teacher, c.ID, l.ID, quiz("Quiz", 2, 2))
	require.NoError(t, err)
	final, err := f.tests.CreateFinalTest(f.ctx, teacher, c.ID, quiz("Final", 1, 1))
	require.NoError(t, err)

	require.NoError(t, f.lessons.DeleteLesson(f.ctx, student, c.ID, l.ID))

	assert.Zero(t, f.count(t, &model.Lesson{}))
	assert.Zero(t, f.count(t, &model.Section{}))
	assert.Equal(t, int64(1), f.count(t, &model.Test{}))
	assert.Equal(t, int64(1), f.count(t, &model.Question{}))

	_, err = f.tests.GetTest(f.ctx, student, final.ID, FinalTestScope(c.ID))
	assert.NoError(t, err)
}

func TestDeleteLesson_FailureLeavesLessonIntact(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	l := f.lesson(t, c.ID, "Intro", 0)
	_, err := f.sections.CreateSection(f.ctx, student, c.ID, l.ID, dto.SectionCreateRequest{Title: "Body"})
	require.NoError(t, err)
	_, err = f.tests.CreateLessonTest(f.ctx, teacher, c.ID, l.ID, quiz("Quiz", 2, 2))
	require.NoError(t, err)
	before := f.treeCounts(t)

	f.failWrites(t, "delete", "lessons")
	err = f.lessons.DeleteLesson(f.ctx, student, c.ID, l.ID)
	require.ErrorIs(t, err, errWriteFailed)

	assert.Equal(t, before, f.treeCounts(t))
	tests, err := f.tests.ListLessonTests(f.ctx, student, c.ID, l.ID)
	require.NoError(t, err)
	require.Len(t, tests, 1)
	assert.Len(t, tests[0].Questions, 2)
}
