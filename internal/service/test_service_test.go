package service

import (
	"testing"

	"github.com/lshigami/Lectern/internal/access"
	"github.com/lshigami/Lectern/internal/apperror"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/lshigami/Lectern/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func TestCreateTest_PreservesOrder(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	l := f.lesson(t, c.ID, "Intro", 1)

	created, err := f.tests.CreateLessonTest(f.ctx, teacher, c.ID, l.ID, quiz("Quiz", 3, 4))
	require.NoError(t, err)
	assert.Equal(t, string(model.OwnerLesson), created.OwnerKind)
	require.NotNil(t, created.LessonID)
	assert.Equal(t, l.ID, *created.LessonID)
	assert.Nil(t, created.CourseID)

	got, err := f.tests.GetTest(f.ctx, student, created.ID, LessonScope(c.ID, l.ID))
	require.NoError(t, err)
	require.Len(t, got.Questions, 3)
	for i, q := range got.Questions {
		assert.Equal(t, "question "+string(rune('A'+i)), q.Text)
		assert.Equal(t, i, q.Position)
		require.Len(t, q.Answers, 4)
		for j, a := range q.Answers {
			assert.Equal(t, "answer "+string(rune('a'+j)), a.Text)
			assert.Equal(t, j == 0, a.IsCorrect)
			assert.NotZero(t, a.ID)
		}
	}
}

func TestCreateTest_OwnerMustBeExclusive(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	l := f.lesson(t, c.ID, "Intro", 0)

	_, err := model.NewOwner(&l.ID, &c.ID)
	require.ErrorIs(t, err, model.ErrInvalidOwner)

	_, err = f.tests.CreateTest(f.ctx, teacher, model.Owner{}, quiz("Quiz", 1, 1))
	assert.True(t, apperror.IsValidation(err), err)

	// The database refuses a row with both parents even if the hook is bypassed.
	both := model.Test{Title: "both", LessonID: &l.ID, CourseID: &c.ID}
	err = f.db.Session(&gorm.Session{SkipHooks: true}).Create(&both).Error
	assert.Error(t, err)
	assert.Zero(t, f.count(t, &model.Test{}))
}

func TestCreateTest_UnknownOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.tests.CreateTest(f.ctx, teacher, model.LessonOwner(99), quiz("Quiz", 1, 1))
	assert.True(t, apperror.IsNotFound(err), err)

	_, err = f.tests.CreateFinalTest(f.ctx, teacher, 99, quiz("Final", 1, 1))
	assert.True(t, apperror.IsNotFound(err), err)

	c := f.course(t, "Algebra")
	other := f.course(t, "Geometry")
	l := f.lesson(t, c.ID, "Intro", 0)
	_, err = f.tests.CreateLessonTest(f.ctx, teacher, other.ID, l.ID, quiz("Quiz", 1, 1))
	assert.True(t, apperror.IsNotFound(err), err)
}

func TestCreateTest_RejectsBeforeWriting(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")

	_, err := f.tests.CreateFinalTest(f.ctx, student, c.ID, quiz("Final", 1, 1))
	assert.True(t, apperror.IsForbidden(err), err)

	bad := quiz("Final", 2, 2)
	bad.Questions[1].Answers[1].Text = ""
	_, err = f.tests.CreateFinalTest(f.ctx, teacher, c.ID, bad)
	require.True(t, apperror.IsValidation(err), err)
	assert.Contains(t, err.Error(), "Questions[1].Answers[1].Text")

	assert.Zero(t, f.count(t, &model.Test{}))
	assert.Zero(t, f.count(t, &model.Question{}))
}

func TestGetTest_Scope(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	other := f.course(t, "Geometry")
	l := f.lesson(t, c.ID, "Intro", 0)

	lessonTest, err := f.tests.CreateLessonTest(f.ctx, teacher, c.ID, l.ID, quiz("Quiz", 1, 2))
	require.NoError(t, err)
	final, err := f.tests.CreateFinalTest(f.ctx, teacher, c.ID, quiz("Final", 1, 2))
	require.NoError(t, err)

	tests := []struct {
		name  string
		id    uint
		scope TestScope
		found bool
	}{
		{"lesson test in its lesson", lessonTest.ID, LessonScope(c.ID, l.ID), true},
		{"lesson test under other course", lessonTest.ID, LessonScope(other.ID, l.ID), false},
		{"lesson test as final test", lessonTest.ID, FinalTestScope(c.ID), false},
		{"final test in its course", final.ID, FinalTestScope(c.ID), true},
		{"final test in other course", final.ID, FinalTestScope(other.ID), false},
		{"final test under a lesson", final.ID, LessonScope(c.ID, l.ID), false},
		{"unscoped", final.ID, TestScope{}, true},
		{"unknown id", 404, TestScope{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.tests.GetTest(f.ctx, access.Anonymous, tt.id, tt.scope)
			if !tt.found {
				assert.True(t, apperror.IsNotFound(err), err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, got.ID)
		})
	}
}

func TestListFinalTests_ExcludesLessonTests(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	l := f.lesson(t, c.ID, "Intro", 0)

	_, err := f.tests.CreateLessonTest(f.ctx, teacher, c.ID, l.ID, quiz("Quiz", 1, 1))
	require.NoError(t, err)
	final, err := f.tests.CreateFinalTest(f.ctx, admin, c.ID, quiz("Final", 2, 1))
	require.NoError(t, err)

	finals, err := f.tests.ListFinalTests(f.ctx, student, c.ID)
	require.NoError(t, err)
	require.Len(t, finals, 1)
	assert.Equal(t, final.ID, finals[0].ID)
	assert.Equal(t, string(model.OwnerCourse), finals[0].OwnerKind)
	assert.Len(t, finals[0].Questions, 2)

	lessonTests, err := f.tests.ListLessonTests(f.ctx, student, c.ID, l.ID)
	require.NoError(t, err)
	require.Len(t, lessonTests, 1)
	assert.Equal(t, "Quiz", lessonTests[0].Title)
}

func TestUpdateTest_QuestionsOmittedAreKept(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	created, err := f.tests.CreateFinalTest(f.ctx, teacher, c.ID, quiz("Final", 2, 3))
	require.NoError(t, err)

	updated, err := f.tests.UpdateTest(f.ctx, teacher, created.ID, FinalTestScope(c.ID), dto.TestUpdateRequest{
		Title: strPtr("Final exam"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Final exam", updated.Title)
	assert.Equal(t, created.Questions, updated.Questions)
}

func TestUpdateTest_ReplacesQuestions(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	created, err := f.tests.CreateFinalTest(f.ctx, teacher, c.ID, quiz("Final", 2, 3))
	require.NoError(t, err)

	replacement := []dto.QuestionInput{{
		Text:    "3*3=?",
		Answers: []dto.AnswerInput{{Text: "6"}, {Text: "9", IsCorrect: true}},
	}}
	updated, err := f.tests.UpdateTest(f.ctx, teacher, created.ID, TestScope{}, dto.TestUpdateRequest{
		Description: strPtr("multiplication"),
		Questions:   &replacement,
	})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, "multiplication", updated.Description)
	require.Len(t, updated.Questions, 1)
	assert.Equal(t, "3*3=?", updated.Questions[0].Text)
	require.Len(t, updated.Questions[0].Answers, 2)
	assert.True(t, updated.Questions[0].Answers[1].IsCorrect)
	assert.Equal(t, int64(1), f.count(t, &model.Question{}))
	assert.Equal(t, int64(2), f.count(t, &model.Answer{}))
}

func TestUpdateTest_EmptyQuestionsClears(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	created, err := f.tests.CreateFinalTest(f.ctx, teacher, c.ID, quiz("Final", 2, 3))
	require.NoError(t, err)

	empty := []dto.QuestionInput{}
	updated, err := f.tests.UpdateTest(f.ctx, teacher, created.ID, TestScope{}, dto.TestUpdateRequest{Questions: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Questions)

	got, err := f.tests.GetTest(f.ctx, student, created.ID, TestScope{})
	require.NoError(t, err)
	assert.Empty(t, got.Questions)
	assert.Zero(t, f.count(t, &model.Answer{}))
}

func TestUpdateTest_InvalidReplacementKeepsOldTree(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	created, err := f.tests.CreateFinalTest(f.ctx, teacher, c.ID, quiz("Final", 2, 2))
	require.NoError(t, err)

	bad := []dto.QuestionInput{{Text: ""}}
	_, err = f.tests.UpdateTest(f.ctx, teacher, created.ID, TestScope{}, dto.TestUpdateRequest{
		Title:     strPtr("changed"),
		Questions: &bad,
	})
	require.True(t, apperror.IsValidation(err), err)

	got, err := f.tests.GetTest(f.ctx, student, created.ID, TestScope{})
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)
	assert.Len(t, got.Questions, 2)
}

func TestUpdateTest_FailedReplacementRollsBack(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	created, err := f.tests.CreateFinalTest(f.ctx, teacher, c.ID, quiz("Final", 2, 2))
	require.NoError(t, err)

	f.failWrites(t, "create", "answers")
	replacement := quiz("ignored", 1, 2).Questions
	_, err = f.tests.UpdateTest(f.ctx, teacher, created.ID, TestScope{}, dto.TestUpdateRequest{
		Title:     strPtr("changed"),
		Questions: &replacement,
	})
	require.ErrorIs(t, err, errWriteFailed)
	assert.Equal(t, apperror.KindStorage, apperror.KindOf(err))

	got, err := f.tests.GetTest(f.ctx, student, created.ID, TestScope{})
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)
	assert.Equal(t, created.Questions, got.Questions)
	assert.Equal(t, int64(2), f.count(t, &model.Question{}))
	assert.Equal(t, int64(4), f.count(t, &model.Answer{}))
}

func TestDeleteTest_Cascades(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	created, err := f.tests.CreateFinalTest(f.ctx, teacher, c.ID, quiz("Final", 2, 2))
	require.NoError(t, err)
	score := 50
	_, err = f.results.SubmitResult(f.ctx, student, created.ID, dto.TestResultSubmitRequest{Score: &score, Answers: []byte(`{}`)})
	require.NoError(t, err)

	err = f.tests.DeleteTest(f.ctx, student, created.ID, TestScope{})
	assert.True(t, apperror.IsForbidden(err), err)

	err = f.tests.DeleteTest(f.ctx, teacher, created.ID, FinalTestScope(c.ID))
	require.NoError(t, err)
	assert.Zero(t, f.count(t, &model.Test{}))
	assert.Zero(t, f.count(t, &model.Question{}))
	assert.Zero(t, f.count(t, &model.Answer{}))
	assert.Zero(t, f.count(t, &model.TestResult{}))

	err = f.tests.DeleteTest(f.ctx, teacher, created.ID, TestScope{})
	assert.True(t, apperror.IsNotFound(err), err)
}
