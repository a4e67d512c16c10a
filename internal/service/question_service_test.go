package service

import (
	"testing"

	"github.com/lshigami/Lectern/internal/access"
	"github.com/lshigami/Lectern/internal/apperror"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddQuestion_AppendsAfterLast(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	test, err := f.tests.CreateFinalTest(f.ctx, teacher, c.ID, quiz("Final", 2, 1))
	require.NoError(t, err)

	added, err := f.questions.AddQuestion(f.ctx, teacher, test.ID, dto.QuestionInput{
		Text:    "last",
		Answers: []dto.AnswerInput{{Text: "yes", IsCorrect: true}, {Text: "no"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added.Position)
	assert.Equal(t, test.ID, added.TestID)
	require.Len(t, added.Answers, 2)
	assert.Equal(t, 1, added.Answers[1].Position)

	questions, err := f.questions.ListQuestions(f.ctx, access.Anonymous, test.ID)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, "last", questions[2].Text)
}

func TestAddQuestion_EmptyTestStartsAtZero(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	test, err := f.tests.CreateFinalTest(f.ctx, teacher, c.ID, dto.TestCreateRequest{Title: "Empty"})
	require.NoError(t, err)
	assert.Empty(t, test.Questions)

	added, err := f.questions.AddQuestion(f.ctx, admin, test.ID, dto.QuestionInput{Text: "first"})
	require.NoError(t, err)
	assert.Equal(t, 0, added.Position)
	assert.Empty(t, added.Answers)
}

func TestAddQuestion_Rejections(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	test, err := f.tests.CreateFinalTest(f.ctx, teacher, c.ID, quiz("Final", 1, 1))
	require.NoError(t, err)

	_, err = f.questions.AddQuestion(f.ctx, student, test.ID, dto.QuestionInput{Text: "q"})
	assert.True(t, apperror.IsForbidden(err), err)

	_, err = f.questions.AddQuestion(f.ctx, teacher, test.ID, dto.QuestionInput{})
	assert.True(t, apperror.IsValidation(err), err)

	_, err = f.questions.AddQuestion(f.ctx, teacher, 404, dto.QuestionInput{Text: "q"})
	assert.True(t, apperror.IsNotFound(err), err)
}

func TestAnswers(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	test, err := f.tests.CreateFinalTest(f.ctx, teacher, c.ID, quiz("Final", 1, 2))
	require.NoError(t, err)
	other, err := f.tests.CreateFinalTest(f.ctx, teacher, c.ID, quiz("Other", 1, 1))
	require.NoError(t, err)
	questionID := test.Questions[0].ID

	answer, err := f.questions.AddAnswer(f.ctx, teacher, test.ID, questionID, dto.AnswerInput{Text: "maybe"})
	require.NoError(t, err)
	assert.Equal(t, 2, answer.Position)
	assert.False(t, answer.IsCorrect)

	answers, err := f.questions.ListAnswers(f.ctx, student, test.ID, questionID)
	require.NoError(t, err)
	require.Len(t, answers, 3)
	assert.Equal(t, "answer a", answers[0].Text)
	assert.Equal(t, "maybe", answers[2].Text)

	_, err = f.questions.ListAnswers(f.ctx, student, other.ID, questionID)
	assert.True(t, apperror.IsNotFound(err), err)

	_, err = f.questions.AddAnswer(f.ctx, student, test.ID, questionID, dto.AnswerInput{Text: "no"})
	assert.True(t, apperror.IsForbidden(err), err)
}
