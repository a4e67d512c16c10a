package service

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/lshigami/Lectern/internal/access"
	"github.com/lshigami/Lectern/internal/apperror"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/lshigami/Lectern/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

func TestSubmitResult_Rejections(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	test, err := f.tests.CreateFinalTest(f.ctx, teacher, c.ID, quiz("Final", 1, 2))
	require.NoError(t, err)
	score := 10

	tests := []struct {
		name  string
		actor access.Actor
		id    uint
		req   dto.TestResultSubmitRequest
		check func(error) bool
	}{
		{"anonymous", access.Anonymous, test.ID, dto.TestResultSubmitRequest{Score: &score, Answers: datatypes.JSON(`{}`)}, apperror.IsForbidden},
		{"unknown test", student, 404, dto.TestResultSubmitRequest{Score: &score, Answers: datatypes.JSON(`{}`)}, apperror.IsNotFound},
		{"missing score", student, test.ID, dto.TestResultSubmitRequest{Answers: datatypes.JSON(`{}`)}, apperror.IsValidation},
		{"missing answers", student, test.ID, dto.TestResultSubmitRequest{Score: &score}, apperror.IsValidation},
		{"null answers", student, test.ID, dto.TestResultSubmitRequest{Score: &score, Answers: datatypes.JSON(` null `)}, apperror.IsValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.results.SubmitResult(f.ctx, tt.actor, tt.id, tt.req)
			assert.True(t, tt.check(err), err)
		})
	}
	assert.Zero(t, f.count(t, &model.TestResult{}))
}

func TestSubmitResult_ScoreIsStoredAsSent(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	test, err := f.tests.CreateFinalTest(f.ctx, teacher, c.ID, quiz("Final", 1, 2))
	require.NoError(t, err)

	// Every answer below is wrong, yet the client-graded score is kept.
	score := 100
	res, err := f.results.SubmitResult(f.ctx, student, test.ID, dto.TestResultSubmitRequest{
		Score:   &score,
		Answers: datatypes.JSON(`{"1":"answer b"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)
	assert.False(t, res.CreatedAt.IsZero())
}

func TestListResults_NewestFirst(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	test, err := f.tests.CreateFinalTest(f.ctx, teacher, c.ID, quiz("Final", 1, 2))
	require.NoError(t, err)

	var ids []uint
	for i := 0; i < 3; i++ {
		score := i * 10
		res, err := f.results.SubmitResult(f.ctx, student, test.ID, dto.TestResultSubmitRequest{
			Score:   &score,
			Answers: datatypes.JSON(`{"attempt":` + strconv.Itoa(i) + `}`),
		})
		require.NoError(t, err)
		ids = append(ids, res.ID)
	}

	results, err := f.results.ListResults(f.ctx, access.Anonymous, test.ID)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []uint{ids[2], ids[1], ids[0]}, []uint{results[0].ID, results[1].ID, results[2].ID})

	_, err = f.results.ListResults(f.ctx, student, 404)
	assert.True(t, apperror.IsNotFound(err), err)
}

func TestExportResults(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, "Algebra")
	test, err := f.tests.CreateFinalTest(f.ctx, teacher, c.ID, quiz("Final", 1, 2))
	require.NoError(t, err)
	score := 75
	_, err = f.results.SubmitResult(f.ctx, student, test.ID, dto.TestResultSubmitRequest{
		Score:   &score,
		Answers: datatypes.JSON(`{"q1":"4"}`),
	})
	require.NoError(t, err)

	data, err := f.results.ExportResults(f.ctx, teacher, test.ID)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(ResultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Score", rows[0][2])
	assert.Equal(t, strconv.Itoa(int(student.ID)), rows[1][1])
	assert.Equal(t, "75", rows[1][2])
	assert.Equal(t, `{"q1":"4"}`, rows[1][4])
}
