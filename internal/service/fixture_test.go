package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lshigami/Lectern/internal/access"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/lshigami/Lectern/internal/model"
	"github.com/lshigami/Lectern/internal/repository"
	"github.com/lshigami/Lectern/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	teacher = access.Actor{ID: 10, Role: access.RoleTeacher}
	admin   = access.Actor{ID: 11, Role: access.RoleAdmin}
	student = access.Actor{ID: 20, Role: access.RoleStudent}
)

type fixture struct {
	ctx       context.Context
	db        *gorm.DB
	courses   CourseService
	lessons   LessonService
	sections  SectionService
	tests     TestService
	questions QuestionService
	results   ResultService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	repos := repository.NewSet(db)
	policy := access.NewPolicy()
	return &fixture{
		ctx:       context.Background(),
		db:        db,
		courses:   NewCourseService(db, repos, policy),
		lessons:   NewLessonService(db, repos, policy),
		sections:  NewSectionService(repos, policy),
		tests:     NewTestService(db, repos, policy),
		questions: NewQuestionService(db, repos, policy),
		results:   NewResultService(repos, policy),
	}
}

func (f *fixture) course(t *testing.T, title string) *dto.CourseResponse {
	t.Helper()
	c, err := f.courses.CreateCourse(f.ctx, teacher, dto.CourseCreateRequest{Title: title})
	require.NoError(t, err)
	return c
}

func (f *fixture) lesson(t *testing.T, courseID uint, title string, order int) *dto.LessonResponse {
	t.Helper()
	l, err := f.lessons.CreateLesson(f.ctx, teacher, courseID, dto.LessonCreateRequest{Title: title, Order: order})
	require.NoError(t, err)
	return l
}

// quiz builds a test payload with n questions of m answers each; answer 0 is correct.
func quiz(title string, n, m int) dto.TestCreateRequest {
	req := dto.TestCreateRequest{Title: title}
	for i := 0; i < n; i++ {
		q := dto.QuestionInput{Text: "question " + string(rune('A'+i))}
		for j := 0; j < m; j++ {
			q.Answers = append(q.Answers, dto.AnswerInput{Text: "answer " + string(rune('a'+j)), IsCorrect: j == 0})
		}
		req.Questions = append(req.Questions, q)
	}
	return req
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

var errWriteFailed = errors.New("write failed")

// failWrites makes every create or delete against table fail on f's database,
// including writes issued inside a transaction.
func (f *fixture) failWrites(t *testing.T, op, table string) {
	t.Helper()
	fail := func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(errWriteFailed)
		}
	}
	name := "lectern:fail_" + op + "_" + table
	var err error
	switch op {
	case "create":
		err = f.db.Callback().Create().Before("gorm:create").Register(name, fail)
	case "delete":
		err = f.db.Callback().Delete().Before("gorm:delete").Register(name, fail)
	default:
		t.Fatalf("unknown write %q", op)
	}
	require.NoError(t, err)
}

// treeCounts snapshots how many rows each content table holds.
func (f *fixture) treeCounts(t *testing.T) map[string]int64 {
	t.Helper()
	return map[string]int64{
		"courses":   f.count(t, &model.Course{}),
		"lessons":   f.count(t, &model.Lesson{}),
		"sections":  f.count(t, &model.Section{}),
		"tests":     f.count(t, &model.Test{}),
		"questions": f.count(t, &model.Question{}),
		"answers":   f.count(t, &model.Answer{}),
		"results":   f.count(t, &model.TestResult{}),
	}
}
