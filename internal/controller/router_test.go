package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lectern/config"
	"github.com/lshigami/Lectern/internal/access"
	"github.com/lshigami/Lectern/internal/controller/api"
	"github.com/lshigami/Lectern/internal/controller/assessment"
	"github.com/lshigami/Lectern/internal/controller/content"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/lshigami/Lectern/internal/repository"
	"github.com/lshigami/Lectern/internal/service"
	"github.com/lshigami/Lectern/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type apiClient struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	cfg := &config.Config{
		Server: config.Server{GinMode: gin.TestMode},
		Auth:   config.Auth{JWTSecret: testSecret},
	}
	db := testutil.NewDB(t)
	repos := repository.NewSet(db)
	policy := access.NewPolicy()

	router := NewGinEngine(cfg)
	RegisterRoutes(router, cfg, Handlers{
		Courses:   content.NewCourseController(service.NewCourseService(db, repos, policy)),
		Lessons:   content.NewLessonController(service.NewLessonService(db, repos, policy)),
		Sections:  content.NewSectionController(service.NewSectionService(repos, policy)),
		Tests:     assessment.NewTestController(service.NewTestService(db, repos, policy)),
		Questions: assessment.NewQuestionController(service.NewQuestionService(db, repos, policy)),
		Results:   assessment.NewResultController(service.NewResultService(repos, policy)),
	})
	return &apiClient{t: t, router: router}
}

func token(t *testing.T, id uint, role access.Role) string {
	t.Helper()
	return testutil.Token(t, testSecret, access.Actor{ID: id, Role: role}, time.Hour)
}

func (a *apiClient) do(method, path, tok string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(api.RequestIDHeader))
}

func TestAlgebraScenarioOverHTTP(t *testing.T) {
	a := newAPI(t)
	teacherTok := token(t, 1, access.RoleTeacher)
	studentTok := token(t, 2, access.RoleStudent)

	w := a.do(http.MethodPost, "/api/v1/courses", teacherTok, dto.CourseCreateRequest{Title: "Algebra"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	course := decode[dto.CourseResponse](t, w)
	assert.Equal(t, uint(1), course.ID)
	assert.Equal(t, uint(1), course.AuthorID)

	w = a.do(http.MethodPost, "/api/v1/courses/1/lessons", teacherTok, dto.LessonCreateRequest{Title: "Intro", Order: 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/api/v1/courses/1/lessons/1/tests", teacherTok, `{
		"title": "Warm-up",
		"questions": [{"text": "2+2=?", "answers": [{"text": "4", "is_correct": true}, {"text": "5", "is_correct": false}]}]
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	test := decode[dto.TestResponse](t, w)
	assert.Equal(t, "lesson", test.OwnerKind)

	w = a.do(http.MethodGet, fmt.Sprintf("/api/v1/courses/1/lessons/1/tests/%d", test.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[dto.TestResponse](t, w)
	require.Len(t, got.Questions, 1)
	require.Len(t, got.Questions[0].Answers, 2)
	assert.True(t, got.Questions[0].Answers[0].IsCorrect)

	w = a.do(http.MethodPost, fmt.Sprintf("/api/v1/tests/%d/submit", test.ID), studentTok, `{"score": 100, "answers": {"q1": "4"}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodGet, fmt.Sprintf("/api/v1/tests/%d/results", test.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	results := decode[[]dto.TestResultResponse](t, w)
	require.Len(t, results, 1)
	assert.Equal(t, 100, results[0].Score)
	assert.Equal(t, uint(2), results[0].UserID)
	assert.JSONEq(t, `{"q1":"4"}`, string(results[0].Answers))
}

func TestErrorStatuses(t *testing.T) {
	a := newAPI(t)
	teacherTok := token(t, 1, access.RoleTeacher)
	studentTok := token(t, 2, access.RoleStudent)
	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/api/v1/courses", teacherTok, dto.CourseCreateRequest{Title: "Algebra"}).Code)

	tests := []struct {
		name   string
		method string
		path   string
		tok    string
		body   any
		want   int
	}{
		{"student creates course", http.MethodPost, "/api/v1/courses", studentTok, dto.CourseCreateRequest{Title: "x"}, http.StatusForbidden},
		{"anonymous creates course", http.MethodPost, "/api/v1/courses", "", dto.CourseCreateRequest{Title: "x"}, http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/api/v1/courses", "not-a-token", nil, http.StatusUnauthorized},
		{"student reads courses", http.MethodGet, "/api/v1/courses", studentTok, nil, http.StatusOK},
		{"missing title", http.MethodPost, "/api/v1/courses", teacherTok, `{"description":"d"}`, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/v1/courses", teacherTok, `{"title":`, http.StatusBadRequest},
		{"bad id", http.MethodGet, "/api/v1/courses/abc", "", nil, http.StatusBadRequest},
		{"unknown course", http.MethodGet, "/api/v1/courses/99", "", nil, http.StatusNotFound},
		{"lesson under unknown course", http.MethodPost, "/api/v1/courses/99/lessons", studentTok, dto.LessonCreateRequest{Title: "x"}, http.StatusNotFound},
		{"student adds lesson", http.MethodPost, "/api/v1/courses/1/lessons", studentTok, dto.LessonCreateRequest{Title: "x"}, http.StatusCreated},
		{"student creates final test", http.MethodPost, "/api/v1/courses/1/final-tests", studentTok, dto.TestCreateRequest{Title: "x"}, http.StatusForbidden},
		{"submit to unknown test", http.MethodPost, "/api/v1/tests/99/submit", studentTok, `{"score":1,"answers":{}}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(tt.method, tt.path, tt.tok, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			if w.Code >= 400 {
				resp := decode[dto.ErrorResponse](t, w)
				assert.NotEmpty(t, resp.Message)
			}
		})
	}
}

func TestFinalTestsOverHTTP(t *testing.T) {
	a := newAPI(t)
	adminTok := token(t, 3, access.RoleAdmin)
	studentTok := token(t, 2, access.RoleStudent)
	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/api/v1/courses", adminTok, dto.CourseCreateRequest{Title: "Algebra"}).Code)
	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/api/v1/courses/1/lessons", adminTok, dto.LessonCreateRequest{Title: "Intro"}).Code)
	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/api/v1/courses/1/lessons/1/tests", adminTok, dto.TestCreateRequest{Title: "Quiz"}).Code)

	// Owner ids in the body are not part of the payload contract and never move the test.
	w := a.do(http.MethodPost, "/api/v1/courses/1/final-tests", adminTok, `{"title":"Final","lesson_id":1,"questions":[{"text":"q","answers":[]}]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	final := decode[dto.TestResponse](t, w)
	assert.Equal(t, "course", final.OwnerKind)
	assert.Nil(t, final.LessonID)

	w = a.do(http.MethodGet, "/api/v1/courses/1/final-tests", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	finals := decode[[]dto.TestResponse](t, w)
	require.Len(t, finals, 1)
	assert.Equal(t, "Final", finals[0].Title)

	path := fmt.Sprintf("/api/v1/courses/1/final-tests/%d", final.ID)
	w = a.do(http.MethodPut, path, adminTok, `{"title":"Final exam"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode[dto.TestResponse](t, w).Questions, 1)

	w = a.do(http.MethodPut, path, adminTok, `{"questions":[]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[dto.TestResponse](t, w)
	assert.Equal(t, "Final exam", updated.Title)
	assert.Empty(t, updated.Questions)
	assert.Contains(t, w.Body.String(), `"questions":[]`)

	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/v1/courses/1/lessons/1/tests/"+fmt.Sprint(final.ID), "", nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodDelete, path, studentTok, nil).Code)
	assert.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, path, adminTok, nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, fmt.Sprintf("/api/v1/tests/%d", final.ID), "", nil).Code)
}

func TestQuestionsAndExportOverHTTP(t *testing.T) {
	a := newAPI(t)
	teacherTok := token(t, 1, access.RoleTeacher)
	studentTok := token(t, 2, access.RoleStudent)
	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/api/v1/courses", teacherTok, dto.CourseCreateRequest{Title: "Algebra"}).Code)
	w := a.do(http.MethodPost, "/api/v1/courses/1/final-tests", teacherTok, dto.TestCreateRequest{Title: "Final"})
	require.Equal(t, http.StatusCreated, w.Code)
	testID := decode[dto.TestResponse](t, w).ID

	w = a.do(http.MethodPost, fmt.Sprintf("/api/v1/tests/%d/questions", testID), teacherTok, dto.QuestionInput{Text: "1+1=?"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	q := decode[dto.QuestionResponse](t, w)

	w = a.do(http.MethodPost, fmt.Sprintf("/api/v1/tests/%d/questions/%d/answers", testID, q.ID), teacherTok, dto.AnswerInput{Text: "2", IsCorrect: true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodGet, fmt.Sprintf("/api/v1/tests/%d/questions/%d/answers", testID, q.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	answers := decode[[]dto.AnswerResponse](t, w)
	require.Len(t, answers, 1)
	assert.True(t, answers[0].IsCorrect)

	w = a.do(http.MethodPost, fmt.Sprintf("/api/v1/tests/%d/submit", testID), studentTok, `{"score": 5, "answers": null}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	w = a.do(http.MethodPost, fmt.Sprintf("/api/v1/tests/%d/submit", testID), studentTok, `{"answers": {}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	w = a.do(http.MethodPost, fmt.Sprintf("/api/v1/tests/%d/submit", testID), studentTok, `{"score": 5, "answers": {"1": "2"}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodGet, fmt.Sprintf("/api/v1/tests/%d/results/export", testID), teacherTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), fmt.Sprintf("test-%d-results.xlsx", testID))
	assert.NotEmpty(t, w.Body.Bytes())
}
