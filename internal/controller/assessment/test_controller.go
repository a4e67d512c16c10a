package assessment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lectern/internal/controller/api"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/lshigami/Lectern/internal/service"
)

// TestController serves the test aggregate under three route shapes: lesson tests,
// course final tests, and the unscoped /tests/:test_id lookup.
type TestController struct {
	testService service.TestService
}

func NewTestController(testService service.TestService) *TestController {
	return &TestController{testService: testService}
}

// scopeFunc reads the owner scope from the route.
type scopeFunc func(c *gin.Context) (service.TestScope, bool)

func lessonScope(c *gin.Context) (service.TestScope, bool) {
	courseID, ok := api.ParamID(c, "course_id")
	if !ok {
		return service.TestScope{}, false
	}
	lessonID, ok := api.ParamID(c, "lesson_id")
	if !ok {
		return service.TestScope{}, false
	}
	return service.LessonScope(courseID, lessonID), true
}

func finalTestScope(c *gin.Context) (service.TestScope, bool) {
	courseID, ok := api.ParamID(c, "course_id")
	if !ok {
		return service.TestScope{}, false
	}
	return service.FinalTestScope(courseID), true
}

func anyScope(*gin.Context) (service.TestScope, bool) {
	return service.TestScope{}, true
}

// CreateLessonTest godoc
// @Summary Create a lesson test
// @Description Creates the test with all its questions and answers in one transaction. The owning lesson comes from the path.
// @Tags Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param lesson_id path int true "Lesson ID"
// @Param test body dto.TestCreateRequest true "Test with ordered questions and answers"
// @Success 201 {object} dto.TestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Role may not create tests"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found in course"
// @Router /courses/{course_id}/lessons/{lesson_id}/tests [post]
func (ctl *TestController) CreateLessonTest(c *gin.Context) {
	scope, ok := lessonScope(c)
	if !ok {
		return
	}
	var req dto.TestCreateRequest
	if !api.BindJSON(c, &req) {
		return
	}
	resp, err := ctl.testService.CreateLessonTest(c.Request.Context(), api.ActorFrom(c), *scope.CourseID, *scope.LessonID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CreateFinalTest godoc
// @Summary Create a course final test
// @Description The owning course comes from the path; any course or lesson ids in the body are ignored.
// @Tags Final tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param test body dto.TestCreateRequest true "Test with ordered questions and answers"
// @Success 201 {object} dto.TestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Role may not create tests"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{course_id}/final-tests [post]
func (ctl *TestController) CreateFinalTest(c *gin.Context) {
	courseID, ok := api.ParamID(c, "course_id")
	if !ok {
		return
	}
	var req dto.TestCreateRequest
	if !api.BindJSON(c, &req) {
		return
	}
	resp, err := ctl.testService.CreateFinalTest(c.Request.Context(), api.ActorFrom(c), courseID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListLessonTests godoc
// @Summary List a lesson's tests
// @Tags Tests
// @Produce json
// @Param course_id path int true "Course ID"
// @Param lesson_id path int true "Lesson ID"
// @Success 200 {array} dto.TestResponse
// @Failure 404 {object} dto.ErrorResponse "Lesson not found in course"
// @Router /courses/{course_id}/lessons/{lesson_id}/tests [get]
func (ctl *TestController) ListLessonTests(c *gin.Context) {
	scope, ok := lessonScope(c)
	if !ok {
		return
	}
	resp, err := ctl.testService.ListLessonTests(c.Request.Context(), api.ActorFrom(c), *scope.CourseID, *scope.LessonID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListFinalTests godoc
// @Summary List a course's final tests
// @Description Only tests attached to the course itself; lesson tests never appear here.
// @Tags Final tests
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {array} dto.TestResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{course_id}/final-tests [get]
func (ctl *TestController) ListFinalTests(c *gin.Context) {
	courseID, ok := api.ParamID(c, "course_id")
	if !ok {
		return
	}
	resp, err := ctl.testService.ListFinalTests(c.Request.Context(), api.ActorFrom(c), courseID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetLessonTest godoc
// @Summary Get a lesson test
// @Tags Tests
// @Produce json
// @Param course_id path int true "Course ID"
// @Param lesson_id path int true "Lesson ID"
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found in lesson"
// @Router /courses/{course_id}/lessons/{lesson_id}/tests/{test_id} [get]
func (ctl *TestController) GetLessonTest(c *gin.Context) { ctl.get(c, lessonScope) }

// GetFinalTest godoc
// @Summary Get a course final test
// @Tags Final tests
// @Produce json
// @Param course_id path int true "Course ID"
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found in course"
// @Router /courses/{course_id}/final-tests/{test_id} [get]
func (ctl *TestController) GetFinalTest(c *gin.Context) { ctl.get(c, finalTestScope) }

// GetTest godoc
// @Summary Get any test by id
// @Tags Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id} [get]
func (ctl *TestController) GetTest(c *gin.Context) { ctl.get(c, anyScope) }

func (ctl *TestController) get(c *gin.Context, scopeOf scopeFunc) {
	scope, ok := scopeOf(c)
	if !ok {
		return
	}
	testID, ok := api.ParamID(c, "test_id")
	if !ok {
		return
	}
	resp, err := ctl.testService.GetTest(c.Request.Context(), api.ActorFrom(c), testID, scope)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateLessonTest godoc
// @Summary Update a lesson test
// @Description Title and description merge. A questions field, even an empty list, replaces every question and answer; omit it to keep them.
// @Tags Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param lesson_id path int true "Lesson ID"
// @Param test_id path int true "Test ID"
// @Param test body dto.TestUpdateRequest true "Fields to change"
// @Success 200 {object} dto.TestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Role may not edit tests"
// @Failure 404 {object} dto.ErrorResponse "Test not found in lesson"
// @Router /courses/{course_id}/lessons/{lesson_id}/tests/{test_id} [put]
func (ctl *TestController) UpdateLessonTest(c *gin.Context) { ctl.update(c, lessonScope) }

// UpdateFinalTest godoc
// @Summary Update a course final test
// @Description Same replace semantics as lesson tests.
// @Tags Final tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param test_id path int true "Test ID"
// @Param test body dto.TestUpdateRequest true "Fields to change"
// @Success 200 {object} dto.TestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Role may not edit tests"
// @Failure 404 {object} dto.ErrorResponse "Test not found in course"
// @Router /courses/{course_id}/final-tests/{test_id} [put]
func (ctl *TestController) UpdateFinalTest(c *gin.Context) { ctl.update(c, finalTestScope) }

func (ctl *TestController) update(c *gin.Context, scopeOf scopeFunc) {
	scope, ok := scopeOf(c)
	if !ok {
		return
	}
	testID, ok := api.ParamID(c, "test_id")
	if !ok {
		return
	}
	var req dto.TestUpdateRequest
	if !api.BindJSON(c, &req) {
		return
	}
	resp, err := ctl.testService.UpdateTest(c.Request.Context(), api.ActorFrom(c), testID, scope, req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteLessonTest godoc
// @Summary Delete a lesson test
// @Tags Tests
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param lesson_id path int true "Lesson ID"
// @Param test_id path int true "Test ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse "Role may not delete tests"
// @Failure 404 {object} dto.ErrorResponse "Test not found in lesson"
// @Router /courses/{course_id}/lessons/{lesson_id}/tests/{test_id} [delete]
func (ctl *TestController) DeleteLessonTest(c *gin.Context) { ctl.delete(c, lessonScope) }

// DeleteFinalTest godoc
// @Summary Delete a course final test
// @Tags Final tests
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param test_id path int true "Test ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse "Role may not delete tests"
// @Failure 404 {object} dto.ErrorResponse "Test not found in course"
// @Router /courses/{course_id}/final-tests/{test_id} [delete]
func (ctl *TestController) DeleteFinalTest(c *gin.Context) { ctl.delete(c, finalTestScope) }

func (ctl *TestController) delete(c *gin.Context, scopeOf scopeFunc) {
	scope, ok := scopeOf(c)
	if !ok {
		return
	}
	testID, ok := api.ParamID(c, "test_id")
	if !ok {
		return
	}
	if err := ctl.testService.DeleteTest(c.Request.Context(), api.ActorFrom(c), testID, scope); err != nil {
		api.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
