package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lectern/internal/controller/api"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/lshigami/Lectern/internal/service"
)

type LessonController struct {
	lessonService service.LessonService
}

func NewLessonController(lessonService service.LessonService) *LessonController {
	return &LessonController{lessonService: lessonService}
}

// CreateLesson godoc
// @Summary Add a lesson to a course
// @Description Any authenticated user may add lessons.
// @Tags Lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param lesson body dto.LessonCreateRequest true "Lesson data"
// @Success 201 {object} dto.LessonResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Missing credentials"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{course_id}/lessons [post]
func (ctl *LessonController) CreateLesson(c *gin.Context) {
	courseID, ok := api.ParamID(c, "course_id")
	if !ok {
		return
	}
	var req dto.LessonCreateRequest
	if !api.BindJSON(c, &req) {
		return
	}
	resp, err := ctl.lessonService.CreateLesson(c.Request.Context(), api.ActorFrom(c), courseID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListLessons godoc
// @Summary List a course's lessons
// @Description Ordered by lesson order, then id. Each lesson embeds its sections.
// @Tags Lessons
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {array} dto.LessonResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{course_id}/lessons [get]
func (ctl *LessonController) ListLessons(c *gin.Context) {
	courseID, ok := api.ParamID(c, "course_id")
	if !ok {
		return
	}
	resp, err := ctl.lessonService.ListLessons(c.Request.Context(), api.ActorFrom(c), courseID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetLesson godoc
// @Summary Get a lesson
// @Tags Lessons
// @Produce json
// @Param course_id path int true "Course ID"
// @Param lesson_id path int true "Lesson ID"
// @Success 200 {object} dto.LessonResponse
// @Failure 404 {object} dto.ErrorResponse "Lesson not found in course"
// @Router /courses/{course_id}/lessons/{lesson_id} [get]
func (ctl *LessonController) GetLesson(c *gin.Context) {
	courseID, lessonID, ok := lessonPath(c)
	if !ok {
		return
	}
	resp, err := ctl.lessonService.GetLesson(c.Request.Context(), api.ActorFrom(c), courseID, lessonID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Description Partial update: omitted fields keep their value.
// @Tags Lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param lesson_id path int true "Lesson ID"
// @Param lesson body dto.LessonUpdateRequest true "Fields to change"
// @Success 200 {object} dto.LessonResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found in course"
// @Router /courses/{course_id}/lessons/{lesson_id} [put]
func (ctl *LessonController) UpdateLesson(c *gin.Context) {
	courseID, lessonID, ok := lessonPath(c)
	if !ok {
		return
	}
	var req dto.LessonUpdateRequest
	if !api.BindJSON(c, &req) {
		return
	}
	resp, err := ctl.lessonService.UpdateLesson(c.Request.Context(), api.ActorFrom(c), courseID, lessonID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Description Removes the lesson with its sections, tests and their results.
// @Tags Lessons
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param lesson_id path int true "Lesson ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Lesson not found in course"
// @Router /courses/{course_id}/lessons/{lesson_id} [delete]
func (ctl *LessonController) DeleteLesson(c *gin.Context) {
	courseID, lessonID, ok := lessonPath(c)
	if !ok {
		return
	}
	if err := ctl.lessonService.DeleteLesson(c.Request.Context(), api.ActorFrom(c), courseID, lessonID); err != nil {
		api.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func lessonPath(c *gin.Context) (courseID, lessonID uint, ok bool) {
	if courseID, ok = api.ParamID(c, "course_id"); !ok {
		return 0, 0, false
	}
	if lessonID, ok = api.ParamID(c, "lesson_id"); !ok {
		return 0, 0, false
	}
	return courseID, lessonID, true
}
