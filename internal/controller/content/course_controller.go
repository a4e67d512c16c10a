package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lectern/internal/controller/api"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/lshigami/Lectern/internal/service"
)

type CourseController struct {
	courseService service.CourseService
}

func NewCourseController(courseService service.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse godoc
// @Summary Create a course
// @Description Teachers and admins create a course; the caller becomes its author.
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course body dto.CourseCreateRequest true "Course data"
// @Success 201 {object} dto.CourseResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Missing credentials"
// @Failure 403 {object} dto.ErrorResponse "Role may not create courses"
// @Router /courses [post]
func (ctl *CourseController) CreateCourse(c *gin.Context) {
	var req dto.CourseCreateRequest
	if !api.BindJSON(c, &req) {
		return
	}
	resp, err := ctl.courseService.CreateCourse(c.Request.Context(), api.ActorFrom(c), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListCourses godoc
// @Summary List courses
// @Description Newest courses first. Open to anonymous callers.
// @Tags Courses
// @Produce json
// @Success 200 {array} dto.CourseResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (ctl *CourseController) ListCourses(c *gin.Context) {
	resp, err := ctl.courseService.ListCourses(c.Request.Context(), api.ActorFrom(c))
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCourse godoc
// @Summary Get a course
// @Tags Courses
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.CourseResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{course_id} [get]
func (ctl *CourseController) GetCourse(c *gin.Context) {
	courseID, ok := api.ParamID(c, "course_id")
	if !ok {
		return
	}
	resp, err := ctl.courseService.GetCourse(c.Request.Context(), api.ActorFrom(c), courseID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateCourse godoc
// @Summary Update a course
// @Description Partial update: omitted fields keep their value. The author never changes.
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param course body dto.CourseUpdateRequest true "Fields to change"
// @Success 200 {object} dto.CourseResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Role may not edit courses"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{course_id} [put]
func (ctl *CourseController) UpdateCourse(c *gin.Context) {
	courseID, ok := api.ParamID(c, "course_id")
	if !ok {
		return
	}
	var req dto.CourseUpdateRequest
	if !api.BindJSON(c, &req) {
		return
	}
	resp, err := ctl.courseService.UpdateCourse(c.Request.Context(), api.ActorFrom(c), courseID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Description Removes the course with its lessons, sections, tests and results.
// @Tags Courses
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse "Role may not delete courses"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{course_id} [delete]
func (ctl *CourseController) DeleteCourse(c *gin.Context) {
	courseID, ok := api.ParamID(c, "course_id")
	if !ok {
		return
	}
	if err := ctl.courseService.DeleteCourse(c.Request.Context(), api.ActorFrom(c), courseID); err != nil {
		api.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
