package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lectern/internal/controller/api"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/lshigami/Lectern/internal/service"
)

type SectionController struct {
	sectionService service.SectionService
}

func NewSectionController(sectionService service.SectionService) *SectionController {
	return &SectionController{sectionService: sectionService}
}

// CreateSection godoc
// @Summary Add a section to a lesson
// @Tags Sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param lesson_id path int true "Lesson ID"
// @Param section body dto.SectionCreateRequest true "Section data"
// @Success 201 {object} dto.SectionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Missing credentials"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found in course"
// @Router /courses/{course_id}/lessons/{lesson_id}/sections [post]
func (ctl *SectionController) CreateSection(c *gin.Context) {
	courseID, lessonID, ok := lessonPath(c)
	if !ok {
		return
	}
	var req dto.SectionCreateRequest
	if !api.BindJSON(c, &req) {
		return
	}
	resp, err := ctl.sectionService.CreateSection(c.Request.Context(), api.ActorFrom(c), courseID, lessonID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListSections godoc
// @Summary List a lesson's sections
// @Tags Sections
// @Produce json
// @Param course_id path int true "Course ID"
// @Param lesson_id path int true "Lesson ID"
// @Success 200 {array} dto.SectionResponse
// @Failure 404 {object} dto.ErrorResponse "Lesson not found in course"
// @Router /courses/{course_id}/lessons/{lesson_id}/sections [get]
func (ctl *SectionController) ListSections(c *gin.Context) {
	courseID, lessonID, ok := lessonPath(c)
	if !ok {
		return
	}
	resp, err := ctl.sectionService.ListSections(c.Request.Context(), api.ActorFrom(c), courseID, lessonID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSection godoc
// @Summary Get a section
// @Tags Sections
// @Produce json
// @Param course_id path int true "Course ID"
// @Param lesson_id path int true "Lesson ID"
// @Param section_id path int true "Section ID"
// @Success 200 {object} dto.SectionResponse
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /courses/{course_id}/lessons/{lesson_id}/sections/{section_id} [get]
func (ctl *SectionController) GetSection(c *gin.Context) {
	courseID, lessonID, sectionID, ok := sectionPath(c)
	if !ok {
		return
	}
	resp, err := ctl.sectionService.GetSection(c.Request.Context(), api.ActorFrom(c), courseID, lessonID, sectionID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateSection godoc
// @Summary Update a section
// @Description Partial update: omitted fields keep their value.
// @Tags Sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param lesson_id path int true "Lesson ID"
// @Param section_id path int true "Section ID"
// @Param section body dto.SectionUpdateRequest true "Fields to change"
// @Success 200 {object} dto.SectionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /courses/{course_id}/lessons/{lesson_id}/sections/{section_id} [put]
func (ctl *SectionController) UpdateSection(c *gin.Context) {
	courseID, lessonID, sectionID, ok := sectionPath(c)
	if !ok {
		return
	}
	var req dto.SectionUpdateRequest
	if !api.BindJSON(c, &req) {
		return
	}
	resp, err := ctl.sectionService.UpdateSection(c.Request.Context(), api.ActorFrom(c), courseID, lessonID, sectionID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteSection godoc
// @Summary Delete a section
// @Tags Sections
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param lesson_id path int true "Lesson ID"
// @Param section_id path int true "Section ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /courses/{course_id}/lessons/{lesson_id}/sections/{section_id} [delete]
func (ctl *SectionController) DeleteSection(c *gin.Context) {
	courseID, lessonID, sectionID, ok := sectionPath(c)
	if !ok {
		return
	}
	if err := ctl.sectionService.DeleteSection(c.Request.Context(), api.ActorFrom(c), courseID, lessonID, sectionID); err != nil {
		api.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func sectionPath(c *gin.Context) (courseID, lessonID, sectionID uint, ok bool) {
	if courseID, lessonID, ok = lessonPath(c); !ok {
		return 0, 0, 0, false
	}
	if sectionID, ok = api.ParamID(c, "section_id"); !ok {
		return 0, 0, 0, false
	}
	return courseID, lessonID, sectionID, true
}
