package assessment

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lectern/internal/controller/api"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/lshigami/Lectern/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ResultController struct {
	resultService service.ResultService
}

func NewResultController(resultService service.ResultService) *ResultController {
	return &ResultController{resultService: resultService}
}

// SubmitResult godoc
// @Summary Submit a test result
// @Description Records the caller's score and answers. The score is stored exactly as sent.
// @Tags Results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Param result body dto.TestResultSubmitRequest true "Score and answers payload"
// @Success 201 {object} dto.TestResultResponse
// @Failure 400 {object} dto.ErrorResponse "Score or answers missing"
// @Failure 401 {object} dto.ErrorResponse "Missing credentials"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id}/submit [post]
func (ctl *ResultController) SubmitResult(c *gin.Context) {
	testID, ok := api.ParamID(c, "test_id")
	if !ok {
		return
	}
	var req dto.TestResultSubmitRequest
	if !api.BindJSON(c, &req) {
		return
	}
	resp, err := ctl.resultService.SubmitResult(c.Request.Context(), api.ActorFrom(c), testID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListResults godoc
// @Summary List a test's results
// @Description Most recent first.
// @Tags Results
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {array} dto.TestResultResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id}/results [get]
func (ctl *ResultController) ListResults(c *gin.Context) {
	testID, ok := api.ParamID(c, "test_id")
	if !ok {
		return
	}
	resp, err := ctl.resultService.ListResults(c.Request.Context(), api.ActorFrom(c), testID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportResults godoc
// @Summary Export a test's results as XLSX
// @Tags Results
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param test_id path int true "Test ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id}/results/export [get]
func (ctl *ResultController) ExportResults(c *gin.Context) {
	testID, ok := api.ParamID(c, "test_id")
	if !ok {
		return
	}
	data, err := ctl.resultService.ExportResults(c.Request.Context(), api.ActorFrom(c), testID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="test-%d-results.xlsx"`, testID))
	c.Data(http.StatusOK, xlsxContentType, data)
}
