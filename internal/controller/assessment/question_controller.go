package assessment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lectern/internal/controller/api"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/lshigami/Lectern/internal/service"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// ListQuestions godoc
// @Summary List a test's questions
// @Tags Questions
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {array} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id}/questions [get]
func (ctl *QuestionController) ListQuestions(c *gin.Context) {
	testID, ok := api.ParamID(c, "test_id")
	if !ok {
		return
	}
	resp, err := ctl.questionService.ListQuestions(c.Request.Context(), api.ActorFrom(c), testID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddQuestion godoc
// @Summary Append a question to a test
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Param question body dto.QuestionInput true "Question with ordered answers"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Role may not edit tests"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id}/questions [post]
func (ctl *QuestionController) AddQuestion(c *gin.Context) {
	testID, ok := api.ParamID(c, "test_id")
	if !ok {
		return
	}
	var req dto.QuestionInput
	if !api.BindJSON(c, &req) {
		return
	}
	resp, err := ctl.questionService.AddQuestion(c.Request.Context(), api.ActorFrom(c), testID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListAnswers godoc
// @Summary List a question's answers
// @Tags Questions
// @Produce json
// @Param test_id path int true "Test ID"
// @Param question_id path int true "Question ID"
// @Success 200 {array} dto.AnswerResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found in test"
// @Router /tests/{test_id}/questions/{question_id}/answers [get]
func (ctl *QuestionController) ListAnswers(c *gin.Context) {
	testID, questionID, ok := questionPath(c)
	if !ok {
		return
	}
	resp, err := ctl.questionService.ListAnswers(c.Request.Context(), api.ActorFrom(c), testID, questionID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddAnswer godoc
// @Summary Append an answer to a question
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Param question_id path int true "Question ID"
// @Param answer body dto.AnswerInput true "Answer"
// @Success 201 {object} dto.AnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Role may not edit tests"
// @Failure 404 {object} dto.ErrorResponse "Question not found in test"
// @Router /tests/{test_id}/questions/{question_id}/answers [post]
func (ctl *QuestionController) AddAnswer(c *gin.Context) {
	testID, questionID, ok := questionPath(c)
	if !ok {
		return
	}
	var req dto.AnswerInput
	if !api.BindJSON(c, &req) {
		return
	}
	resp, err := ctl.questionService.AddAnswer(c.Request.Context(), api.ActorFrom(c), testID, questionID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func questionPath(c *gin.Context) (testID, questionID uint, ok bool) {
	if testID, ok = api.ParamID(c, "test_id"); !ok {
		return 0, 0, false
	}
	if questionID, ok = api.ParamID(c, "question_id"); !ok {
		return 0, 0, false
	}
	return testID, questionID, true
}
