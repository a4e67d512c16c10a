package service

import (
	"github.com/jinzhu/copier"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/lshigami/Lectern/internal/model"
)

// Views always carry non-nil child slices so an empty collection renders as [].

func toCourseResponse(c *model.Course) dto.CourseResponse {
	var resp dto.CourseResponse
	copier.Copy(&resp, c)
	return resp
}

func toLessonResponse(l *model.Lesson) dto.LessonResponse {
	var resp dto.LessonResponse
	copier.Copy(&resp, l)
	resp.Sections = make([]dto.SectionResponse, 0, len(l.Sections))
	for i := range l.Sections {
		resp.Sections = append(resp.Sections, toSectionResponse(&l.Sections[i]))
	}
	return resp
}

func toSectionResponse(s *model.Section) dto.SectionResponse {
	var resp dto.SectionResponse
	copier.Copy(&resp, s)
	return resp
}

func toAnswerResponse(a *model.Answer) dto.AnswerResponse {
	var resp dto.AnswerResponse
	copier.Copy(&resp, a)
	return resp
}

func toQuestionResponse(q *model.Question) dto.QuestionResponse {
	resp := dto.QuestionResponse{
		ID:       q.ID,
		TestID:   q.TestID,
		Text:     q.Text,
		Position: q.Position,
		Answers:  make([]dto.AnswerResponse, 0, len(q.Answers)),
	}
	for i := range q.Answers {
		resp.Answers = append(resp.Answers, toAnswerResponse(&q.Answers[i]))
	}
	return resp
}

func toTestResponse(t *model.Test) dto.TestResponse {
	resp := dto.TestResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		OwnerKind:   string(t.Owner().Kind()),
		LessonID:    t.LessonID,
		CourseID:    t.CourseID,
		Questions:   make([]dto.QuestionResponse, 0, len(t.Questions)),
	}
	for i := range t.Questions {
		resp.Questions = append(resp.Questions, toQuestionResponse(&t.Questions[i]))
	}
	return resp
}

func toTestResultResponse(r *model.TestResult) dto.TestResultResponse {
	var resp dto.TestResultResponse
	copier.Copy(&resp, r)
	return resp
}

// buildQuestions turns request payloads into models, numbering questions and
// answers by their position in the payload, starting at first.
func buildQuestions(testID uint, inputs []dto.QuestionInput, first int) []model.Question {
	questions := make([]model.Question, 0, len(inputs))
	for i, in := range inputs {
		q := model.Question{TestID: testID, Text: in.Text, Position: first + i}
		q.Answers = buildAnswers(0, in.Answers, 0)
		questions = append(questions, q)
	}
	return questions
}

func buildAnswers(questionID uint, inputs []dto.AnswerInput, first int) []model.Answer {
	answers := make([]model.Answer, 0, len(inputs))
	for i, in := range inputs {
		answers = append(answers, model.Answer{
			QuestionID: questionID,
			Text:       in.Text,
			IsCorrect:  in.IsCorrect,
			Position:   first + i,
		})
	}
	return answers
}
