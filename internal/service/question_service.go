package service

import (
	"context"

	"github.com/lshigami/Lectern/internal/access"
	"github.com/lshigami/Lectern/internal/apperror"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/lshigami/Lectern/internal/model"
	"github.com/lshigami/Lectern/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuestionService edits a test's questions and answers one item at a time.
// New items are appended after the current last position.
type QuestionService interface {
	ListQuestions(ctx context.Context, actor access.Actor, testID uint) ([]dto.QuestionResponse, error)
	AddQuestion(ctx context.Context, actor access.Actor, testID uint, req dto.QuestionInput) (*dto.QuestionResponse, error)
	ListAnswers(ctx context.Context, actor access.Actor, testID, questionID uint) ([]dto.AnswerResponse, error)
	AddAnswer(ctx context.Context, actor access.Actor, testID, questionID uint, req dto.AnswerInput) (*dto.AnswerResponse, error)
}

type questionService struct {
	db     *gorm.DB
	repos  *repository.Set
	policy access.Policy
}

func NewQuestionService(db *gorm.DB, repos *repository.Set, policy access.Policy) QuestionService {
	return &questionService{db: db, repos: repos, policy: policy}
}

func (s *questionService) requireTest(ctx context.Context, testID uint) error {
	if _, err := s.repos.Tests.FindByID(ctx, testID); err != nil {
		return apperror.FromDB(err, "test", testID)
	}
	return nil
}

func (s *questionService) ListQuestions(ctx context.Context, actor access.Actor, testID uint) ([]dto.QuestionResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceTest, access.OpRead); err != nil {
		return nil, err
	}
	if err := s.requireTest(ctx, testID); err != nil {
		return nil, err
	}
	questions, err := s.repos.Questions.FindByTestID(ctx, testID)
	if err != nil {
		return nil, apperror.Storage(err, "listing questions of test %d", testID)
	}
	resp := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		resp = append(resp, toQuestionResponse(&questions[i]))
	}
	return resp, nil
}

func (s *questionService) AddQuestion(ctx context.Context, actor access.Actor, testID uint, req dto.QuestionInput) (*dto.QuestionResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceTest, access.OpWrite); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := s.requireTest(ctx, testID); err != nil {
		return nil, err
	}

	var question model.Question
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := s.repos.WithTx(tx)
		next, err := repos.Questions.NextPosition(ctx, testID)
		if err != nil {
			return err
		}
		questions := buildQuestions(testID, []dto.QuestionInput{req}, next)
		if err := repos.Questions.CreateBatch(ctx, questions); err != nil {
			return err
		}
		question = questions[0]
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to add question to test")
		return nil, apperror.Storage(err, "adding question to test %d", testID)
	}

	resp := toQuestionResponse(&question)
	return &resp, nil
}

func (s *questionService) findQuestion(ctx context.Context, testID, questionID uint) (*model.Question, error) {
	if err := s.requireTest(ctx, testID); err != nil {
		return nil, err
	}
	question, err := s.repos.Questions.FindInTest(ctx, testID, questionID)
	if err != nil {
		return nil, apperror.FromDB(err, "question", questionID)
	}
	return question, nil
}

func (s *questionService) ListAnswers(ctx context.Context, actor access.Actor, testID, questionID uint) ([]dto.AnswerResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceTest, access.OpRead); err != nil {
		return nil, err
	}
	question, err := s.findQuestion(ctx, testID, questionID)
	if err != nil {
		return nil, err
	}
	return toQuestionResponse(question).Answers, nil
}

func (s *questionService) AddAnswer(ctx context.Context, actor access.Actor, testID, questionID uint, req dto.AnswerInput) (*dto.AnswerResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceTest, access.OpWrite); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if _, err := s.findQuestion(ctx, testID, questionID); err != nil {
		return nil, err
	}

	var answer model.Answer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := s.repos.WithTx(tx)
		next, err := repos.Answers.NextPosition(ctx, questionID)
		if err != nil {
			return err
		}
		answer = buildAnswers(questionID, []dto.AnswerInput{req}, next)[0]
		return repos.Answers.Create(ctx, &answer)
	})
	if err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("Failed to add answer to question")
		return nil, apperror.Storage(err, "adding answer to question %d", questionID)
	}

	resp := toAnswerResponse(&answer)
	return &resp, nil
}
