package service

import (
	"bytes"
	"context"

	"github.com/lshigami/Lectern/internal/access"
	"github.com/lshigami/Lectern/internal/apperror"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/lshigami/Lectern/internal/model"
	"github.com/lshigami/Lectern/internal/repository"
	"github.com/rs/zerolog/log"
)

// ResultService records learner submissions. The score is stored as the client sent it;
// it is never recomputed from the test's correct answers.
type ResultService interface {
	SubmitResult(ctx context.Context, actor access.Actor, testID uint, req dto.TestResultSubmitRequest) (*dto.TestResultResponse, error)
	// ListResults returns the test's results, most recent first.
	ListResults(ctx context.Context, actor access.Actor, testID uint) ([]dto.TestResultResponse, error)
	// ExportResults renders the test's results as an XLSX workbook.
	ExportResults(ctx context.Context, actor access.Actor, testID uint) ([]byte, error)
}

type resultService struct {
	repos  *repository.Set
	policy access.Policy
}

func NewResultService(repos *repository.Set, policy access.Policy) ResultService {
	return &resultService{repos: repos, policy: policy}
}

func (s *resultService) requireTest(ctx context.Context, testID uint) (*model.Test, error) {
	test, err := s.repos.Tests.FindByID(ctx, testID)
	if err != nil {
		return nil, apperror.FromDB(err, "test", testID)
	}
	return test, nil
}

func (s *resultService) SubmitResult(ctx context.Context, actor access.Actor, testID uint, req dto.TestResultSubmitRequest) (*dto.TestResultResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceResult, access.OpWrite); err != nil {
		return nil, err
	}
	if _, err := s.requireTest(ctx, testID); err != nil {
		return nil, err
	}
	if req.Score == nil {
		return nil, apperror.Validation("score is required")
	}
	if isNullJSON(req.Answers) {
		return nil, apperror.Validation("answers is required")
	}

	result := model.TestResult{
		UserID:  actor.ID,
		TestID:  testID,
		Score:   *req.Score,
		Answers: req.Answers,
	}
	if err := s.repos.Results.Create(ctx, &result); err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("userID", actor.ID).Msg("Failed to record test result")
		return nil, apperror.Storage(err, "recording result for test %d", testID)
	}
	log.Info().Uint("testID", testID).Uint("userID", actor.ID).Int("score", result.Score).Msg("Test result recorded")

	resp := toTestResultResponse(&result)
	return &resp, nil
}

func isNullJSON(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func (s *resultService) ListResults(ctx context.Context, actor access.Actor, testID uint) ([]dto.TestResultResponse, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceResult, access.OpRead); err != nil {
		return nil, err
	}
	results, err := s.findResults(ctx, testID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TestResultResponse, 0, len(results))
	for i := range results {
		resp = append(resp, toTestResultResponse(&results[i]))
	}
	return resp, nil
}

func (s *resultService) findResults(ctx context.Context, testID uint) ([]model.TestResult, error) {
	if _, err := s.requireTest(ctx, testID); err != nil {
		return nil, err
	}
	results, err := s.repos.Results.FindByTestID(ctx, testID)
	if err != nil {
		return nil, apperror.Storage(err, "listing results of test %d", testID)
	}
	return results, nil
}

func (s *resultService) ExportResults(ctx context.Context, actor access.Actor, testID uint) ([]byte, error) {
	if err := access.Authorize(s.policy, actor, access.ResourceResult, access.OpRead); err != nil {
		return nil, err
	}
	results, err := s.findResults(ctx, testID)
	if err != nil {
		return nil, err
	}
	data, err := renderResultsWorkbook(results)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to render results workbook")
		return nil, apperror.Storage(err, "exporting results of test %d", testID)
	}
	return data, nil
}
