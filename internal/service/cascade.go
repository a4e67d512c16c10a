package service

import (
	"context"

	"github.com/lshigami/Lectern/internal/model"
	"github.com/lshigami/Lectern/internal/repository"
)

// Cascades remove children before parents so they work with or without
// foreign key enforcement. Callers run them inside a transaction.

func deleteTests(ctx context.Context, repos *repository.Set, testIDs []uint) error {
	if len(testIDs) == 0 {
		return nil
	}
	questionIDs, err := repos.Questions.IDsByTestIDs(ctx, testIDs)
	if err != nil {
		return err
	}
	if err := repos.Answers.DeleteByQuestionIDs(ctx, questionIDs); err != nil {
		return err
	}
	if err := repos.Questions.DeleteByTestIDs(ctx, testIDs); err != nil {
		return err
	}
	if err := repos.Results.DeleteByTestIDs(ctx, testIDs); err != nil {
		return err
	}
	return repos.Tests.DeleteByIDs(ctx, testIDs)
}

func deleteLessons(ctx context.Context, repos *repository.Set, lessonIDs []uint) error {
	if len(lessonIDs) == 0 {
		return nil
	}
	testIDs, err := repos.Tests.IDsByLessonIDs(ctx, lessonIDs)
	if err != nil {
		return err
	}
	if err := deleteTests(ctx, repos, testIDs); err != nil {
		return err
	}
	if err := repos.Sections.DeleteByLessonIDs(ctx, lessonIDs); err != nil {
		return err
	}
	return repos.Lessons.DeleteByIDs(ctx, lessonIDs)
}

func deleteCourse(ctx context.Context, repos *repository.Set, courseID uint) error {
	lessonIDs, err := repos.Lessons.IDsByCourseID(ctx, courseID)
	if err != nil {
		return err
	}
	testIDs, err := repos.Tests.IDsByOwners(ctx, courseID, lessonIDs)
	if err != nil {
		return err
	}
	if err := deleteTests(ctx, repos, testIDs); err != nil {
		return err
	}
	if err := repos.Sections.DeleteByLessonIDs(ctx, lessonIDs); err != nil {
		return err
	}
	if err := repos.Lessons.DeleteByIDs(ctx, lessonIDs); err != nil {
		return err
	}
	return repos.Courses.Delete(ctx, courseID)
}

// replaceQuestions swaps the whole question/answer subtree of one test.
func replaceQuestions(ctx context.Context, repos *repository.Set, testID uint, questions []model.Question) error {
	ids := []uint{testID}
	questionIDs, err := repos.Questions.IDsByTestIDs(ctx, ids)
	if err != nil {
		return err
	}
	if err := repos.Answers.DeleteByQuestionIDs(ctx, questionIDs); err != nil {
		return err
	}
	if err := repos.Questions.DeleteByTestIDs(ctx, ids); err != nil {
		return err
	}
	return repos.Questions.CreateBatch(ctx, questions)
}
