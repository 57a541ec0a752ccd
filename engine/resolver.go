package engine

import (
	"context"
	"fmt"

	"quizforge/models"
)

// resolve fetches the quiz and the submitted answers, restricted to answers
// that belong to the quiz. Submitted ids are collapsed to a set before the
// count check, so a submission like [5, 5] validates as one answer; that is
// long-standing behavior, kept as is.
func (e *Engine) resolve(ctx context.Context, quizID uint, answerIDs []uint) (*models.Quiz, []models.Answer, error) {
	quiz, err := e.store.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, nil, err
	}

	unique := dedupeIDs(answerIDs)
	answers, err := e.store.GetQuizAnswers(ctx, quizID, unique)
	if err != nil {
		return nil, nil, err
	}
	if len(answers) != len(unique) {
		return nil, nil, fmt.Errorf("%w: %d of %d answer ids resolved for quiz %d",
			ErrInvalidSubmission, len(answers), len(unique), quizID)
	}
	return quiz, answers, nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
