// Package engine computes quiz results. Given a quiz and a set of submitted
// answer ids it produces either a trivia score or a personality outcome,
// trying scoring strategies in order and falling back so that every validated
// submission persists exactly one Result.
package engine

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"quizforge/models"
)

// Store is the persistence surface the engine consumes. Implementations must
// return ErrNotFound (wrapped is fine) for missing quizzes, results, and
// content, and must restrict GetQuizAnswers to answers whose question belongs
// to the given quiz.
type Store interface {
	GetQuiz(ctx context.Context, quizID uint) (*models.Quiz, error)
	GetQuizAnswers(ctx context.Context, quizID uint, answerIDs []uint) ([]models.Answer, error)
	CreateResult(ctx context.Context, result *models.Result) error
	GetResult(ctx context.Context, resultID uint) (*models.Result, error)
	GetPersonalityContent(ctx context.Context, personality string) (*models.PersonalityContent, error)
}

type Engine struct {
	store Store
}

func New(store Store) *Engine {
	return &Engine{store: store}
}

// Submission is one user's set of chosen answers for a quiz. Answer order is
// irrelevant; duplicate ids collapse under set semantics.
type Submission struct {
	QuizID    uint
	UserID    *uint
	AnswerIDs []uint
}

// ContentView is the supplementary content attached to a personality result.
type ContentView struct {
	Personality string `json:"personality"`
	Quote       string `json:"quote,omitempty"`
	GifURL      string `json:"gif_url,omitempty"`
	Joke        string `json:"joke,omitempty"`
}

// EnrichedResult is the read-time view of a stored result.
type EnrichedResult struct {
	ID          uint                       `json:"id"`
	QuizID      uint                       `json:"quiz_id"`
	UserID      *uint                      `json:"user_id"`
	Score       *int                       `json:"score"`
	Personality *string                    `json:"personality"`
	CreatedAt   time.Time                  `json:"created_at"`
	Outcome     *models.PersonalityOutcome `json:"personality_outcome,omitempty"`
	Content     *ContentView               `json:"personality_content,omitempty"`
}

// SubmitQuiz validates the submission, scores it according to the quiz type,
// persists a Result and returns its enriched view. Only validation failures
// (ErrNotFound, ErrInvalidSubmission) and storage errors are returned; scoring
// failures degrade to simpler strategies and, at worst, a Result with nil
// score and nil personality.
func (e *Engine) SubmitQuiz(ctx context.Context, sub Submission) (*EnrichedResult, error) {
	quiz, answers, err := e.resolve(ctx, sub.QuizID, sub.AnswerIDs)
	if err != nil {
		return nil, err
	}

	result := &models.Result{QuizID: sub.QuizID, UserID: sub.UserID}
	if quiz.Type == models.QuizTypeTrivia {
		score := TriviaScore(answers)
		result.Score = &score
	} else {
		result.Personality, result.PersonalityData = e.scorePersonality(quiz, answers)
	}

	if err := e.store.CreateResult(ctx, result); err != nil {
		return nil, err
	}
	return e.GetResult(ctx, result.ID)
}

// scorePersonality runs the personality strategies in order. A strategy that
// errors and a strategy that finds no winner both advance the chain; they are
// logged differently because the former indicates bad stored data.
func (e *Engine) scorePersonality(quiz *models.Quiz, answers []models.Answer) (*string, *string) {
	for _, strat := range personalityStrategies(quiz, answers) {
		outcome, err := strat.run()
		if err != nil {
			log.Printf("quiz %d: %s scoring failed: %v", quiz.ID, strat.name, err)
			continue
		}
		if outcome == nil {
			log.Printf("quiz %d: %s scoring produced no winner", quiz.ID, strat.name)
			continue
		}

		var data *string
		if outcome.Payload != nil {
			encoded, err := json.Marshal(outcome.Payload)
			if err != nil {
				log.Printf("quiz %d: encoding %s payload failed: %v", quiz.ID, strat.name, err)
			} else {
				s := string(encoded)
				data = &s
			}
		}
		personality := outcome.Personality
		return &personality, data
	}
	return nil, nil
}
