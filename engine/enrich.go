package engine

import (
	"context"
	"errors"
	"log"

	"quizforge/models"
)

// GetResult returns the enriched view of a stored result: the decoded outcome
// payload with display fields back-filled from the quiz's current catalog,
// plus supplementary content joined by exact personality name. A corrupt
// payload is dropped from the view rather than failing the read.
func (e *Engine) GetResult(ctx context.Context, resultID uint) (*EnrichedResult, error) {
	result, err := e.store.GetResult(ctx, resultID)
	if err != nil {
		return nil, err
	}

	view := &EnrichedResult{
		ID:          result.ID,
		QuizID:      result.QuizID,
		UserID:      result.UserID,
		Score:       result.Score,
		Personality: result.Personality,
		CreatedAt:   result.CreatedAt,
	}

	outcome, err := result.Outcome()
	if err != nil {
		log.Printf("result %d: dropping undecodable personality payload: %v", result.ID, err)
	} else if outcome != nil {
		e.backfillOutcome(ctx, result.QuizID, outcome)
		view.Outcome = outcome
	}

	if result.Personality != nil && *result.Personality != "" {
		content, err := e.store.GetPersonalityContent(ctx, *result.Personality)
		switch {
		case err == nil && content != nil:
			view.Content = &ContentView{
				Personality: content.Personality,
				Quote:       content.Quote,
				GifURL:      content.GifURL,
				Joke:        content.Joke,
			}
		case err != nil && !errors.Is(err, ErrNotFound):
			log.Printf("result %d: loading personality content failed: %v", result.ID, err)
		}
	}

	return view, nil
}

// backfillOutcome resolves display fields for older payloads that recorded an
// outcome id without a name. It reads the quiz's current catalog, so editing
// a quiz's definitions can change how historical results display; that is
// accepted behavior. Only absent fields are filled.
func (e *Engine) backfillOutcome(ctx context.Context, quizID uint, outcome *models.PersonalityOutcome) {
	if outcome.ID == "" || outcome.Name != "" {
		return
	}
	quiz, err := e.store.GetQuiz(ctx, quizID)
	if err != nil {
		log.Printf("quiz %d: back-fill lookup failed: %v", quizID, err)
		return
	}
	catalog, err := quiz.PersonalityCatalog()
	if err != nil {
		return
	}
	for _, def := range catalog {
		if def.ID != outcome.ID {
			continue
		}
		outcome.Name = def.Name
		if outcome.Description == "" {
			outcome.Description = def.Description
		}
		if outcome.Emoji == "" {
			outcome.Emoji = def.Emoji
		}
		if outcome.ImageURL == "" {
			outcome.ImageURL = def.ImageURL
		}
		return
	}
}
