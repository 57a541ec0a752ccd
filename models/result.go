package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Result is written exactly once per valid submission and never mutated.
// Exactly one of Score (trivia) or Personality/PersonalityData (personality
// quizzes) is normally set; all three stay nil when no strategy produced a
// signal.
type Result struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	QuizID          uint      `json:"quiz_id" gorm:"not null"`
	UserID          *uint     `json:"user_id"`
	Score           *int      `json:"score"`
	Personality     *string   `json:"personality"`
	PersonalityData *string   `json:"personality_data,omitempty" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"`

	// Relationships
	Quiz *Quiz `json:"quiz,omitempty"`
}

// Outcome decodes the stored personality payload, normalizing the legacy
// "winning" key into ID. Returns nil when the result has no payload.
func (r *Result) Outcome() (*PersonalityOutcome, error) {
	if r.PersonalityData == nil || *r.PersonalityData == "" {
		return nil, nil
	}
	var outcome PersonalityOutcome
	if err := json.Unmarshal([]byte(*r.PersonalityData), &outcome); err != nil {
		return nil, fmt.Errorf("result %d: malformed personality payload: %w", r.ID, err)
	}
	if outcome.ID == "" {
		outcome.ID = outcome.Winning
	}
	return &outcome, nil
}
