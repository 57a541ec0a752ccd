package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Answer carries up to two personality signals next to the trivia correctness
// flag: a legacy single tag and the per-outcome weight map used by weighted
// scoring. Either or both may be empty.
type Answer struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	QuestionID         uint      `json:"question_id" gorm:"not null"`
	Text               string    `json:"text" gorm:"not null"`
	IsCorrect          bool      `json:"is_correct" gorm:"not null;default:false"`
	PersonalityTag     *string   `json:"personality_tag,omitempty"`
	PersonalityWeights *string   `json:"personality_weights,omitempty" gorm:"type:text"` // serialized outcome id -> weight
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// Relationships
	Question *Question `json:"question,omitempty"`
}

// WeightMap decodes the stored weight contributions. Legacy rows carry a
// double-encoded object and sometimes string-typed numbers; both are accepted.
// Entries whose value is not numeric are dropped.
func (a *Answer) WeightMap() (map[string]float64, error) {
	if a.PersonalityWeights == nil || strings.TrimSpace(*a.PersonalityWeights) == "" {
		return nil, nil
	}
	raw := *a.PersonalityWeights

	var loose map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &loose); err != nil {
		var nested string
		if json.Unmarshal([]byte(raw), &nested) != nil || json.Unmarshal([]byte(nested), &loose) != nil {
			return nil, fmt.Errorf("answer %d: malformed personality weights", a.ID)
		}
	}

	weights := make(map[string]float64, len(loose))
	for id, value := range loose {
		switch v := value.(type) {
		case float64:
			weights[id] = v
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				weights[id] = f
			}
		}
	}
	return weights, nil
}
