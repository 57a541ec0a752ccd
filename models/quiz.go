package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	QuizTypeTrivia      = "trivia"
	QuizTypePersonality = "personality"
)

type Quiz struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Title         string         `json:"title" gorm:"not null"`
	Description   string         `json:"description"`
	Type          string         `json:"type" gorm:"not null"` // trivia, personality
	CreatedBy     *uint          `json:"created_by"`
	Personalities *string        `json:"-" gorm:"type:text"` // serialized outcome-definition catalog
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	// Decoded view of Personalities, filled at the storage boundary.
	PersonalityTypes []PersonalityType `json:"personalities,omitempty" gorm:"-"`

	// Relationships
	Creator   *User      `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	Results   []Result   `json:"results,omitempty" gorm:"foreignKey:QuizID"`
}

// HasPersonalityCatalog reports whether the quiz declares an outcome-definition
// catalog, without attempting to decode it.
func (q *Quiz) HasPersonalityCatalog() bool {
	return q.Personalities != nil && strings.TrimSpace(*q.Personalities) != ""
}

// PersonalityCatalog decodes the stored outcome-definition catalog. Older rows
// were written double-encoded, so a string-wrapped catalog is unwrapped first.
func (q *Quiz) PersonalityCatalog() ([]PersonalityType, error) {
	if !q.HasPersonalityCatalog() {
		return nil, nil
	}
	raw := *q.Personalities

	var defs []PersonalityType
	if err := json.Unmarshal([]byte(raw), &defs); err == nil {
		return defs, nil
	}

	var nested string
	if err := json.Unmarshal([]byte(raw), &nested); err == nil {
		if err := json.Unmarshal([]byte(nested), &defs); err == nil {
			return defs, nil
		}
	}

	return nil, fmt.Errorf("quiz %d: malformed personality catalog", q.ID)
}
