package models

import "time"

type DailyJoke struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Date      string    `json:"date" gorm:"uniqueIndex;not null"` // YYYY-MM-DD
	Joke      string    `json:"joke" gorm:"not null"`
	Source    string    `json:"source" gorm:"not null"` // openai, fallback
	CreatedAt time.Time `json:"created_at"`
}

type JokeSuggestion struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	SuggestionText string    `json:"suggestion_text" gorm:"not null"`
	UserID         *uint     `json:"user_id"`
	Used           bool      `json:"used" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at"`
}
