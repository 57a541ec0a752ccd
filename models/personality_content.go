package models

import "time"

// PersonalityContent is supplementary display content joined onto results by
// exact personality name at read time.
type PersonalityContent struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Personality string    `json:"personality" gorm:"uniqueIndex;not null"`
	Quote       string    `json:"quote,omitempty"`
	GifURL      string    `json:"gif_url,omitempty"`
	Joke        string    `json:"joke,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
