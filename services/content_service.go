package services

import (
	"errors"

	"quizforge/models"

	"gorm.io/gorm"
)

type ContentService struct {
	db *gorm.DB
}

func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{db: db}
}

func (s *ContentService) GetContent(personality string) (*models.PersonalityContent, error) {
	var content models.PersonalityContent
	err := s.db.Where("personality = ?", personality).First(&content).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

type UpsertContentRequest struct {
	Personality string `json:"personality" binding:"required"`
	Quote       string `json:"quote"`
	GifURL      string `json:"gif_url"`
	Joke        string `json:"joke"`
}

// UpsertContent creates content for a personality name or overwrites the
// non-empty fields of an existing row.
func (s *ContentService) UpsertContent(req *UpsertContentRequest) (*models.PersonalityContent, error) {
	var content models.PersonalityContent
	err := s.db.Where("personality = ?", req.Personality).First(&content).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		content = models.PersonalityContent{
			Personality: req.Personality,
			Quote:       req.Quote,
			GifURL:      req.GifURL,
			Joke:        req.Joke,
		}
		if err := s.db.Create(&content).Error; err != nil {
			return nil, err
		}
		return &content, nil
	case err != nil:
		return nil, err
	}

	if req.Quote != "" {
		content.Quote = req.Quote
	}
	if req.GifURL != "" {
		content.GifURL = req.GifURL
	}
	if req.Joke != "" {
		content.Joke = req.Joke
	}
	if err := s.db.Save(&content).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

// Seed installs a starter content set so fresh personalities resolve to
// something presentable.
func (s *ContentService) Seed() error {
	samples := []UpsertContentRequest{
		{
			Personality: "adventurer",
			Quote:       "Life is either a daring adventure or nothing at all.",
			GifURL:      "https://media.giphy.com/media/adventure/giphy.gif",
			Joke:        "Why don't mountains get cold? They wear snow caps!",
		},
		{
			Personality: "thinker",
			Quote:       "I think, therefore I am.",
			GifURL:      "https://media.giphy.com/media/thinking/giphy.gif",
			Joke:        "Why did the philosopher bring a ladder? To reach higher thoughts!",
		},
		{
			Personality: "creative",
			Quote:       "Creativity is intelligence having fun.",
			GifURL:      "https://media.giphy.com/media/creative/giphy.gif",
			Joke:        "What do you call a creative artist? A master-piece worker!",
		},
	}
	for i := range samples {
		if _, err := s.UpsertContent(&samples[i]); err != nil {
			return err
		}
	}
	return nil
}
