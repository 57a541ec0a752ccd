// Package store provides the persistence implementations behind the result
// engine: a gorm-backed store for production and an in-memory store for tests.
package store

import (
	"context"
	"errors"
	"fmt"

	"quizforge/engine"
	"quizforge/models"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetQuiz(ctx context.Context, quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.WithContext(ctx).
		Preload("Questions").
		Preload("Questions.Answers").
		First(&quiz, quizID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("quiz %d: %w", quizID, engine.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *GormStore) GetQuizAnswers(ctx context.Context, quizID uint, answerIDs []uint) ([]models.Answer, error) {
	if len(answerIDs) == 0 {
		return nil, nil
	}
	var answers []models.Answer
	err := s.db.WithContext(ctx).
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("answers.id IN ? AND questions.quiz_id = ?", answerIDs, quizID).
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (s *GormStore) CreateResult(ctx context.Context, result *models.Result) error {
	return s.db.WithContext(ctx).Create(result).Error
}

func (s *GormStore) GetResult(ctx context.Context, resultID uint) (*models.Result, error) {
	var result models.Result
	err := s.db.WithContext(ctx).First(&result, resultID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("result %d: %w", resultID, engine.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *GormStore) GetPersonalityContent(ctx context.Context, personality string) (*models.PersonalityContent, error) {
	var content models.PersonalityContent
	err := s.db.WithContext(ctx).Where("personality = ?", personality).First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("personality content %q: %w", personality, engine.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}
