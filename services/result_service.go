package services

import (
	"context"

	"quizforge/engine"
	"quizforge/models"

	"gorm.io/gorm"
)

// ResultService fronts the result engine for the HTTP layer and adds the
// listing queries that live outside the engine's scope.
type ResultService struct {
	db     *gorm.DB
	engine *engine.Engine
}

func NewResultService(db *gorm.DB, eng *engine.Engine) *ResultService {
	return &ResultService{db: db, engine: eng}
}

type SubmitRequest struct {
	QuizID    uint   `json:"quiz_id" binding:"required"`
	AnswerIDs []uint `json:"answers" binding:"required"`
}

func (s *ResultService) Submit(ctx context.Context, userID *uint, req *SubmitRequest) (*engine.EnrichedResult, error) {
	return s.engine.SubmitQuiz(ctx, engine.Submission{
		QuizID:    req.QuizID,
		UserID:    userID,
		AnswerIDs: req.AnswerIDs,
	})
}

func (s *ResultService) GetResult(ctx context.Context, resultID uint) (*engine.EnrichedResult, error) {
	return s.engine.GetResult(ctx, resultID)
}

func (s *ResultService) GetResultsByQuiz(quizID uint, skip, limit int) ([]models.Result, error) {
	var results []models.Result
	err := s.db.Where("quiz_id = ?", quizID).
		Order("created_at DESC").
		Offset(skip).Limit(clampLimit(limit)).
		Find(&results).Error
	return results, err
}

func (s *ResultService) GetResultsByUser(userID uint, skip, limit int) ([]models.Result, error) {
	var results []models.Result
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(skip).Limit(clampLimit(limit)).
		Find(&results).Error
	return results, err
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
