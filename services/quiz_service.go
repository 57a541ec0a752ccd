package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"quizforge/models"

	"gorm.io/gorm"
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type CreateQuizRequest struct {
	Title         string                   `json:"title" binding:"required"`
	Description   string                   `json:"description"`
	Type          string                   `json:"type" binding:"required,oneof=trivia personality"`
	Personalities []models.PersonalityType `json:"personalities"`
	Questions     []CreateQuestionRequest  `json:"questions" binding:"required,min=1"`
}

type CreateQuestionRequest struct {
	Text    string                `json:"text" binding:"required"`
	Answers []CreateAnswerRequest `json:"answers" binding:"required,min=2,max=6"`
}

type CreateAnswerRequest struct {
	Text               string             `json:"text" binding:"required"`
	IsCorrect          bool               `json:"is_correct"`
	PersonalityTag     *string            `json:"personality_tag"`
	PersonalityWeights map[string]float64 `json:"personality_weights"`
}

type UpdateQuizRequest struct {
	Title         string                   `json:"title"`
	Description   string                   `json:"description"`
	Personalities []models.PersonalityType `json:"personalities"`
	Questions     []CreateQuestionRequest  `json:"questions"`
}

func (s *QuizService) CreateQuiz(userID *uint, req *CreateQuizRequest) (*models.Quiz, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	quiz := models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		CreatedBy:   userID,
	}
	if encoded, err := encodeCatalog(req.Personalities); err != nil {
		tx.Rollback()
		return nil, err
	} else if encoded != nil {
		quiz.Personalities = encoded
	}

	if err := tx.Create(&quiz).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := createQuestions(tx, &quiz, req.Questions); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetQuiz(quiz.ID)
}

func createQuestions(tx *gorm.DB, quiz *models.Quiz, questions []CreateQuestionRequest) error {
	for _, qReq := range questions {
		question := models.Question{
			QuizID: quiz.ID,
			Text:   qReq.Text,
		}
		if err := tx.Create(&question).Error; err != nil {
			return err
		}

		// Trivia questions need exactly one correct answer; personality
		// questions carry tags or weights instead.
		if quiz.Type == models.QuizTypeTrivia {
			correctCount := 0
			for _, aReq := range qReq.Answers {
				if aReq.IsCorrect {
					correctCount++
				}
			}
			if correctCount != 1 {
				return errors.New("each trivia question must have exactly one correct answer")
			}
		}

		for _, aReq := range qReq.Answers {
			answer := models.Answer{
				QuestionID:     question.ID,
				Text:           aReq.Text,
				IsCorrect:      aReq.IsCorrect,
				PersonalityTag: aReq.PersonalityTag,
			}
			if len(aReq.PersonalityWeights) > 0 {
				encoded, err := json.Marshal(aReq.PersonalityWeights)
				if err != nil {
					return fmt.Errorf("encoding answer weights: %w", err)
				}
				s := string(encoded)
				answer.PersonalityWeights = &s
			}
			if err := tx.Create(&answer).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *QuizService) GetQuizzes(quizType string, skip, limit int) ([]models.Quiz, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	query := s.db.Preload("Creator").Order("created_at DESC")
	if quizType != "" {
		query = query.Where("type = ?", quizType)
	}
	var quizzes []models.Quiz
	if err := query.Offset(skip).Limit(limit).Find(&quizzes).Error; err != nil {
		return nil, err
	}
	for i := range quizzes {
		decodeCatalogView(&quizzes[i])
	}
	return quizzes, nil
}

func (s *QuizService) GetQuiz(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.Preload("Creator").
		Preload("Questions").
		Preload("Questions.Answers").
		First(&quiz, quizID).Error
	if err != nil {
		return nil, err
	}
	decodeCatalogView(&quiz)
	return &quiz, nil
}

func (s *QuizService) UpdateQuiz(quizID uint, userID uint, req *UpdateQuizRequest) (*models.Quiz, error) {
	quiz, err := s.ownedQuiz(quizID, userID)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if req.Title != "" {
		quiz.Title = req.Title
	}
	if req.Description != "" {
		quiz.Description = req.Description
	}
	if req.Personalities != nil {
		encoded, err := encodeCatalog(req.Personalities)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		quiz.Personalities = encoded
	}

	if err := tx.Save(quiz).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Replacing questions replaces their answers with them.
	if req.Questions != nil {
		var questionIDs []uint
		if err := tx.Model(&models.Question{}).Where("quiz_id = ?", quizID).Pluck("id", &questionIDs).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.Answer{}).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
			if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
		if err := createQuestions(tx, quiz, req.Questions); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetQuiz(quiz.ID)
}

func (s *QuizService) DeleteQuiz(quizID uint, userID uint) error {
	if _, err := s.ownedQuiz(quizID, userID); err != nil {
		return err
	}
	return s.db.Delete(&models.Quiz{}, quizID).Error
}

func (s *QuizService) ownedQuiz(quizID uint, userID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		return nil, err
	}
	if quiz.CreatedBy == nil || *quiz.CreatedBy != userID {
		return nil, errors.New("quiz does not belong to this user")
	}
	return &quiz, nil
}

func encodeCatalog(catalog []models.PersonalityType) (*string, error) {
	if len(catalog) == 0 {
		return nil, nil
	}
	encoded, err := json.Marshal(catalog)
	if err != nil {
		return nil, fmt.Errorf("encoding personality catalog: %w", err)
	}
	s := string(encoded)
	return &s, nil
}

func decodeCatalogView(quiz *models.Quiz) {
	if catalog, err := quiz.PersonalityCatalog(); err == nil {
		quiz.PersonalityTypes = catalog
	}
}
