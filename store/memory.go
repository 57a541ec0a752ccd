package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"quizforge/engine"
	"quizforge/models"
)

// MemoryStore implements engine.Store in memory. It backs the engine and
// handler tests; nothing in the serving path uses it.
type MemoryStore struct {
	mu           sync.RWMutex
	quizzes      map[uint]*models.Quiz
	answerOwner  map[uint]uint // answer id -> quiz id
	answers      map[uint]models.Answer
	results      map[uint]*models.Result
	content      map[string]*models.PersonalityContent
	nextResultID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		quizzes:     make(map[uint]*models.Quiz),
		answerOwner: make(map[uint]uint),
		answers:     make(map[uint]models.Answer),
		results:     make(map[uint]*models.Result),
		content:     make(map[string]*models.PersonalityContent),
	}
}

// AddQuiz registers a quiz and indexes the answers of its questions.
func (s *MemoryStore) AddQuiz(quiz *models.Quiz) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID] = quiz
	for _, question := range quiz.Questions {
		for _, answer := range question.Answers {
			s.answers[answer.ID] = answer
			s.answerOwner[answer.ID] = quiz.ID
		}
	}
}

func (s *MemoryStore) AddContent(content *models.PersonalityContent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content[content.Personality] = content
}

// PutResult stores a pre-built result row, for tests that seed legacy data.
func (s *MemoryStore) PutResult(result *models.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if result.ID == 0 {
		s.nextResultID++
		result.ID = s.nextResultID
	}
	copied := *result
	s.results[result.ID] = &copied
}

func (s *MemoryStore) GetQuiz(_ context.Context, quizID uint) (*models.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[quizID]
	if !ok {
		return nil, fmt.Errorf("quiz %d: %w", quizID, engine.ErrNotFound)
	}
	copied := *quiz
	return &copied, nil
}

func (s *MemoryStore) GetQuizAnswers(_ context.Context, quizID uint, answerIDs []uint) ([]models.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var answers []models.Answer
	for _, id := range answerIDs {
		if s.answerOwner[id] != quizID {
			continue
		}
		if answer, ok := s.answers[id]; ok {
			answers = append(answers, answer)
		}
	}
	return answers, nil
}

func (s *MemoryStore) CreateResult(_ context.Context, result *models.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextResultID++
	result.ID = s.nextResultID
	result.CreatedAt = time.Now()
	copied := *result
	s.results[result.ID] = &copied
	return nil
}

func (s *MemoryStore) GetResult(_ context.Context, resultID uint) (*models.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[resultID]
	if !ok {
		return nil, fmt.Errorf("result %d: %w", resultID, engine.ErrNotFound)
	}
	copied := *result
	return &copied, nil
}

func (s *MemoryStore) GetPersonalityContent(_ context.Context, personality string) (*models.PersonalityContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.content[personality]
	if !ok {
		return nil, fmt.Errorf("personality content %q: %w", personality, engine.ErrNotFound)
	}
	copied := *content
	return &copied, nil
}
