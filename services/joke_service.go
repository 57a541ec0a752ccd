package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"quizforge/config"
	"quizforge/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const jokePrompt = "Generate a light-hearted, two-sentence joke. Vary topics across technology, " +
	"computer science, general life, or wholesome humor. Avoid offensive, adult, hateful, or " +
	"sensitive content. Return ONLY the joke."

const jokePromptWithSuggestions = "Generate a hilarious, relatable two-sentence joke about programming, " +
	"software development, or tech life. User suggestions for themes: %s. Make it punchy and funny. " +
	"Keep it clean and professional. Return ONLY the joke."

// JokeService serves one joke per day: Redis cache first, then the daily_jokes
// table, then generation (API with a local fallback).
type JokeService struct {
	db     *gorm.DB
	redis  *redis.Client
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

func NewJokeService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *JokeService {
	return &JokeService{
		db:     db,
		redis:  redisClient,
		apiKey: cfg.OpenAIAPIKey,
		apiURL: cfg.OpenAIBaseURL,
		model:  cfg.OpenAIModel,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *JokeService) DailyJoke(ctx context.Context) (*models.DailyJoke, error) {
	date := time.Now().Format("2006-01-02")
	cacheKey := "daily_joke:" + date

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var joke models.DailyJoke
			if json.Unmarshal([]byte(cached), &joke) == nil {
				return &joke, nil
			}
		}
	}

	var existing models.DailyJoke
	err := s.db.Where("date = ?", date).First(&existing).Error
	if err == nil {
		s.cache(ctx, cacheKey, &existing)
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	text, source := s.generate(ctx)
	joke := models.DailyJoke{Date: date, Joke: text, Source: source}
	if err := s.db.Create(&joke).Error; err != nil {
		return nil, err
	}
	s.cache(ctx, cacheKey, &joke)
	return &joke, nil
}

func (s *JokeService) cache(ctx context.Context, key string, joke *models.DailyJoke) {
	if s.redis == nil {
		return
	}
	encoded, err := json.Marshal(joke)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, encoded, 24*time.Hour).Err(); err != nil {
		log.Printf("caching daily joke failed: %v", err)
	}
}

func (s *JokeService) generate(ctx context.Context) (string, string) {
	suggestions := s.unusedSuggestions(5)
	if joke := s.fetchAPIJoke(ctx, suggestions); joke != "" {
		s.markUsed(suggestions)
		return joke, "openai"
	}
	return fallbackJoke(), "fallback"
}

func (s *JokeService) unusedSuggestions(limit int) []models.JokeSuggestion {
	var suggestions []models.JokeSuggestion
	if err := s.db.Where("used = ?", false).
		Order("created_at DESC").Limit(limit).
		Find(&suggestions).Error; err != nil {
		log.Printf("loading joke suggestions failed: %v", err)
		return nil
	}
	return suggestions
}

func (s *JokeService) markUsed(suggestions []models.JokeSuggestion) {
	for _, suggestion := range suggestions {
		if err := s.db.Model(&models.JokeSuggestion{}).
			Where("id = ?", suggestion.ID).
			Update("used", true).Error; err != nil {
			log.Printf("marking suggestion %d used failed: %v", suggestion.ID, err)
		}
	}
}

func (s *JokeService) fetchAPIJoke(ctx context.Context, suggestions []models.JokeSuggestion) string {
	if s.apiKey == "" {
		return ""
	}

	prompt := jokePrompt
	if len(suggestions) > 0 {
		themes := make([]string, 0, len(suggestions))
		for _, suggestion := range suggestions {
			themes = append(themes, suggestion.SuggestionText)
		}
		prompt = fmt.Sprintf(jokePromptWithSuggestions, strings.Join(themes, ", "))
	}

	payload := map[string]interface{}{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a creative, family-friendly joke generator."},
			{"role": "user", "content": prompt},
		},
		"temperature": 0.9,
		"max_tokens":  80,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return ""
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("joke API request failed: %v", err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		log.Printf("joke API returned status %d: %s", resp.StatusCode, snippet)
		return ""
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil || len(parsed.Choices) == 0 {
		return ""
	}
	joke := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if joke == "" || strings.Count(joke, ".")+strings.Count(joke, "!") < 1 {
		return ""
	}
	return joke
}

// fallbackJoke composes a joke locally so the endpoint works without an API key.
func fallbackJoke() string {
	subjects := []string{
		"A programmer", "An anxious server", "A cloud engineer", "A debugging session",
		"A junior dev", "A rogue semicolon", "A sleepy laptop", "A cautious database",
	}
	actions := []string{
		"walks into a coffee shop", "tries to relax during deployment", "refuses to compile",
		"asks for just one more sprint", "ships to production on Friday", "hides behind feature flags",
	}
	twists := []string{
		"and orders a latte with extra RAM.", "and realizes the bug was a missing comma all along.",
		"then proudly says: \"It worked on my machine.\"", "and the unit tests cheer politely.",
		"then discovers the fix was turning it off and on.",
	}
	closers := []string{
		"Somewhere, a project manager schedules a retro to celebrate.",
		"Meanwhile, the legacy system pretends not to notice.",
		"Naturally, the documentation remains blissfully outdated.",
		"A senior dev whispers: \"Ship it.\"",
		"The error logs compose a minimalist opera.",
	}
	pick := func(options []string) string { return options[rand.Intn(len(options))] }
	return fmt.Sprintf("%s %s %s %s", pick(subjects), pick(actions), pick(twists), pick(closers))
}

type SuggestionRequest struct {
	SuggestionText string `json:"suggestion_text" binding:"required,min=5,max=500"`
}

func (s *JokeService) SubmitSuggestion(userID *uint, req *SuggestionRequest) (*models.JokeSuggestion, error) {
	suggestion := models.JokeSuggestion{
		SuggestionText: req.SuggestionText,
		UserID:         userID,
	}
	if err := s.db.Create(&suggestion).Error; err != nil {
		return nil, err
	}
	return &suggestion, nil
}

func (s *JokeService) ListSuggestions(skip, limit int) ([]models.JokeSuggestion, error) {
	var suggestions []models.JokeSuggestion
	err := s.db.Order("created_at DESC").
		Offset(skip).Limit(clampLimit(limit)).
		Find(&suggestions).Error
	return suggestions, err
}
