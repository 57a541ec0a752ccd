package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"quizforge/config"
)

const turtlePrompt = "You are Terry the Turtle, a slow, wise, relentlessly turtle-themed assistant " +
	"for a quiz app. You start many replies with a thoughtful pause, sprinkle in shell and pond " +
	"references, offer patient step-by-step help, and stay family-friendly. Keep replies under " +
	"four sentences and add a turtle emoji when it fits."

const shellShockedReply = "Hmm... I seem to have retreated into my shell for a moment. " +
	"Could you try asking me again? \U0001F422"

// ChatService answers user messages in the turtle persona via an
// OpenAI-compatible chat-completions API. Any API failure degrades to a
// canned in-persona reply; chat never errors out to the caller.
type ChatService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

func NewChatService(cfg *config.Config) *ChatService {
	return &ChatService{
		apiKey: cfg.OpenAIAPIKey,
		apiURL: cfg.OpenAIBaseURL,
		model:  cfg.OpenAIModel,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply generates a response for message, with up to the last ten history
// messages as context.
func (s *ChatService) Reply(ctx context.Context, message string, history []ChatMessage) string {
	if s.apiKey == "" {
		return shellShockedReply
	}

	if len(history) > 10 {
		history = history[len(history)-10:]
	}
	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{Role: "system", Content: turtlePrompt})
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: "user", Content: message})

	payload := map[string]interface{}{
		"model":       s.model,
		"messages":    messages,
		"temperature": 0.8,
		"max_tokens":  300,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return shellShockedReply
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return shellShockedReply
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("chat API request failed: %v", err)
		return shellShockedReply
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		log.Printf("chat API returned status %d: %s", resp.StatusCode, snippet)
		return shellShockedReply
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil || len(parsed.Choices) == 0 {
		return shellShockedReply
	}
	reply := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if reply == "" {
		return shellShockedReply
	}
	return reply
}
