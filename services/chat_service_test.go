package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizforge/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatService(apiKey, apiURL string) *ChatService {
	return NewChatService(&config.Config{
		OpenAIAPIKey:  apiKey,
		OpenAIBaseURL: apiURL,
		OpenAIModel:   "gpt-4o-mini",
	})
}

func fakeChatAPI(t *testing.T, reply string, capture *[]ChatMessage) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var req struct {
			Messages []ChatMessage `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if capture != nil {
			*capture = req.Messages
		}

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestChatReplyUsesAPI(t *testing.T) {
	var seen []ChatMessage
	server := fakeChatAPI(t, "Hmm... slow and steady wins the quiz! 🐢", &seen)
	defer server.Close()

	s := newChatService("key", server.URL)
	reply := s.Reply(context.Background(), "Any quiz tips?", nil)

	assert.Equal(t, "Hmm... slow and steady wins the quiz! 🐢", reply)
	require.NotEmpty(t, seen)
	assert.Equal(t, "system", seen[0].Role)
	assert.Equal(t, "user", seen[len(seen)-1].Role)
	assert.Equal(t, "Any quiz tips?", seen[len(seen)-1].Content)
}

func TestChatReplyTrimsHistory(t *testing.T) {
	var seen []ChatMessage
	server := fakeChatAPI(t, "ok", &seen)
	defer server.Close()

	history := make([]ChatMessage, 20)
	for i := range history {
		history[i] = ChatMessage{Role: "user", Content: "older"}
	}
	history[19].Content = "latest"

	s := newChatService("key", server.URL)
	s.Reply(context.Background(), "hi", history)

	// system prompt + 10 history + current message
	require.Len(t, seen, 12)
	assert.Equal(t, "latest", seen[10].Content)
}

func TestChatReplyFallsBackWithoutAPIKey(t *testing.T) {
	s := newChatService("", "http://unused")
	reply := s.Reply(context.Background(), "hello", nil)
	assert.Equal(t, shellShockedReply, reply)
}

func TestChatReplyFallsBackOnAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	s := newChatService("key", server.URL)
	reply := s.Reply(context.Background(), "hello", nil)
	assert.Equal(t, shellShockedReply, reply)
}

func TestChatReplyFallsBackOnEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	s := newChatService("key", server.URL)
	reply := s.Reply(context.Background(), "hello", nil)
	assert.Equal(t, shellShockedReply, reply)
}

func TestChatReplyFallsBackOnUnreachableAPI(t *testing.T) {
	s := newChatService("key", "http://127.0.0.1:1")
	s.client.Timeout = time.Second

	reply := s.Reply(context.Background(), "hello", nil)
	assert.Equal(t, shellShockedReply, reply)
}
