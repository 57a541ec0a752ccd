package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"quizforge/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // origin policy handled by the CORS layer
	},
}

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type ChatRequest struct {
	Message string                 `json:"message" binding:"required"`
	History []services.ChatMessage `json:"history"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply := h.chatService.Reply(c.Request.Context(), req.Message, req.History)
	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

// wsMessage is the envelope exchanged on the chat websocket.
type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServeWS runs a chat session over a websocket: each "chat" message gets one
// "reply" message back. The per-message exchange is still request/response;
// the socket just keeps the conversation on one connection.
func (h *ChatHandler) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("chat websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("chat websocket read failed: %v", err)
			}
			return
		}
		if msg.Type != "chat" {
			continue
		}

		var req ChatRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil || req.Message == "" {
			if writeErr := conn.WriteJSON(gin.H{"type": "error", "payload": gin.H{"error": "invalid chat payload"}}); writeErr != nil {
				return
			}
			continue
		}

		reply := h.chatService.Reply(c.Request.Context(), req.Message, req.History)
		if err := conn.WriteJSON(gin.H{"type": "reply", "payload": ChatResponse{Reply: reply}}); err != nil {
			log.Printf("chat websocket write failed: %v", err)
			return
		}
	}
}
