package handlers

import (
	"net/http"
	"strconv"

	"quizforge/middleware"
	"quizforge/services"

	"github.com/gin-gonic/gin"
)

type JokeHandler struct {
	jokeService *services.JokeService
}

func NewJokeHandler(jokeService *services.JokeService) *JokeHandler {
	return &JokeHandler{jokeService: jokeService}
}

func (h *JokeHandler) GetDailyJoke(c *gin.Context) {
	joke, err := h.jokeService.DailyJoke(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch daily joke"})
		return
	}

	c.JSON(http.StatusOK, joke)
}

func (h *JokeHandler) SubmitSuggestion(c *gin.Context) {
	var req services.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.UserID(c)
	suggestion, err := h.jokeService.SubmitSuggestion(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, suggestion)
}

func (h *JokeHandler) ListSuggestions(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	suggestions, err := h.jokeService.ListSuggestions(skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, suggestions)
}
