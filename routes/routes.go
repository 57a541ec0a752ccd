package routes

import (
	"net/http"

	"quizforge/handlers"
	"quizforge/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	resultHandler *handlers.ResultHandler,
	contentHandler *handlers.ContentHandler,
	jokeHandler *handlers.JokeHandler,
	chatHandler *handlers.ChatHandler,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)
			protected.PUT("/auth/profile", authHandler.UpdateProfile)

			protected.POST("/quizzes", quizHandler.CreateQuiz)
			protected.PUT("/quizzes/:id", quizHandler.UpdateQuiz)
			protected.DELETE("/quizzes/:id", quizHandler.DeleteQuiz)

			protected.PUT("/content", contentHandler.UpsertContent)
		}

		// Public quiz browsing
		api.GET("/quizzes", quizHandler.GetQuizzes)
		api.GET("/quizzes/:id", quizHandler.GetQuiz)

		// Submissions are open to anonymous users; a valid token attaches
		// the result to the account.
		api.POST("/answers/submit", middleware.OptionalAuthMiddleware(jwtSecret), resultHandler.SubmitQuiz)

		results := api.Group("/results")
		{
			results.GET("/:id", resultHandler.GetResult)
			results.GET("/quiz/:id", resultHandler.GetQuizResults)
			results.GET("/user/:id", resultHandler.GetUserResults)
		}

		api.GET("/content/:personality", contentHandler.GetContent)

		jokes := api.Group("/jokes")
		{
			jokes.GET("/daily", jokeHandler.GetDailyJoke)
			jokes.GET("/suggestions", jokeHandler.ListSuggestions)
			jokes.POST("/suggestions", middleware.OptionalAuthMiddleware(jwtSecret), jokeHandler.SubmitSuggestion)
		}

		api.POST("/chat", chatHandler.Chat)
	}

	// WebSocket endpoint for chat sessions
	router.GET("/ws/chat", chatHandler.ServeWS)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
