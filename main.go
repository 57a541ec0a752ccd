package main

import (
	"log"
	"strings"

	"quizforge/config"
	"quizforge/engine"
	"quizforge/handlers"
	"quizforge/models"
	"quizforge/routes"
	"quizforge/services"
	"quizforge/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.Answer{},
		&models.Result{},
		&models.PersonalityContent{},
		&models.DailyJoke{},
		&models.JokeSuggestion{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret)
	quizService := services.NewQuizService(db)
	resultEngine := engine.New(store.NewGormStore(db))
	resultService := services.NewResultService(db, resultEngine)
	contentService := services.NewContentService(db)
	jokeService := services.NewJokeService(db, redisClient, cfg)
	chatService := services.NewChatService(cfg)

	// Seed starter personality content
	if err := contentService.Seed(); err != nil {
		log.Printf("Failed to seed personality content: %v", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	resultHandler := handlers.NewResultHandler(resultService)
	contentHandler := handlers.NewContentHandler(contentService)
	jokeHandler := handlers.NewJokeHandler(jokeService)
	chatHandler := handlers.NewChatHandler(chatService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	corsConfig := cors.DefaultConfig()
	if cfg.CORSOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.CORSOrigins, ",")
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Setup routes
	routes.SetupRoutes(router, authHandler, quizHandler, resultHandler, contentHandler, jokeHandler, chatHandler, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.BindAddress + ":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
