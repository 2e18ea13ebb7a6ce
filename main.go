package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"chatterbox/server/internal/auth"
	"chatterbox/server/internal/chat"
	"chatterbox/server/internal/database"
	"chatterbox/server/internal/handlers"
	"chatterbox/server/internal/routes"
	"chatterbox/server/internal/store"
	"chatterbox/server/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	// Connect to database
	pool, err := database.Connect(context.Background(), os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database ready")

	// Stores
	userStore := store.NewUserStore(pool)
	messageStore := store.NewMessageStore(pool)
	groupStore := store.NewGroupStore(pool)

	// Real-time hub and connection registry
	hub := ws.NewHub(ws.NewRegistry(), userStore)
	go hub.Run()

	// Chat service
	tokens := auth.NewTokens(jwtSecret)
	chatService := chat.NewService(userStore, messageStore, groupStore, hub, tokens)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Chatterbox API v1.0",
	})

	// Middleware
	app.Use(logger.New())
	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigin,
		AllowCredentials: true,
	}))

	// Setup routes
	routes.SetupRoutes(app, handlers.New(chatService, hub), tokens)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
