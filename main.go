package main

import (
	"log"

	"imposterparty/config"
	"imposterparty/game"
	"imposterparty/handlers"
	"imposterparty/middleware"
	"imposterparty/models"
	"imposterparty/routes"
	"imposterparty/services"

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
		&models.Game{},
		&models.Player{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	cache := services.NewRoomCache(redisClient)
	seats := services.NewSeatStore(redisClient)
	lobbyService := services.NewLobbyService(db, cache)
	roundService := services.NewRoundService(db, cache)
	voteService := services.NewVoteService(db, cache, game.VotePolicy{
		AllowSelfVote:         cfg.AllowSelfVote,
		AllowEliminatedTarget: cfg.AllowEliminatedTargets,
	})

	// Initialize WebSocket hub
	hub := services.NewHub(cache, lobbyService)
	go hub.Run()

	// Initialize handlers
	roomHandler := handlers.NewRoomHandler(lobbyService, hub, seats, cfg.TokenSecret)
	gameHandler := handlers.NewGameHandler(lobbyService, roundService, voteService, hub)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, roomHandler, gameHandler, hub, lobbyService, cfg.TokenSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
