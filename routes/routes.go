package routes

import (
	"fmt"
	"log"
	"net/http"

	"imposterparty/game"
	"imposterparty/handlers"
	"imposterparty/middleware"
	"imposterparty/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	roomHandler *handlers.RoomHandler,
	gameHandler *handlers.GameHandler,
	hub *services.Hub,
	lobby *services.LobbyService,
	tokenSecret string,
) {
	// API routes
	api := router.Group("/api")
	api.Use(middleware.HostToken(tokenSecret))
	{
		rooms := api.Group("/rooms")
		{
			rooms.POST("", roomHandler.CreateRoom)
			rooms.GET("/:code", roomHandler.GetRoom)
			rooms.POST("/:code/join", roomHandler.JoinRoom)
			rooms.POST("/:code/leave", roomHandler.LeaveRoom)
			rooms.POST("/:code/vote", gameHandler.CastVote)
			rooms.POST("/:code/seat", roomHandler.ClaimSeat)
			rooms.GET("/:code/seat", roomHandler.GetSeat)

			// Host-gated transitions; authorization happens in the handler
			// so the fallback host (earliest joiner) works without a token.
			rooms.POST("/:code/start", gameHandler.StartGame)
			rooms.POST("/:code/next-round", gameHandler.NextRound)
			rooms.POST("/:code/reveal", gameHandler.RevealResults)
			rooms.POST("/:code/end", gameHandler.EndGame)
		}
	}

	// WebSocket endpoint for the per-room change feed
	router.GET("/ws/:code/:playerID", func(c *gin.Context) {
		code := game.NormalizeRoomCode(c.Param("code"))
		playerID := c.Param("playerID")

		playerName, err := validatePlayerAccess(lobby, code, playerID)
		if err != nil {
			log.Printf("Player access validation failed for room %s, player %s: %v", code, playerID, err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Player not found in game"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for room %s, player %s: %v", code, playerID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
			return
		}

		log.Printf("WebSocket connection established for room %s, player %s (%s)", code, playerID, playerName)

		client := hub.RegisterClient(conn, code, playerID, playerName)

		// Push the current room state so a reconnecting client catches up
		// without waiting for the next change.
		hub.SendRoomStateSync(client)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// validatePlayerAccess checks that the connecting identity belongs to the
// room: either one of its player rows or the game's host id. Returns the
// display name to attach to the connection.
func validatePlayerAccess(lobby *services.LobbyService, code, playerID string) (string, error) {
	g, err := lobby.GetGameByCode(code)
	if err != nil {
		return "", err
	}

	for _, player := range g.Players {
		if player.ID == playerID {
			return player.Name, nil
		}
	}

	if g.HostID == playerID {
		return "host", nil
	}

	return "", fmt.Errorf("player %s not found in room %s", playerID, code)
}
