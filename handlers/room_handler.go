package handlers

import (
	"log"
	"net/http"

	"imposterparty/game"
	"imposterparty/middleware"
	"imposterparty/services"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	lobby       *services.LobbyService
	hub         *services.Hub
	seats       *services.SeatStore
	tokenSecret string
}

func NewRoomHandler(lobby *services.LobbyService, hub *services.Hub, seats *services.SeatStore, tokenSecret string) *RoomHandler {
	return &RoomHandler{
		lobby:       lobby,
		hub:         hub,
		seats:       seats,
		tokenSecret: tokenSecret,
	}
}

// CreateRoom creates a new waiting game. A room-code collision is returned
// as 409; the client retries, which generates a fresh code.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	g, err := h.lobby.CreateGame()
	if err != nil {
		abortWithError(c, err)
		return
	}

	hostToken, err := middleware.MintHostToken(h.tokenSecret, g.ID, g.HostID)
	if err != nil {
		log.Printf("Failed to mint host token for game %s: %v", g.ID, err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"game_id":    g.ID,
		"room_code":  g.RoomCode,
		"host_id":    g.HostID,
		"host_token": hostToken,
	})
}

func (h *RoomHandler) JoinRoom(c *gin.Context) {
	code := c.Param("code")

	var req services.JoinGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.lobby.JoinGame(code, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if h.hub != nil {
		h.hub.BroadcastPlayerUpdate(game.NormalizeRoomCode(code), *player, "joined")
	}

	c.JSON(http.StatusOK, player)
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	g, err := h.lobby.GetGameByCode(c.Param("code"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, g)
}

type LeaveRoomRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
}

func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	code := c.Param("code")

	var req LeaveRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.lobby.LeaveGame(code, req.PlayerID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if h.hub != nil {
		h.hub.BroadcastPlayerUpdate(game.NormalizeRoomCode(code), *player, "left")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left the room"})
}

type ClaimSeatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	PlayerID  string `json:"player_id" binding:"required"`
}

// ClaimSeat records which player row this browser session owns in the room,
// so a reload can find its way back to the same seat.
func (h *RoomHandler) ClaimSeat(c *gin.Context) {
	code := game.NormalizeRoomCode(c.Param("code"))

	var req ClaimSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.seats.Claim(c.Request.Context(), code, req.SessionID, req.PlayerID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Seat claimed"})
}

func (h *RoomHandler) GetSeat(c *gin.Context) {
	code := game.NormalizeRoomCode(c.Param("code"))

	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id required"})
		return
	}

	playerID, err := h.seats.Lookup(c.Request.Context(), code, sessionID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"player_id": playerID})
}
