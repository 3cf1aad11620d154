package handlers

import (
	"net/http"

	"imposterparty/game"
	"imposterparty/middleware"
	"imposterparty/models"
	"imposterparty/services"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	lobby  *services.LobbyService
	rounds *services.RoundService
	votes  *services.VoteService
	hub    *services.Hub
}

func NewGameHandler(lobby *services.LobbyService, rounds *services.RoundService, votes *services.VoteService, hub *services.Hub) *GameHandler {
	return &GameHandler{
		lobby:  lobby,
		rounds: rounds,
		votes:  votes,
		hub:    hub,
	}
}

// requireHost authorizes a host-gated action. The host token minted at room
// creation wins outright; without it the caller must present the resolved
// host's player id (the stored host id when a player carries it, otherwise
// the earliest-joined player) in X-Player-ID.
func (h *GameHandler) requireHost(c *gin.Context, g *models.Game) error {
	if c.GetString(middleware.ContextGameID) == g.ID &&
		c.GetString(middleware.ContextHostID) == g.HostID {
		return nil
	}

	if playerID := c.GetHeader("X-Player-ID"); playerID != "" {
		if playerID == game.ResolveHost(g, g.Players) {
			return nil
		}
	}

	return game.ErrNotHost
}

type StartGameRequest struct {
	TotalRounds int `json:"total_rounds"`
}

func (h *GameHandler) StartGame(c *gin.Context) {
	code := c.Param("code")

	g, err := h.lobby.GetGameByCode(code)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := h.requireHost(c, g); err != nil {
		abortWithError(c, err)
		return
	}

	// Round count is optional; an absent body means the default.
	var req StartGameRequest
	c.ShouldBindJSON(&req)

	started, err := h.rounds.StartGame(code, req.TotalRounds, h.hub)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, started)
}

func (h *GameHandler) NextRound(c *gin.Context) {
	code := c.Param("code")

	g, err := h.lobby.GetGameByCode(code)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := h.requireHost(c, g); err != nil {
		abortWithError(c, err)
		return
	}

	advanced, err := h.rounds.StartNewRound(code, h.hub)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, advanced)
}

func (h *GameHandler) RevealResults(c *gin.Context) {
	code := c.Param("code")

	g, err := h.lobby.GetGameByCode(code)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := h.requireHost(c, g); err != nil {
		abortWithError(c, err)
		return
	}

	result, err := h.votes.RevealResults(code, h.hub)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *GameHandler) EndGame(c *gin.Context) {
	code := c.Param("code")

	g, err := h.lobby.GetGameByCode(code)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := h.requireHost(c, g); err != nil {
		abortWithError(c, err)
		return
	}

	ended, err := h.rounds.EndGame(code, h.hub)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ended)
}

type CastVoteRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	TargetID string `json:"target_id" binding:"required"`
}

func (h *GameHandler) CastVote(c *gin.Context) {
	code := c.Param("code")

	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.votes.CastVote(code, req.PlayerID, req.TargetID, h.hub); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote recorded"})
}
