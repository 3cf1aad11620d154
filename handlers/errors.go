package handlers

import (
	"errors"
	"net/http"

	"imposterparty/game"

	"github.com/gin-gonic/gin"
)

// statusForError maps core errors onto HTTP statuses. Anything unrecognized
// is a store failure and reads as 500; the client keeps its view and retries.
func statusForError(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound),
		errors.Is(err, game.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrInvalidName),
		errors.Is(err, game.ErrInsufficientPlayers),
		errors.Is(err, game.ErrCannotVoteSelf),
		errors.Is(err, game.ErrEliminatedTarget):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrNotHost):
		return http.StatusForbidden
	case errors.Is(err, game.ErrRoomCodeTaken),
		errors.Is(err, game.ErrGameAlreadyStarted),
		errors.Is(err, game.ErrGameNotStarted),
		errors.Is(err, game.ErrGameFinished),
		errors.Is(err, game.ErrAlreadyVoted),
		errors.Is(err, game.ErrNoMoreRounds),
		errors.Is(err, game.ErrRoundConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}
