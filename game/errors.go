package game

import "errors"

// Core errors. Handlers map these onto HTTP statuses; everything else
// bubbling out of the services is treated as a store failure.
var (
	ErrGameNotFound        = errors.New("game not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrRoomCodeTaken       = errors.New("room code already in use")
	ErrGameAlreadyStarted  = errors.New("game already started")
	ErrGameNotStarted      = errors.New("game has not started")
	ErrGameFinished        = errors.New("game already finished")
	ErrInsufficientPlayers = errors.New("not enough players to start")
	ErrAlreadyVoted        = errors.New("already voted this round")
	ErrCannotVoteSelf      = errors.New("cannot vote for yourself")
	ErrEliminatedTarget    = errors.New("cannot vote for an eliminated player")
	ErrNoMoreRounds        = errors.New("all rounds have been played")
	ErrRoundConflict       = errors.New("conflicting round transition")
	ErrNotHost             = errors.New("only the host can perform this action")
	ErrInvalidName         = errors.New("player name must be 1-20 characters")
)
