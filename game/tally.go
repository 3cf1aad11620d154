package game

import "imposterparty/models"

// Points awarded on reveal.
const (
	CrewWinPoints     = 10 // each non-impostor when the impostor is caught
	ImposterWinPoints = 20 // the impostor when someone else takes the fall
)

// VotePolicy controls the permissive edges of vote admission. The defaults
// match the original game: self-votes and votes for eliminated players are
// both allowed.
type VotePolicy struct {
	AllowSelfVote         bool
	AllowEliminatedTarget bool
}

// DefaultVotePolicy returns the permissive policy.
func DefaultVotePolicy() VotePolicy {
	return VotePolicy{AllowSelfVote: true, AllowEliminatedTarget: true}
}

// RevealOutcome is the computed result of one round.
type RevealOutcome struct {
	ImposterID  string `json:"imposter_id"`
	MostVotedID string `json:"most_voted_id"`
	PlayersWin  bool   `json:"players_win"`
}

// MostVoted returns the non-eliminated player with the highest vote count.
// Ties break toward the lowest player id so the outcome never depends on
// row scan order.
func MostVoted(players []models.Player) *models.Player {
	var top *models.Player
	for i := range players {
		p := &players[i]
		if p.IsEliminated {
			continue
		}
		if top == nil || p.Votes > top.Votes || (p.Votes == top.Votes && p.ID < top.ID) {
			top = p
		}
	}
	return top
}

// Imposter returns the player holding the impostor role, or nil if the
// roster has none (a game that has not started).
func Imposter(players []models.Player) *models.Player {
	for i := range players {
		if players[i].IsImposter {
			return &players[i]
		}
	}
	return nil
}

// Tally computes the round outcome: the players win exactly when the
// most-voted player is the impostor.
func Tally(players []models.Player) (RevealOutcome, error) {
	imposter := Imposter(players)
	if imposter == nil {
		return RevealOutcome{}, ErrGameNotStarted
	}
	mostVoted := MostVoted(players)
	if mostVoted == nil {
		return RevealOutcome{}, ErrPlayerNotFound
	}
	return RevealOutcome{
		ImposterID:  imposter.ID,
		MostVotedID: mostVoted.ID,
		PlayersWin:  mostVoted.ID == imposter.ID,
	}, nil
}

// ScoreAward returns the points a player earns for the given outcome.
// Eliminated players still collect the crew award.
func ScoreAward(outcome RevealOutcome, p *models.Player) int {
	if outcome.PlayersWin {
		if p.IsImposter {
			return 0
		}
		return CrewWinPoints
	}
	if p.IsImposter {
		return ImposterWinPoints
	}
	return 0
}
