package game

import (
	"math/rand"

	"imposterparty/models"
)

const (
	// MinPlayers is the smallest lobby that can start a game.
	MinPlayers = 3

	// DefaultTotalRounds applies when the host does not choose a round count.
	DefaultTotalRounds = 3
)

// ShuffledOrder returns a random permutation of 0..n-1 used as the fixed
// per-game display ordering.
func ShuffledOrder(n int) []int {
	return rand.Perm(n)
}

// PickImposterIndex picks the impostor uniformly among all players,
// independent of who held the role last round.
func PickImposterIndex(n int) int {
	return rand.Intn(n)
}

// ResolveHost returns the effective host's player id. The game's host_id is
// generated at creation and never linked to a player row, so it only wins
// when some player happens to carry it; otherwise the earliest-joined player
// is the host. Returns "" for an empty roster.
func ResolveHost(g *models.Game, players []models.Player) string {
	for _, p := range players {
		if p.ID == g.HostID {
			return p.ID
		}
	}
	var host *models.Player
	for i := range players {
		p := &players[i]
		if host == nil ||
			p.CreatedAt.Before(host.CreatedAt) ||
			(p.CreatedAt.Equal(host.CreatedAt) && p.ID < host.ID) {
			host = p
		}
	}
	if host == nil {
		return ""
	}
	return host.ID
}
