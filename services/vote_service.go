package services

import (
	"errors"

	"imposterparty/game"
	"imposterparty/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// VoteService admits votes and computes the round reveal.
type VoteService struct {
	db     *gorm.DB
	cache  *RoomCache
	policy game.VotePolicy
}

func NewVoteService(db *gorm.DB, cache *RoomCache, policy game.VotePolicy) *VoteService {
	return &VoteService{
		db:     db,
		cache:  cache,
		policy: policy,
	}
}

// RevealResult is the reveal response: the computed outcome plus the roster
// with updated scores. AlreadyRevealed marks a retried reveal that awarded
// nothing.
type RevealResult struct {
	Outcome         game.RevealOutcome `json:"outcome"`
	Players         []models.Player    `json:"players"`
	AlreadyRevealed bool               `json:"already_revealed"`
}

func (s *VoteService) gameByCode(code string) (*models.Game, error) {
	var g models.Game
	err := s.db.Where("room_code = ?", game.NormalizeRoomCode(code)).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, game.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// CastVote records one vote. The one-vote-per-round rule is enforced with a
// conditional flip of the voter's has_voted flag, so a duplicate cast fails
// with ErrAlreadyVoted without touching any count. The target increment is
// commutative and safe under concurrent casts.
func (s *VoteService) CastVote(code, voterID, targetID string, hub *Hub) error {
	g, err := s.gameByCode(code)
	if err != nil {
		return err
	}

	switch g.Status {
	case models.StatusWaiting:
		return game.ErrGameNotStarted
	case models.StatusFinished:
		return game.ErrGameFinished
	}

	var voter models.Player
	err = s.db.Where("id = ? AND game_id = ?", voterID, g.ID).First(&voter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return game.ErrPlayerNotFound
	}
	if err != nil {
		return err
	}

	var target models.Player
	err = s.db.Where("id = ? AND game_id = ?", targetID, g.ID).First(&target).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return game.ErrPlayerNotFound
	}
	if err != nil {
		return err
	}

	if !s.policy.AllowSelfVote && voterID == targetID {
		return game.ErrCannotVoteSelf
	}
	if !s.policy.AllowEliminatedTarget && target.IsEliminated {
		return game.ErrEliminatedTarget
	}

	res := s.db.Model(&models.Player{}).
		Where("id = ? AND has_voted = ?", voterID, false).
		Update("has_voted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return game.ErrAlreadyVoted
	}

	if err := s.db.Model(&models.Player{}).Where("id = ?", targetID).
		Update("votes", gorm.Expr("votes + ?", 1)).Error; err != nil {
		return err
	}

	s.cache.Refresh(s.db, g.RoomCode)

	if hub != nil {
		// Progress only; who voted for whom stays hidden until the reveal.
		var voted, total int64
		s.db.Model(&models.Player{}).Where("game_id = ? AND has_voted = ?", g.ID, true).Count(&voted)
		s.db.Model(&models.Player{}).Where("game_id = ?", g.ID).Count(&total)
		hub.BroadcastToRoom(g.RoomCode, "vote_cast", gin.H{
			"voted_count":   voted,
			"total_players": total,
		})
	}

	return nil
}

// RevealResults computes the round outcome and awards scores. The award runs
// at most once per round: the results_revealed flag is flipped with a
// compare-and-set inside the scoring transaction, so a retried reveal
// recomputes the same outcome but changes no score.
func (s *VoteService) RevealResults(code string, hub *Hub) (*RevealResult, error) {
	g, err := s.gameByCode(code)
	if err != nil {
		return nil, err
	}

	switch g.Status {
	case models.StatusWaiting:
		return nil, game.ErrGameNotStarted
	case models.StatusFinished:
		return nil, game.ErrGameFinished
	}

	var outcome game.RevealOutcome
	awarded := false

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var players []models.Player
		if err := tx.Where("game_id = ?", g.ID).Order("created_at, id").Find(&players).Error; err != nil {
			return err
		}

		var err error
		outcome, err = game.Tally(players)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Game{}).
			Where("id = ? AND results_revealed = ?", g.ID, false).
			Update("results_revealed", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already revealed this round; recompute only.
			return nil
		}
		awarded = true

		if outcome.PlayersWin {
			return tx.Model(&models.Player{}).
				Where("game_id = ? AND is_imposter = ?", g.ID, false).
				Update("score", gorm.Expr("score + ?", game.CrewWinPoints)).Error
		}
		return tx.Model(&models.Player{}).
			Where("game_id = ? AND is_imposter = ?", g.ID, true).
			Update("score", gorm.Expr("score + ?", game.ImposterWinPoints)).Error
	})
	if err != nil {
		return nil, err
	}

	var players []models.Player
	if err := s.db.Where("game_id = ?", g.ID).Order("created_at, id").Find(&players).Error; err != nil {
		return nil, err
	}

	s.cache.Refresh(s.db, g.RoomCode)

	if hub != nil && awarded {
		hub.BroadcastToRoom(g.RoomCode, "results_revealed", gin.H{
			"outcome": outcome,
			"players": players,
		})
	}

	return &RevealResult{
		Outcome:         outcome,
		Players:         players,
		AlreadyRevealed: !awarded,
	}, nil
}
