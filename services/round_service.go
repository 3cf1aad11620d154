package services

import (
	"errors"
	"log"

	"imposterparty/game"
	"imposterparty/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RoundService drives the waiting -> playing -> finished state machine and
// the per-round word/impostor assignment. Every transition is guarded by a
// compare-and-set on the game row so a double-clicking host or a second
// claimed host cannot double-advance a round.
type RoundService struct {
	db    *gorm.DB
	cache *RoomCache
}

func NewRoundService(db *gorm.DB, cache *RoomCache) *RoundService {
	return &RoundService{
		db:    db,
		cache: cache,
	}
}

func (s *RoundService) gameByCode(code string) (*models.Game, error) {
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

// StartGame moves a waiting game to playing: picks the first secret word,
// assigns turn order and exactly one impostor, and zeroes every player's
// score and per-round state. Player rows settle inside the same transaction
// before the game row flips, so no client renders playing state against a
// stale roster.
func (s *RoundService) StartGame(code string, totalRounds int, hub *Hub) (*models.Game, error) {
	g, err := s.gameByCode(code)
	if err != nil {
		return nil, err
	}

	switch g.Status {
	case models.StatusFinished:
		return nil, game.ErrGameFinished
	case models.StatusPlaying:
		return nil, game.ErrGameAlreadyStarted
	}

	var players []models.Player
	if err := s.db.Where("game_id = ?", g.ID).Order("created_at, id").Find(&players).Error; err != nil {
		return nil, err
	}
	if len(players) < game.MinPlayers {
		return nil, game.ErrInsufficientPlayers
	}

	if totalRounds <= 0 {
		totalRounds = game.DefaultTotalRounds
	}

	pick := game.PickWord(nil)
	order := game.ShuffledOrder(len(players))
	imposter := game.PickImposterIndex(len(players))

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range players {
			updates := map[string]interface{}{
				"is_imposter":   i == imposter,
				"is_eliminated": false,
				"votes":         0,
				"has_voted":     false,
				"score":         0,
				"turn_order":    order[i],
			}
			if err := tx.Model(&models.Player{}).Where("id = ?", players[i].ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		res := tx.Model(&models.Game{}).
			Where("id = ? AND status = ?", g.ID, models.StatusWaiting).
			Updates(map[string]interface{}{
				"status":           models.StatusPlaying,
				"secret_word":      pick.Word,
				"category":         pick.Category,
				"used_words":       models.EncodeUsedWords(pick.UsedWords),
				"total_rounds":     totalRounds,
				"current_round":    1,
				"results_revealed": false,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return game.ErrGameAlreadyStarted
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	g, err = s.gameByCode(code)
	if err != nil {
		return nil, err
	}

	s.cache.Refresh(s.db, g.RoomCode)
	log.Printf("Game %s started: round 1 of %d with %d players", g.RoomCode, totalRounds, len(players))

	if hub != nil {
		hub.BroadcastToRoom(g.RoomCode, "game_started", gin.H{
			"game": g,
		})
	}

	return g, nil
}

// StartNewRound re-rolls the secret word and impostor and resets the
// per-round player state. Scores and turn order carry over. The transition
// is conditional on the expected current round, so a concurrent advance
// fails with ErrRoundConflict instead of skipping a round.
func (s *RoundService) StartNewRound(code string, hub *Hub) (*models.Game, error) {
	g, err := s.gameByCode(code)
	if err != nil {
		return nil, err
	}

	switch g.Status {
	case models.StatusFinished:
		return nil, game.ErrGameFinished
	case models.StatusWaiting:
		return nil, game.ErrGameNotStarted
	}

	if g.CurrentRound >= g.TotalRounds {
		return nil, game.ErrNoMoreRounds
	}

	var players []models.Player
	if err := s.db.Where("game_id = ?", g.ID).Order("created_at, id").Find(&players).Error; err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, game.ErrPlayerNotFound
	}

	pick := game.PickWord(g.UsedWordList())
	imposter := game.PickImposterIndex(len(players))

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range players {
			updates := map[string]interface{}{
				"is_imposter":   i == imposter,
				"is_eliminated": false,
				"votes":         0,
				"has_voted":     false,
			}
			if err := tx.Model(&models.Player{}).Where("id = ?", players[i].ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		res := tx.Model(&models.Game{}).
			Where("id = ? AND status = ? AND current_round = ?", g.ID, models.StatusPlaying, g.CurrentRound).
			Updates(map[string]interface{}{
				"secret_word":      pick.Word,
				"category":         pick.Category,
				"used_words":       models.EncodeUsedWords(pick.UsedWords),
				"current_round":    g.CurrentRound + 1,
				"results_revealed": false,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return game.ErrRoundConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	g, err = s.gameByCode(code)
	if err != nil {
		return nil, err
	}

	s.cache.Refresh(s.db, g.RoomCode)
	log.Printf("Game %s advanced to round %d of %d", g.RoomCode, g.CurrentRound, g.TotalRounds)

	if hub != nil {
		hub.BroadcastToRoom(g.RoomCode, "round_started", gin.H{
			"game": g,
		})
	}

	return g, nil
}

// EndGame moves the game to finished from waiting or playing. Terminal:
// every subscribed client treats it as the signal to leave the room view.
func (s *RoundService) EndGame(code string, hub *Hub) (*models.Game, error) {
	g, err := s.gameByCode(code)
	if err != nil {
		return nil, err
	}

	if g.Status == models.StatusFinished {
		return nil, game.ErrGameFinished
	}

	res := s.db.Model(&models.Game{}).
		Where("id = ? AND status IN ?", g.ID, []string{models.StatusWaiting, models.StatusPlaying}).
		Update("status", models.StatusFinished)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, game.ErrGameFinished
	}

	g, err = s.gameByCode(code)
	if err != nil {
		return nil, err
	}

	s.cache.Refresh(s.db, g.RoomCode)
	log.Printf("Game %s ended by host in round %d", g.RoomCode, g.CurrentRound)

	if hub != nil {
		hub.BroadcastToRoom(g.RoomCode, "game_ended", gin.H{
			"game": g,
		})
	}

	return g, nil
}
