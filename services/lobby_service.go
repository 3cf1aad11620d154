package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"imposterparty/game"
	"imposterparty/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LobbyService handles room creation, join admission and host resolution.
type LobbyService struct {
	db    *gorm.DB
	cache *RoomCache
}

func NewLobbyService(db *gorm.DB, cache *RoomCache) *LobbyService {
	return &LobbyService{
		db:    db,
		cache: cache,
	}
}

type JoinGameRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateGame creates a waiting game with a fresh room code and host id. The
// host id is generated here and is not tied to any player row; see
// HostPlayerID for how the effective host is resolved later. A room-code
// collision surfaces as ErrRoomCodeTaken and the caller retries with a new
// code.
func (s *LobbyService) CreateGame() (*models.Game, error) {
	g := models.Game{
		ID:          uuid.NewString(),
		RoomCode:    game.NewRoomCode(),
		Status:      models.StatusWaiting,
		HostID:      uuid.NewString(),
		UsedWords:   models.EncodeUsedWords(nil),
		TotalRounds: game.DefaultTotalRounds,
	}

	if err := s.db.Create(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, game.ErrRoomCodeTaken
		}
		return nil, err
	}

	s.cache.Refresh(s.db, g.RoomCode)
	return &g, nil
}

// GetGameByCode loads a game with its players in join order. Room codes are
// matched case-insensitively.
func (s *LobbyService) GetGameByCode(code string) (*models.Game, error) {
	code = game.NormalizeRoomCode(code)

	var g models.Game
	err := s.db.Where("room_code = ?", code).
		Preload("Players", func(db *gorm.DB) *gorm.DB {
			return db.Order("players.created_at, players.id")
		}).
		First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, game.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	return &g, nil
}

// Players returns the game's players in join order.
func (s *LobbyService) Players(gameID string) ([]models.Player, error) {
	var players []models.Player
	if err := s.db.Where("game_id = ?", gameID).Order("created_at, id").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// JoinGame admits a new player into a waiting game. There is no capacity
// limit and names need not be unique.
func (s *LobbyService) JoinGame(code string, req *JoinGameRequest) (*models.Player, error) {
	name := strings.TrimSpace(req.Name)
	if n := utf8.RuneCountInString(name); n < 1 || n > 20 {
		return nil, game.ErrInvalidName
	}

	code = game.NormalizeRoomCode(code)

	var g models.Game
	err := s.db.Where("room_code = ?", code).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, game.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	if g.Status != models.StatusWaiting {
		return nil, game.ErrGameAlreadyStarted
	}

	player := models.Player{
		ID:     uuid.NewString(),
		GameID: g.ID,
		Name:   name,
	}

	if err := s.db.Create(&player).Error; err != nil {
		return nil, err
	}

	s.cache.Refresh(s.db, code)
	return &player, nil
}

// LeaveGame deletes the player's row. Votes already cast for the departing
// player remain counted; the round in progress is otherwise untouched.
func (s *LobbyService) LeaveGame(code, playerID string) (*models.Player, error) {
	code = game.NormalizeRoomCode(code)

	var g models.Game
	err := s.db.Where("room_code = ?", code).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, game.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	var player models.Player
	err = s.db.Where("id = ? AND game_id = ?", playerID, g.ID).First(&player).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, game.ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(&player).Error; err != nil {
		return nil, err
	}

	s.cache.Refresh(s.db, code)
	return &player, nil
}

// HostPlayerID resolves the effective host for UI gating: the stored host id
// when some player carries it, otherwise the earliest-joined player.
func (s *LobbyService) HostPlayerID(g *models.Game) (string, error) {
	players, err := s.Players(g.ID)
	if err != nil {
		return "", err
	}
	return game.ResolveHost(g, players), nil
}
