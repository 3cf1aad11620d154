package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Game lifecycle statuses. "finished" is terminal.
const (
	StatusWaiting  = "waiting"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

type Game struct {
	ID              string         `json:"id" gorm:"primaryKey;size:36"`
	RoomCode        string         `json:"room_code" gorm:"uniqueIndex;not null;size:8"`
	Status          string         `json:"status" gorm:"not null;default:'waiting'"` // waiting, playing, finished
	HostID          string         `json:"host_id" gorm:"not null;size:36"`
	SecretWord      string         `json:"secret_word"`
	Category        string         `json:"category"`
	UsedWords       datatypes.JSON `json:"used_words"`
	TotalRounds     int            `json:"total_rounds" gorm:"not null;default:3"`
	CurrentRound    int            `json:"current_round" gorm:"not null;default:0"`
	ResultsRevealed bool           `json:"results_revealed" gorm:"not null;default:false"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Players []Player `json:"players,omitempty" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}

// UsedWordList decodes the persisted used_words column. A missing or
// malformed column reads as an empty history, since the word selection
// treats the two the same way.
func (g *Game) UsedWordList() []string {
	if len(g.UsedWords) == 0 {
		return nil
	}
	var words []string
	if err := json.Unmarshal(g.UsedWords, &words); err != nil {
		return nil
	}
	return words
}

// EncodeUsedWords serializes a word history for the used_words column.
func EncodeUsedWords(words []string) datatypes.JSON {
	if words == nil {
		words = []string{}
	}
	data, _ := json.Marshal(words)
	return datatypes.JSON(data)
}
