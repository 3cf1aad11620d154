package models

import (
	"time"

	"gorm.io/gorm"
)

type Player struct {
	ID           string         `json:"id" gorm:"primaryKey;size:36"`
	GameID       string         `json:"game_id" gorm:"index;not null;size:36"`
	Name         string         `json:"name" gorm:"not null;size:20"`
	IsImposter   bool           `json:"is_imposter" gorm:"not null;default:false"`
	IsEliminated bool           `json:"is_eliminated" gorm:"not null;default:false"`
	Votes        int            `json:"votes" gorm:"not null;default:0"`
	HasVoted     bool           `json:"has_voted" gorm:"not null;default:false"`
	Score        int            `json:"score" gorm:"not null;default:0"`
	TurnOrder    int            `json:"turn_order" gorm:"not null;default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Game Game `json:"game,omitempty"`
}
