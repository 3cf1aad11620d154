package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"imposterparty/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const roomSnapshotTTL = 2 * time.Hour

// RoomSnapshot is the cached view of one room: the game row plus its players
// in join order.
type RoomSnapshot struct {
	Game    models.Game     `json:"game"`
	Players []models.Player `json:"players"`
}

// RoomCache keeps a JSON snapshot of each active room in Redis, refreshed on
// every mutation. It answers websocket state-sync requests without a database
// round trip; the database stays the source of truth.
type RoomCache struct {
	redis *redis.Client
}

func NewRoomCache(redisClient *redis.Client) *RoomCache {
	return &RoomCache{redis: redisClient}
}

func roomKey(code string) string {
	return "room:" + code
}

func (c *RoomCache) Store(code string, snap *RoomSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal room snapshot: %v", err)
	}

	if err := c.redis.Set(context.Background(), roomKey(code), data, roomSnapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to store in Redis: %v", err)
	}

	return nil
}

func (c *RoomCache) Get(code string) *RoomSnapshot {
	data, err := c.redis.Get(context.Background(), roomKey(code)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis error getting room snapshot for %s: %v", code, err)
		}
		return nil
	}

	var snap RoomSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		log.Printf("Failed to unmarshal room snapshot for %s: %v", code, err)
		return nil
	}

	return &snap
}

// Refresh re-reads the room from the database and stores a fresh snapshot.
// Cache failures are logged, never fatal.
func (c *RoomCache) Refresh(db *gorm.DB, code string) {
	var g models.Game
	if err := db.Where("room_code = ?", code).First(&g).Error; err != nil {
		log.Printf("Room snapshot refresh skipped for %s: %v", code, err)
		return
	}

	var players []models.Player
	db.Where("game_id = ?", g.ID).Order("created_at, id").Find(&players)

	if err := c.Store(code, &RoomSnapshot{Game: g, Players: players}); err != nil {
		log.Printf("Failed to refresh room snapshot for %s: %v", code, err)
	}
}

func (c *RoomCache) Drop(code string) {
	c.redis.Del(context.Background(), roomKey(code))
}
