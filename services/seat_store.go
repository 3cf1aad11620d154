package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const seatTTL = 24 * time.Hour

// SeatStore remembers which player row a browser session owns in a given
// room, so a page reload can re-identify "my seat". Keys are scoped per room
// code, letting one browser hold distinct identities in distinct rooms.
type SeatStore struct {
	redis *redis.Client
}

func NewSeatStore(redisClient *redis.Client) *SeatStore {
	return &SeatStore{redis: redisClient}
}

func seatKey(roomCode, sessionID string) string {
	return "seat:" + roomCode + ":" + sessionID
}

func (s *SeatStore) Claim(ctx context.Context, roomCode, sessionID, playerID string) error {
	return s.redis.Set(ctx, seatKey(roomCode, sessionID), playerID, seatTTL).Err()
}

// Lookup returns the player id held by the session in this room, or "" when
// no seat is claimed.
func (s *SeatStore) Lookup(ctx context.Context, roomCode, sessionID string) (string, error) {
	playerID, err := s.redis.Get(ctx, seatKey(roomCode, sessionID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return playerID, nil
}

func (s *SeatStore) Release(ctx context.Context, roomCode, sessionID string) error {
	return s.redis.Del(ctx, seatKey(roomCode, sessionID)).Err()
}
