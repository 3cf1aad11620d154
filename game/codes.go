package game

import (
	"crypto/rand"
	"strings"
)

// Room code alphabet. Excludes 0/O and 1/I, which read ambiguously when a
// code is shared off a screen.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength is the number of characters in a room code.
const CodeLength = 4

// NewRoomCode generates a random room code. Uniqueness is not checked here;
// the games table carries a unique index on room_code and a colliding insert
// surfaces as ErrRoomCodeTaken to the caller.
func NewRoomCode() string {
	buf := make([]byte, CodeLength)
	rand.Read(buf)
	for i := range buf {
		buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}
	return string(buf)
}

// NormalizeRoomCode uppercases and trims a user-entered room code so lookups
// are case-insensitive.
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
