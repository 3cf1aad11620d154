package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by HostToken when a valid token accompanies the request.
const (
	ContextGameID = "token_game_id"
	ContextHostID = "token_host_id"
)

type hostClaims struct {
	GameID string `json:"game_id"`
	HostID string `json:"host_id"`
	jwt.RegisteredClaims
}

// MintHostToken signs a token binding the creating client to a game's host
// id. It is handed out once, at room creation.
func MintHostToken(secret, gameID, hostID string) (string, error) {
	claims := hostClaims{
		GameID: gameID,
		HostID: hostID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// HostToken extracts host claims from a Bearer token when one is present.
// It never aborts: a game's host id is not always tied to a player row, so
// handlers also accept the fallback host (earliest-joined player) identified
// by the X-Player-ID header.
func HostToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims := &hostClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err == nil && token.Valid {
			c.Set(ContextGameID, claims.GameID)
			c.Set(ContextHostID, claims.HostID)
		}

		c.Next()
	}
}
