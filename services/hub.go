package services

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"imposterparty/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub fans room change events out to every connected client. It is the
// change-notification stream clients subscribe to: delivery is at-least-once
// per connection and carries final row state, not a mutation log.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	cache      *RoomCache
	lobby      *LobbyService
}

type Client struct {
	hub        *Hub
	id         string
	socket     *websocket.Conn
	send       chan []byte
	roomCode   string
	playerID   string
	playerName string
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func NewHub(cache *RoomCache, lobby *LobbyService) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		cache:      cache,
		lobby:      lobby,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Client registered: %s for room %s (player %s) - Total clients: %d",
				client.id, client.roomCode, client.playerID, len(h.clients))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Client unregistered: %s for room %s (player %s) - Total clients: %d",
					client.id, client.roomCode, client.playerID, len(h.clients))
			}
			h.mutex.Unlock()
		}
	}
}

// BroadcastToRoom sends one event to every client connected to the room.
func (h *Hub) BroadcastToRoom(roomCode string, messageType string, payload interface{}) {
	message := Message{
		Type:    messageType,
		Payload: payload,
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	h.mutex.Lock()
	for client := range h.clients {
		if strings.EqualFold(client.roomCode, roomCode) {
			select {
			case client.send <- data:
			default:
				close(client.send)
				delete(h.clients, client)
			}
		}
	}
	h.mutex.Unlock()
}

// BroadcastPlayerUpdate announces a joined or departed player to the room.
func (h *Hub) BroadcastPlayerUpdate(roomCode string, player models.Player, action string) {
	h.BroadcastToRoom(roomCode, "player_update", map[string]interface{}{
		"action": action, // "joined" or "left"
		"player": player,
	})
}

// SendRoomStateSync pushes the full room snapshot to a single client. Used
// on connect and on request, so a reconnecting client re-derives its whole
// view from final row state.
func (h *Hub) SendRoomStateSync(client *Client) {
	snap := h.cache.Get(client.roomCode)
	if snap == nil {
		g, err := h.lobby.GetGameByCode(client.roomCode)
		if err != nil {
			log.Printf("Error getting room state for client %s: %v", client.id, err)
			return
		}
		snap = &RoomSnapshot{Game: *g, Players: g.Players}
	}

	message := Message{
		Type: "room_state_sync",
		Payload: map[string]interface{}{
			"game":    snap.Game,
			"players": snap.Players,
		},
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling room state sync message: %v", err)
		return
	}

	h.mutex.Lock()
	select {
	case client.send <- data:
	default:
		close(client.send)
		delete(h.clients, client)
	}
	h.mutex.Unlock()
}

// GetConnectedPlayers lists player ids currently connected to the room.
func (h *Hub) GetConnectedPlayers(roomCode string) []string {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	var playerIDs []string
	for client := range h.clients {
		if strings.EqualFold(client.roomCode, roomCode) {
			playerIDs = append(playerIDs, client.playerID)
		}
	}
	return playerIDs
}

func (h *Hub) IsPlayerConnected(roomCode, playerID string) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if strings.EqualFold(client.roomCode, roomCode) && client.playerID == playerID {
			return true
		}
	}
	return false
}

func (h *Hub) RegisterClient(conn *websocket.Conn, roomCode, playerID, playerName string) *Client {
	client := &Client{
		hub:        h,
		id:         uuid.NewString(),
		socket:     conn,
		send:       make(chan []byte, 256),
		roomCode:   roomCode,
		playerID:   playerID,
		playerName: playerName,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()

	return client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

func (c *Client) readPump() {
	defer func() {
		c.hub.UnregisterClient(c)
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	defer func() {
		c.socket.Close()
	}()

	for message := range c.send {
		w, err := c.socket.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}

		w.Write(message)

		if err := w.Close(); err != nil {
			return
		}
	}

	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case "ping":
		response := Message{
			Type:    "pong",
			Payload: "pong",
		}
		data, _ := json.Marshal(response)
		c.send <- data

	case "join_room", "request_room_state":
		c.hub.SendRoomStateSync(c)

	case "leave_room":
		log.Printf("Player %s (%s) left room %s via WebSocket", c.playerID, c.playerName, c.roomCode)

	default:
		log.Printf("Unknown message type: %s from player %s in room %s", msg.Type, c.playerID, c.roomCode)
	}
}
