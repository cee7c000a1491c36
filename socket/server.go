package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// Hub wraps the socket.io server and pushes realtime match events. Clients
// join a room named after their userId and receive a "newMatch" event when
// a reciprocal right swipe completes their pair.
type Hub struct {
	Server *socketio.Server
}

// NewHub initializes the socket.io server and its event handlers
func NewHub() *Hub {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, userID string) {
		if userID == "" {
			log.Println("Invalid userId in join request")
			return
		}
		c.Join(userID)
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("Socket error:", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("Socket disconnected:", c.ID(), reason)
	})

	return &Hub{Server: server}
}

// NotifyMatch tells both sides of a new match. Best effort: a user without
// an open socket simply sees the match on their next fetch.
func (h *Hub) NotifyMatch(userA, userB, matchID string) {
	payload := map[string]string{
		"matchId": matchID,
		"userA":   userA,
		"userB":   userB,
	}
	h.Server.BroadcastToRoom("/", userA, "newMatch", payload)
	h.Server.BroadcastToRoom("/", userB, "newMatch", payload)
}
