package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect-n/internal/domain"
	"github.com/iamasit07/connect-n/internal/service/game"
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager *ConnectionManager
	GameService *game.Service
	Upgrader    websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. An empty origin list accepts every origin.
func NewHandler(cm *ConnectionManager, gs *game.Service, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager: cm,
		GameService: gs,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowedOrigins) == 0 {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin {
						return true
					}
				}
				log.Printf("[WS] Origin '%s' rejected", origin)
				return false
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(r.Context(), conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))

	done := make(chan struct{})
	defer close(done)

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// 1. Wait for the join message carrying the game token
	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Printf("[WS] Read error during join: %v", err)
		conn.Close()
		return
	}

	var message domain.ClientMessage
	if err := json.Unmarshal(data, &message); err != nil || message.Type != "join" || message.Token == "" {
		log.Printf("[WS] Missing join message or token")
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "Expected a join message with a game token"})
		conn.Close()
		return
	}

	session, err := h.GameService.Authorize(ctx, message.Token)
	if err != nil {
		log.Printf("[WS] Invalid token during join: %v", err)
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "Invalid game token or game not found"})
		conn.Close()
		return
	}

	gameID := session.GameID
	h.ConnManager.AddConnection(gameID, conn)
	log.Printf("[WS] Client joined game %s", gameID)

	state := session.State()
	h.ConnManager.SendMessage(gameID, domain.ServerMessage{Type: "game_state", GameID: gameID, State: &state})

	// 2. Cleanup on exit
	defer func() {
		log.Printf("[WS] Connection closed for game %s", gameID)
		h.ConnManager.RemoveConnectionIfMatching(gameID, conn)
	}()

	// 3. Main Message Loop
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Client of game %s disconnected unexpectedly: %v", gameID, err)
			}
			break
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			h.ConnManager.SendMessage(gameID, domain.ServerMessage{Type: "error", Message: "Invalid message format"})
			continue
		}

		h.processMessage(session, msg)
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(session *game.GameSession, msg domain.ClientMessage) {
	gameID := session.GameID

	switch msg.Type {
	case "make_move":
		if msg.Column == nil {
			h.ConnManager.SendMessage(gameID, domain.ServerMessage{Type: "error", Message: "column is required"})
			return
		}
		if _, err := session.HandleMove(*msg.Column); err != nil {
			h.ConnManager.SendMessage(gameID, domain.ServerMessage{Type: "error", Message: err.Error()})
		}

	case "restart":
		if err := session.Restart(); err != nil {
			h.ConnManager.SendMessage(gameID, domain.ServerMessage{Type: "error", Message: err.Error()})
		}

	case "hint":
		column, score, err := session.Hint()
		if err != nil {
			h.ConnManager.SendMessage(gameID, domain.ServerMessage{Type: "error", Message: err.Error()})
			return
		}
		h.ConnManager.SendMessage(gameID, domain.ServerMessage{Type: "hint", GameID: gameID, Column: &column, Score: &score})

	case "state":
		state := session.State()
		h.ConnManager.SendMessage(gameID, domain.ServerMessage{Type: "game_state", GameID: gameID, State: &state})

	default:
		h.ConnManager.SendMessage(gameID, domain.ServerMessage{Type: "error", Message: "Unknown message type: " + msg.Type})
	}
}
