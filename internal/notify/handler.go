package notify

import (
	"log"
	"net/http"
	"strings"
	"time"

	"docstore-api/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	Hub            *Hub
	allowedOrigins []string
	upgrader       websocket.Upgrader
}

// NewWebSocketHandler builds a handler whose upgrader admits the given
// comma-separated origins. "*" admits any origin; requests without an
// Origin header (non-browser clients) always pass.
func NewWebSocketHandler(hub *Hub, allowedOrigins string) *WebSocketHandler {
	ws := &WebSocketHandler{
		Hub:            hub,
		allowedOrigins: strings.Split(allowedOrigins, ","),
	}
	ws.upgrader = websocket.Upgrader{CheckOrigin: ws.checkOrigin}
	return ws
}

func (ws *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range ws.allowedOrigins {
		allowed = strings.TrimSpace(allowed)
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// HandleWebSocket godoc
// @Summary Subscribe to document change events
// @Description Upgrade to a websocket that receives change events for the authenticated user's documents
// @Tags notifications
// @Security BearerAuth
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} object{error=string}
// @Router /ws [get]
func (ws *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userId, ok := auth.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := ws.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		ID:     uuid.New().String(),
		UserID: userId,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		Hub:    ws.Hub,
	}

	ws.Hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump discards inbound frames; the feed is one-way. It exists to
// process control messages and detect closed connections.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(time.Second * 54)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
