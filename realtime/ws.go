package realtime

import (
	"log"
	"net/http"

	"ukulima/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// WebSocketHandler upgrades GET /ws/chat and joins the caller's own room.
// Browsers cannot set headers on websocket dials, so the token may arrive as
// a query parameter instead of the Authorization header.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		token := r.Header.Get("Authorization")
		var (
			claims *middleware.Claims
			err    error
		)
		if token != "" {
			claims, err = middleware.ValidateJWT(token)
		} else {
			claims, err = middleware.ValidateRawToken(r.URL.Query().Get("token"))
		}
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}

		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			Room:   claims.UserID,
			UserID: claims.UserID,
		}

		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump drains the connection until it closes. Clients don't send chat
// over the socket; persistence happens over HTTP and the socket is
// delivery-only.
func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.Unregister(c)
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
