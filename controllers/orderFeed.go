package controllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mohit-gami/farmley-api/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsClientsMu sync.Mutex
	wsClients   = make(map[*websocket.Conn]bool)
)

// OrderFeed upgrades the connection and keeps it registered until the
// client goes away. Admin dashboards use it to see new orders live.
func OrderFeed(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wsClientsMu.Lock()
	wsClients[conn] = true
	wsClientsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			wsClientsMu.Lock()
			delete(wsClients, conn)
			wsClientsMu.Unlock()
			break
		}
	}
}

// BroadcastOrder pushes a newly created order to every connected client.
func BroadcastOrder(order models.Order) {
	data, err := json.Marshal(order)
	if err != nil {
		return
	}

	wsClientsMu.Lock()
	defer wsClientsMu.Unlock()
	for client := range wsClients {
		client.WriteMessage(websocket.TextMessage, data)
	}
}
