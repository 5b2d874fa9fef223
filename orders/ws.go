package orders

import (
	"context"
	"log"
	"net/http"
	"time"

	"vastra/middleware"
	"vastra/mq"
	"vastra/rdx"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS policy is enforced at the HTTP layer
	},
}

// OrderUpdates streams tracking/status events for one order over a
// websocket. The token comes via ?token= since browser websockets cannot
// set an Authorization header.
func OrderUpdates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = r.Header.Get("Authorization")
	}
	claims, err := middleware.ValidateJWT(token)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	order, err := findOwnedOrder(ctx, ps.ByName("orderId"), claims.UserID)
	cancel()
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("OrderUpdates upgrade error:", err)
		return
	}
	defer conn.Close()

	sub := rdx.Conn.Subscribe(context.Background(), mq.OrderChannel(order.ID))
	defer sub.Close()

	// Reader loop just watches for the client going away; closing the
	// subscription closes Channel() and ends the write loop below.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				sub.Close()
				return
			}
		}
	}()

	for msg := range sub.Channel() {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
			return
		}
	}
}
