package mq

import (
	"context"
	"encoding/json"
	"log"

	"vastra/rdx"
)

// OrderEvent is published whenever an order's status or tracking changes,
// so connected clients (the tracking websocket) see updates as they happen.
type OrderEvent struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
	Stage       string `json:"stage,omitempty"`
	Message     string `json:"message,omitempty"`
}

// OrderChannel is the pub/sub channel carrying updates for one order.
func OrderChannel(orderID string) string {
	return "order-updates:" + orderID
}

// EmitOrderEvent publishes to the order's channel. Failures are logged and
// swallowed; event delivery is best-effort and never fails the request.
func EmitOrderEvent(ctx context.Context, ev OrderEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("mq: marshal order event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, OrderChannel(ev.OrderID), data).Err(); err != nil {
		log.Printf("mq: publish order event: %v", err)
	}
}
