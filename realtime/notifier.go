package realtime

import (
	"context"
	"encoding/json"
	"log"

	"ukulima/models"
	"ukulima/rdx"
)

const chatChannel = "chat-events"

// Notifier publishes persisted messages to redis so every instance can
// deliver to whichever one holds the receiver's socket. It satisfies
// messages.Notifier.
type Notifier struct{}

func NewNotifier() *Notifier {
	return &Notifier{}
}

type chatEvent struct {
	Event   string         `json:"event"`
	To      string         `json:"to"`
	Message models.Message `json:"message"`
}

func (n *Notifier) NotifyMessage(msg models.Message) {
	data, err := json.Marshal(chatEvent{Event: "receive_message", To: msg.Receiver, Message: msg})
	if err != nil {
		log.Printf("chat event marshal error: %v", err)
		return
	}
	if err := rdx.Conn.Publish(context.Background(), chatChannel, data).Err(); err != nil {
		log.Printf("chat event publish error: %v", err)
	}
}

// StartDeliveryWorker subscribes to the chat channel and forwards each event
// to the receiver's room on the local hub. Runs until the context ends.
func StartDeliveryWorker(ctx context.Context, hub *Hub) {
	sub := rdx.Conn.Subscribe(ctx, chatChannel)
	ch := sub.Channel()

	log.Println("[DeliveryWorker] listening for chat events")
	for {
		select {
		case <-ctx.Done():
			sub.Close()
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event chatEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[DeliveryWorker] bad payload: %v", err)
				continue
			}
			hub.Deliver(event.To, []byte(msg.Payload))
		}
	}
}
