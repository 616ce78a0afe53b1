package websocket

import (
	"context"

	"relay-chat/internal/events"
)

// RedisBridge pumps envelopes published on the broker into the local hub,
// so every gateway instance subscribed to the broker delivers to its own
// connected clients.
type RedisBridge struct {
	subscriber events.Subscriber
	hub        *Hub
}

func NewRedisBridge(subscriber events.Subscriber, hub *Hub) *RedisBridge {
	return &RedisBridge{subscriber: subscriber, hub: hub}
}

func (b *RedisBridge) Run(ctx context.Context) error {
	return b.subscriber.Subscribe(ctx, []string{events.ChannelPattern()}, func(channel string, payload []byte) {
		destination, ok := events.DestinationFromChannel(channel)
		if !ok {
			return
		}
		b.hub.Broadcast(destination, payload)
	})
}
