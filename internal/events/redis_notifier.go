package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisNotifier publishes envelopes on Redis pub/sub channels, one channel
// per destination. Fan-out to subscribed gateway instances is the broker's
// job; the notifier never tracks recipients itself.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func (n *RedisNotifier) Notify(ctx context.Context, destination string, payload any) error {
	env, err := NewEnvelope(destination, payload)
	if err != nil {
		return fmt.Errorf("marshal payload for %s: %w", destination, err)
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope for %s: %w", destination, err)
	}
	if err := n.client.Publish(ctx, ChannelFor(destination), data).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", destination, err)
	}
	return nil
}
