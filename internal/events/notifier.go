package events

import "context"

// Notifier is the single capability the services' surroundings need from
// the broker: push a payload at a named destination. The gateway binds it
// to whatever transport is configured.
type Notifier interface {
	Notify(ctx context.Context, destination string, payload any) error
}

// Subscriber consumes payloads published on broker channels.
type Subscriber interface {
	Subscribe(ctx context.Context, patterns []string, handler func(channel string, payload []byte)) error
}
