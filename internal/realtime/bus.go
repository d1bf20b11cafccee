package realtime

import (
	"context"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/rishtahub/rishta_backend/pkg/logger"
)

// Bus is the publish side of the fan-out transport. Publishing is
// fire-and-forget from the caller's point of view: a mutation commit never
// waits on subscriber delivery.
type Bus interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// RedisBus carries pair and typing topics over Redis pub/sub so every
// instance of the service sees every published event. A bridge goroutine
// feeds received events into the local Hub for websocket delivery.
type RedisBus struct {
	client *redis.Client
	hub    *Hub
}

// NewRedisBus connects to Redis using the given URL and verifies the
// connection with a short ping.
func NewRedisBus(url string, hub *Hub) (*RedisBus, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	return &RedisBus{client: client, hub: hub}, nil
}

var _ Bus = (*RedisBus)(nil)

func (b *RedisBus) Publish(ctx context.Context, topic string, payload []byte) error {
	return b.client.Publish(ctx, topic, payload).Err()
}

// Run subscribes to all pair and typing channels and forwards each event to
// the hub. It blocks until the context is cancelled.
func (b *RedisBus) Run(ctx context.Context) {
	pubsub := b.client.PSubscribe(ctx, "pair:*", "typing:*")
	defer func() { _ = pubsub.Close() }()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if !strings.HasPrefix(msg.Channel, "pair:") && !strings.HasPrefix(msg.Channel, "typing:") {
				continue
			}
			delivered := b.hub.Fanout(msg.Channel, []byte(msg.Payload))
			logger.Debug("Fanned out event", "topic", msg.Channel, "sessions", delivered)
		}
	}
}

func (b *RedisBus) Close() error {
	return b.client.Close()
}
