package live

import (
	"context"

	"banhchi-platform/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const changeChannel = "banhchi:ledger:changed"

// RedisBridge propagates ledger-change notifications across API instances
// via Redis pub/sub. The guest service notifies the bridge; the bridge
// publishes the event id; every instance's Run loop (this one included)
// receives it and triggers its local hub.
type RedisBridge struct {
	rdb *redis.Client
	hub *Hub
}

func NewRedisBridge(rdb *redis.Client, hub *Hub) *RedisBridge {
	return &RedisBridge{rdb: rdb, hub: hub}
}

// LedgerChanged publishes the change. Delivery to the local hub happens via
// the Run loop so every instance handles the notification the same way.
// Publish failures degrade to a local-only push rather than dropping the
// update.
func (b *RedisBridge) LedgerChanged(ctx context.Context, eventID string) {
	if err := b.rdb.Publish(ctx, changeChannel, eventID).Err(); err != nil {
		logger.From(ctx).Error("ledger change publish failed", "event_id", eventID, "err", err)
		b.hub.LedgerChanged(ctx, eventID)
	}
}

// Run consumes change notifications until ctx is canceled. Call it from a
// dedicated goroutine at startup.
func (b *RedisBridge) Run(ctx context.Context) {
	sub := b.rdb.Subscribe(ctx, changeChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			b.hub.LedgerChanged(ctx, msg.Payload)
		}
	}
}
