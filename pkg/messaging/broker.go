package messaging

import "context"

// Broker fans notification events out to realtime subscribers
// (websocket gateways, mobile push bridges). Delivery is best effort:
// the notifications table is the durable record, the broker is only a
// hint that something new exists.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}
