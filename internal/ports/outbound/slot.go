package outbound

import "context"

// SlotStore is a durable key-value slot. Get reports ok=false when the key has
// never been written.
type SlotStore interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}
