package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"cart_service/internal/core/domain"
)

// Entry is a notification as shown in the toast area.
type Entry struct {
	Seq int64 `json:"seq"`
	domain.Notification
	At time.Time `json:"at"`
}

// Feed logs every notification and keeps the most recent ones for the UI.
type Feed struct {
	mu      sync.RWMutex
	limit   int
	seq     int64
	entries []Entry
	now     func() time.Time
}

func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = 20
	}
	return &Feed{limit: limit, now: time.Now}
}

func (f *Feed) Notify(ctx context.Context, n domain.Notification) {
	log.Printf("[toast] %s product_id=%d: %s", n.Kind, n.ProductID, n.Message)

	f.mu.Lock()
	f.seq++
	e := Entry{Seq: f.seq, Notification: n, At: f.now()}
	f.entries = append(f.entries, e)
	if over := len(f.entries) - f.limit; over > 0 {
		f.entries = append(f.entries[:0:0], f.entries[over:]...)
	}
	f.mu.Unlock()

	if c := collectorFrom(ctx); c != nil {
		c.add(n)
	}
}

// Recent returns retained entries, oldest first.
func (f *Feed) Recent() []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Collector gathers the notifications raised while serving one request.
type Collector struct {
	mu  sync.Mutex
	got []domain.Notification
}

type collectorKey struct{}

// Collect returns a child context whose notifications are also recorded in
// the returned Collector.
func Collect(ctx context.Context) (context.Context, *Collector) {
	c := &Collector{}
	return context.WithValue(ctx, collectorKey{}, c), c
}

func collectorFrom(ctx context.Context) *Collector {
	c, _ := ctx.Value(collectorKey{}).(*Collector)
	return c
}

func (c *Collector) add(n domain.Notification) {
	c.mu.Lock()
	c.got = append(c.got, n)
	c.mu.Unlock()
}

func (c *Collector) Notifications() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Notification, len(c.got))
	copy(out, c.got)
	return out
}
