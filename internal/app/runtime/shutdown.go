package runtime

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func NotifyContext(parent context.Context) (context.Context, func()) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// Closers runs registered cleanup steps in reverse registration order.
type Closers struct {
	steps []closeStep
}

type closeStep struct {
	name string
	fn   func() error
}

func (c *Closers) Add(name string, fn func() error) {
	c.steps = append(c.steps, closeStep{name: name, fn: fn})
}

func (c *Closers) Close() {
	for i := len(c.steps) - 1; i >= 0; i-- {
		st := c.steps[i]
		if err := st.fn(); err != nil {
			log.Printf("[shutdown] %s: %v", st.name, err)
		}
	}
}
