package kafkain

import (
	"context"
	"errors"
	"log"
	"time"

	"cart_service/internal/ports/inbound"

	"github.com/segmentio/kafka-go"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer applies cart commands from a topic. Cart operations never fail
// from the caller's point of view, so every decoded command is committed
// once applied.
type Consumer struct {
	reader     messageReader
	uc         inbound.CartUseCase
	retryDelay time.Duration
}

type ConsumerConfig struct {
	Brokers  []string
	Topic    string
	GroupID  string
	MinBytes int
	MaxBytes int
}

func NewConsumer(cfg ConsumerConfig, uc inbound.CartUseCase) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: cfg.MinBytes,
		MaxBytes: cfg.MaxBytes,
	})
	return &Consumer{reader: r, uc: uc, retryDelay: 500 * time.Millisecond}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			log.Printf("[kafka] fetch error: %v", err)
			if !sleep(ctx, c.retryDelay) {
				return
			}
			continue
		}

		cmd, derr := DecodeCommand(msg.Value)
		if derr != nil {
			log.Printf("[kafka] bad command (skip+commit) key=%s offset=%d err=%v", string(msg.Key), msg.Offset, derr)
			c.commit(ctx, msg)
			continue
		}

		c.uc.Apply(ctx, cmd)
		c.commit(ctx, msg)
	}
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		// A failed commit means redelivery; add is not idempotent, so this is logged loudly.
		log.Printf("[kafka] commit error offset=%d: %v", msg.Offset, err)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
