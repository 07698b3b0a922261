package consumer

import (
	"context"
	"runtime/debug"

	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/md5check/internal/amqp/connection"
)

type Unmarshal func(data []byte, v any) error

type Handler[T any] func(ctx context.Context, msg *T, d amqp.Delivery) error

type Config struct {
	Unmarshal Unmarshal
	Queue     string
	Consumer  string
	AutoAck   bool
	Exclusive bool
	NoLocal   bool
	NoWait    bool
	Args      amqp.Table
}

type Consumer interface {
	// Subscribe blocks, handling deliveries one at a time until ctx is done.
	Subscribe(ctx context.Context)
}

type consumer[T any] struct {
	l       zerolog.Logger
	cfg     *Config
	ch      *connection.Channel
	handler Handler[T]
}

func New[T any](ch *connection.Channel, handler Handler[T], cfg *Config) Consumer {
	if handler == nil {
		handler = func(context.Context, *T, amqp.Delivery) error { return nil }
	}
	if cfg.Unmarshal == nil {
		cfg.Unmarshal = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal
	}
	return &consumer[T]{
		cfg:     cfg,
		ch:      ch,
		handler: handler,
		l: log.With().
			Str("component", "amqp-consumer").
			Type("type", *new(T)).
			Str("queue", cfg.Queue).
			Logger(),
	}
}

func (c *consumer[T]) Subscribe(ctx context.Context) {
	deliveries := c.ch.Consume(ctx, c.cfg.Queue, c.cfg.Consumer, c.cfg.AutoAck, c.cfg.Exclusive,
		c.cfg.NoLocal, c.cfg.NoWait, c.cfg.Args)
	c.l.Debug().Msg("consumer subscribed")
	for {
		select {
		case <-ctx.Done():
			c.l.Debug().Msg("consumer stopped")
			return
		case d, ok := <-deliveries:
			if !ok {
				c.l.Debug().Msg("delivery stream closed")
				return
			}
			c.dispatch(ctx, d)
		}
	}
}

func (c *consumer[T]) dispatch(ctx context.Context, d amqp.Delivery) {
	var msg T
	if err := c.cfg.Unmarshal(d.Body, &msg); err != nil {
		c.l.Error().Err(err).Bytes("body", d.Body).Msg("failed to decode delivery")
		if !c.cfg.AutoAck {
			_ = d.Reject(false)
		}
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.l.Error().Msgf("handler panic: %v\n%s", r, debug.Stack())
		}
	}()
	if err := c.handler(ctx, &msg, d); err != nil {
		c.l.Error().Err(err).Msg("failed to handle delivery")
	}
}
