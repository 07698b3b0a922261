package connection

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Channel reopens itself on the owning Connection when the broker closes it.
type Channel struct {
	l    zerolog.Logger
	conn *Connection

	retryDelay time.Duration

	m      sync.RWMutex
	ch     *amqp.Channel
	closed atomic.Bool
	cancel context.CancelFunc
}

func (ch *Channel) current() *amqp.Channel {
	ch.m.RLock()
	defer ch.m.RUnlock()
	return ch.ch
}

func (ch *Channel) Close() error {
	if !ch.closed.CompareAndSwap(false, true) {
		return ErrChannelClosed
	}
	ch.cancel()
	if err := ch.current().Close(); err != nil {
		return errors.Wrap(err, "close amqp channel")
	}
	return nil
}

func (ch *Channel) IsClosed() bool {
	return ch.closed.Load()
}

// DeclareQueue makes sure a durable queue with the given name exists.
func (ch *Channel) DeclareQueue(name string) error {
	if _, err := ch.current().QueueDeclare(name, true, false, false, false, nil); err != nil {
		return errors.Wrapf(err, "declare queue %s", name)
	}
	return nil
}

// Consume delivers messages from queue until ctx is done or the channel is
// closed, resubscribing whenever the underlying delivery stream ends.
func (ch *Channel) Consume(
	ctx context.Context, queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table,
) <-chan amqp.Delivery {
	out := make(chan amqp.Delivery)
	go func() {
		defer close(out)
		for {
			deliveries, err := ch.current().ConsumeWithContext(ctx, queue, consumer, autoAck, exclusive, noLocal, noWait, args)
			if err != nil {
				ch.l.Error().Err(err).Str("queue", queue).Msg("consume failed")
				select {
				case <-ctx.Done():
					return
				case <-time.After(ch.retryDelay):
					continue
				}
			}
			for d := range deliveries {
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
			if ch.IsClosed() || ctx.Err() != nil {
				return
			}
		}
	}()
	return out
}

func (ch *Channel) Publish(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if err := ch.current().PublishWithContext(ctx, exchange, key, mandatory, immediate, msg); err != nil {
		return errors.Wrap(err, "publish")
	}
	return nil
}

func (ch *Channel) watch(ctx context.Context) {
	for {
		notify := ch.current().NotifyClose(make(chan *amqp.Error, 1))
		select {
		case <-ctx.Done():
			return
		case amqpErr, ok := <-notify:
			if !ok || ch.closed.Load() {
				return
			}
			ch.l.Warn().Err(amqpErr).Msg("channel lost, reopening")
			if !ch.reopen(ctx) {
				return
			}
			ch.l.Info().Msg("channel restored")
		}
	}
}

func (ch *Channel) reopen(ctx context.Context) bool {
	for {
		if ch.closed.Load() {
			return false
		}
		raw, err := ch.conn.current().Channel()
		if err == nil {
			ch.m.Lock()
			ch.ch = raw
			ch.m.Unlock()
			return true
		}
		ch.l.Warn().Err(err).Dur("retry-in", ch.retryDelay).Msg("reopen failed")
		select {
		case <-ctx.Done():
			return false
		case <-time.After(ch.retryDelay):
		}
	}
}
