package connection

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrConnClosed    = errors.New("amqp connection is already closed")
	ErrChannelClosed = errors.New("amqp channel is already closed")
)

// Connection is an amqp connection that redials itself after the broker
// drops it, until Close is called.
type Connection struct {
	l    zerolog.Logger
	uri  string
	opts amqp.Config

	retryDelay time.Duration

	m      sync.RWMutex
	conn   *amqp.Connection
	closed atomic.Bool
	cancel context.CancelFunc
}

func New(ctx context.Context, uri string, opts amqp.Config, retryDelay time.Duration) (*Connection, error) {
	c, err := amqp.DialConfig(uri, opts)
	if err != nil {
		return nil, errors.Wrap(err, "dial amqp")
	}
	ctx, cancel := context.WithCancel(ctx)
	conn := &Connection{
		uri:        uri,
		opts:       opts,
		conn:       c,
		retryDelay: retryDelay,
		cancel:     cancel,
		l:          log.With().Str("component", "amqp-connection").Logger(),
	}
	go conn.watch(ctx)
	return conn, nil
}

func (c *Connection) current() *amqp.Connection {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.conn
}

func (c *Connection) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrConnClosed
	}
	c.cancel()
	c.m.Lock()
	defer c.m.Unlock()
	if err := c.conn.Close(); err != nil {
		return errors.Wrap(err, "close amqp connection")
	}
	return nil
}

func (c *Connection) watch(ctx context.Context) {
	for {
		notify := c.current().NotifyClose(make(chan *amqp.Error, 1))
		select {
		case <-ctx.Done():
			return
		case amqpErr, ok := <-notify:
			if !ok || c.closed.Load() {
				return
			}
			c.l.Warn().Err(amqpErr).Msg("connection lost, redialing")
			if !c.redial(ctx) {
				return
			}
			c.l.Info().Msg("connection restored")
		}
	}
}

func (c *Connection) redial(ctx context.Context) bool {
	for {
		if c.closed.Load() {
			return false
		}
		cc, err := amqp.DialConfig(c.uri, c.opts)
		if err == nil {
			c.m.Lock()
			c.conn = cc
			c.m.Unlock()
			return true
		}
		c.l.Warn().Err(err).Dur("retry-in", c.retryDelay).Msg("redial failed")
		select {
		case <-ctx.Done():
			return false
		case <-time.After(c.retryDelay):
		}
	}
}

func (c *Connection) Channel(ctx context.Context) (*Channel, error) {
	raw, err := c.current().Channel()
	if err != nil {
		return nil, errors.Wrap(err, "open amqp channel")
	}
	ctx, cancel := context.WithCancel(ctx)
	ch := &Channel{
		ch:         raw,
		conn:       c,
		retryDelay: c.retryDelay,
		cancel:     cancel,
		l:          log.With().Str("component", "amqp-channel").Logger(),
	}
	go ch.watch(ctx)
	return ch, nil
}
