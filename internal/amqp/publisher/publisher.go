package publisher

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/md5check/internal/amqp/connection"
)

type DeliveryMode uint8

const (
	Transient  DeliveryMode = 1
	Persistent DeliveryMode = 2
)

type Marshal func(any) ([]byte, error)

type Config struct {
	Exchange    string
	RoutingKey  string
	Marshal     Marshal
	ContentType string
}

type Publisher[T any] interface {
	SendMessage(ctx context.Context, msg *T, mode DeliveryMode) error
}

type publisher[T any] struct {
	l   zerolog.Logger
	cfg *Config
	ch  *connection.Channel
}

func New[T any](ch *connection.Channel, cfg *Config) Publisher[T] {
	if cfg.Marshal == nil {
		cfg.Marshal = jsoniter.ConfigCompatibleWithStandardLibrary.Marshal
	}
	if cfg.ContentType == "" {
		cfg.ContentType = "application/json"
	}
	return &publisher[T]{
		cfg: cfg,
		ch:  ch,
		l: log.With().
			Str("component", "amqp-publisher").
			Type("type", *new(T)).
			Str("exchange", cfg.Exchange).
			Str("routing-key", cfg.RoutingKey).
			Logger(),
	}
}

func (p *publisher[T]) SendMessage(ctx context.Context, msg *T, mode DeliveryMode) error {
	body, err := p.cfg.Marshal(msg)
	if err != nil {
		p.l.Error().Err(err).Msg("failed to encode message")
		return errors.Wrap(err, "encode message")
	}
	publishing := amqp.Publishing{
		DeliveryMode: uint8(mode),
		ContentType:  p.cfg.ContentType,
		Body:         body,
	}
	if err = p.ch.Publish(ctx, p.cfg.Exchange, p.cfg.RoutingKey, false, false, publishing); err != nil {
		p.l.Error().Err(err).Msg("failed to publish message")
		return errors.Wrap(err, "publish message")
	}
	p.l.Debug().Int("size", len(body)).Msg("message published")
	return nil
}
