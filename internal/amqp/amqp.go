package amqp

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ykhdr/md5check/internal/amqp/connection"
)

func Dial(ctx context.Context, cfg *Config) (*connection.Connection, error) {
	opts := amqp.Config{}
	if cfg.Username != "" {
		opts.SASL = []amqp.Authentication{
			&amqp.PlainAuth{
				Username: cfg.Username,
				Password: cfg.Password,
			},
		}
	}
	return connection.New(ctx, cfg.URI, opts, cfg.ReconnectTimeout)
}
