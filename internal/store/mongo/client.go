package mongo

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func NewClient(cfg *ClientConfig) (*mongo.Client, error) {
	sink := &logger{log: log.With().Str("component", "mongo").Logger()}
	logOpts := options.
		Logger().
		SetSink(sink).
		SetComponentLevel(options.LogComponentCommand, options.LogLevelDebug).
		SetComponentLevel(options.LogComponentConnection, options.LogLevelInfo)
	bsonOpts := &options.BSONOptions{
		UseJSONStructTags: true,
		NilSliceAsEmpty:   true,
	}
	opts := options.
		Client().
		ApplyURI(cfg.URI).
		SetLoggerOptions(logOpts).
		SetBSONOptions(bsonOpts)
	if cfg.Username != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongodb")
	}
	return client, nil
}
