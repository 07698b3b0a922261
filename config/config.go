package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/ykhdr/md5check/internal/amqp"
	"github.com/ykhdr/md5check/internal/config"
	"github.com/ykhdr/md5check/internal/consul"
	"github.com/ykhdr/md5check/internal/hashcrack/enumerator"
	"github.com/ykhdr/md5check/internal/store/mongo"
)

const (
	DefaultMaxLength = 12
	DefaultDelay     = 4 * time.Second
)

type BruteforceConfig struct {
	MaxLength int    `kdl:"max-length"`
	Alphabet  string `kdl:"alphabet"`
	Digest    string `kdl:"digest"`
}

type DictionaryConfig struct {
	File string `kdl:"file"`
}

type OnlineConfig struct {
	ServersFile string        `kdl:"servers-file"`
	Delay       time.Duration `kdl:"delay"`
	Timeout     time.Duration `kdl:"timeout"`
}

type Config struct {
	config.LogConfig
	ServerPort       int               `kdl:"server-port"`
	Strategy         string            `kdl:"strategy"`
	BruteforceConfig *BruteforceConfig `kdl:"bruteforce"`
	DictionaryConfig *DictionaryConfig `kdl:"dictionary"`
	OnlineConfig     *OnlineConfig     `kdl:"online"`
	MongoDBConfig    *mongo.Config     `kdl:"mongo"`
	AmqpConfig       *amqp.Config      `kdl:"amqp"`
	ConsulConfig     *consul.Config    `kdl:"consul"`
}

func DefaultConfig() *Config {
	return &Config{
		LogConfig:  config.LogConfig{LogLevel: "info"},
		ServerPort: 8080,
		Strategy:   "bruteforce",
		BruteforceConfig: &BruteforceConfig{
			MaxLength: DefaultMaxLength,
			Alphabet:  enumerator.DefaultAlphabet().String(),
			Digest:    "md5",
		},
		DictionaryConfig: &DictionaryConfig{},
		OnlineConfig: &OnlineConfig{
			ServersFile: "servers.json",
			Delay:       DefaultDelay,
			Timeout:     30 * time.Second,
		},
		AmqpConfig: &amqp.Config{
			URI:              "amqp://rabbitmq:5672/",
			ReconnectTimeout: 5 * time.Second,
			ConsumerConfig:   &amqp.ConsumerConfig{Queue: "crack-requests"},
			PublisherConfig:  &amqp.PublisherConfig{RoutingKey: "crack-responses"},
		},
		ConsulConfig: &consul.Config{
			Address: "consul:8500",
			Health: &consul.HealthConfig{
				Interval: "2s",
				Timeout:  "1s",
				Http:     "/api/health",
			},
		},
	}
}

// InitializeConfig loads the config at path, or ./config/config.kdl when path
// is empty, and sets up the global logger.
func InitializeConfig(path string) (*Config, error) {
	cfg, err := config.Initialize[Config](path, *DefaultConfig())
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Alphabet() (enumerator.Alphabet, error) {
	a, err := enumerator.NewAlphabet(c.BruteforceConfig.Alphabet)
	if err != nil {
		return enumerator.Alphabet{}, errors.Wrap(err, "bruteforce alphabet")
	}
	return a, nil
}

func (c *Config) Validate() error {
	if c.BruteforceConfig == nil || c.OnlineConfig == nil || c.DictionaryConfig == nil {
		return errors.New("strategy sections must not be empty")
	}
	if c.BruteforceConfig.MaxLength < 0 {
		return errors.Errorf("bruteforce max-length must not be negative, got %d", c.BruteforceConfig.MaxLength)
	}
	if _, err := c.Alphabet(); err != nil {
		return err
	}
	if c.OnlineConfig.Delay < 0 {
		return errors.New("online delay must not be negative")
	}
	return nil
}
