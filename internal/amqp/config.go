package amqp

import (
	"time"

	"github.com/ykhdr/md5check/internal/amqp/consumer"
	"github.com/ykhdr/md5check/internal/amqp/publisher"
)

type Config struct {
	URI              string           `kdl:"uri"`
	Username         string           `kdl:"username"`
	Password         string           `kdl:"password"`
	ReconnectTimeout time.Duration    `kdl:"reconnect-timeout"`
	PublisherConfig  *PublisherConfig `kdl:"publisher"`
	ConsumerConfig   *ConsumerConfig  `kdl:"consumer"`
}

type PublisherConfig struct {
	Exchange   string `kdl:"exchange"`
	RoutingKey string `kdl:"routing-key"`
}

func (p *PublisherConfig) ToPublisherConfig(marshal publisher.Marshal, contentType string) *publisher.Config {
	return &publisher.Config{
		Exchange:    p.Exchange,
		RoutingKey:  p.RoutingKey,
		Marshal:     marshal,
		ContentType: contentType,
	}
}

type ConsumerConfig struct {
	Queue string `kdl:"queue"`
}

// ToConsumerConfig returns a manual-ack consumer config for the queue.
func (c *ConsumerConfig) ToConsumerConfig(unmarshal consumer.Unmarshal) *consumer.Config {
	return &consumer.Config{
		Unmarshal: unmarshal,
		Queue:     c.Queue,
	}
}
