package kafka

import (
	"context"

	wbkafka "github.com/wb-go/wbf/kafka"
	"github.com/wb-go/wbf/retry"
)

type ProducerClient struct {
	producer *wbkafka.Producer
	topic    string
}

func NewProducerClient(brokers []string, topic string) *ProducerClient {
	return &ProducerClient{
		producer: wbkafka.NewProducer(brokers, topic),
		topic:    topic,
	}
}

func (p *ProducerClient) Topic() string {
	return p.topic
}

func (p *ProducerClient) Send(ctx context.Context, strategy retry.Strategy, key, value []byte) error {
	return p.producer.SendWithRetry(ctx, strategy, key, value)
}

func (p *ProducerClient) Close() error {
	return p.producer.Close()
}
