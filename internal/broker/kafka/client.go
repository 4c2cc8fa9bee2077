package kafka

import (
	"context"
	"errors"

	"image-thumbnailer/internal/broker"
	"image-thumbnailer/internal/config"

	"github.com/wb-go/wbf/retry"
)

// KafkaClient is the worker's side of the broker: it consumes thumbnail tasks
// and publishes thumbnail results.
type KafkaClient struct {
	producerClient *ProducerClient
	consumerClient *ConsumerClient
}

func NewKafkaClient(cfg *config.Config) *KafkaClient {
	return &KafkaClient{
		producerClient: NewProducerClient(cfg.Kafka.Brokers, cfg.Kafka.ResultsTopic),
		consumerClient: NewConsumerClient(cfg.Kafka.Brokers, cfg.Kafka.TasksTopic, cfg.Kafka.GroupID),
	}
}

func (k *KafkaClient) Send(ctx context.Context, strategy retry.Strategy, key, value []byte) error {
	return k.producerClient.Send(ctx, strategy, key, value)
}

func (k *KafkaClient) Commit(ctx context.Context, msg *broker.Message) error {
	return k.consumerClient.Commit(ctx, msg)
}

func (k *KafkaClient) Start(ctx context.Context, out chan<- *broker.Message, strategy retry.Strategy) {
	k.consumerClient.Start(ctx, out, strategy)
}

func (k *KafkaClient) Close() error {
	var errs []error

	if k.producerClient != nil {
		if err := k.producerClient.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if k.consumerClient != nil {
		if err := k.consumerClient.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
