package kafka

import (
	"context"

	"image-thumbnailer/internal/broker"

	kafka "github.com/segmentio/kafka-go"
	wbkafka "github.com/wb-go/wbf/kafka"
	"github.com/wb-go/wbf/retry"
)

type ConsumerClient struct {
	consumer *wbkafka.Consumer
	topic    string
}

func NewConsumerClient(brokers []string, topic, groupID string) *ConsumerClient {
	return &ConsumerClient{
		consumer: wbkafka.NewConsumer(brokers, topic, groupID),
		topic:    topic,
	}
}

func (c *ConsumerClient) Fetch(ctx context.Context, strategy retry.Strategy) (*broker.Message, error) {
	msg, err := c.consumer.FetchWithRetry(ctx, strategy)
	if err != nil {
		return nil, err
	}
	return fromKafka(msg), nil
}

func (c *ConsumerClient) Commit(ctx context.Context, msg *broker.Message) error {
	return c.consumer.Commit(ctx, toKafka(msg))
}

func (c *ConsumerClient) Start(ctx context.Context, out chan<- *broker.Message, strategy retry.Strategy) {
	raw := make(chan kafka.Message, cap(out))
	go c.consumer.StartConsuming(ctx, raw, strategy)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-raw:
				if !ok {
					return
				}
				select {
				case out <- fromKafka(msg):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
}

func (c *ConsumerClient) Close() error {
	return c.consumer.Close()
}

func fromKafka(msg kafka.Message) *broker.Message {
	return &broker.Message{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Key:       msg.Key,
		Value:     msg.Value,
		Offset:    msg.Offset,
	}
}

func toKafka(msg *broker.Message) kafka.Message {
	return kafka.Message{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Key:       msg.Key,
		Value:     msg.Value,
		Offset:    msg.Offset,
	}
}
