package broker

import (
	"context"

	"github.com/wb-go/wbf/retry"
)

type Message struct {
	Topic     string
	Partition int
	Key       []byte
	Value     []byte
	Offset    int64
}

type Producer interface {
	Send(ctx context.Context, strategy retry.Strategy, key, value []byte) error
	Close() error
}

type Consumer interface {
	Commit(ctx context.Context, msg *Message) error
	// Start delivers messages to out until ctx is done, then closes out.
	Start(ctx context.Context, out chan<- *Message, strategy retry.Strategy)
	Close() error
}
