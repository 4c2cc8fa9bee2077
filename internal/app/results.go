package app

import (
	"context"
	"encoding/json"

	"image-thumbnailer/internal/broker"
	"image-thumbnailer/internal/domain"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type resultSink interface {
	SaveProcessingResult(ctx context.Context, result *domain.ThumbnailResult) error
}

// ResultListener feeds worker results back into the API's view of image status.
type ResultListener struct {
	consumer broker.Consumer
	sink     resultSink
	retries  retry.Strategy
	logger   *zlog.Zerolog
}

func NewResultListener(consumer broker.Consumer, sink resultSink, retries retry.Strategy, logger *zlog.Zerolog) *ResultListener {
	return &ResultListener{
		consumer: consumer,
		sink:     sink,
		retries:  retries,
		logger:   logger,
	}
}

// Run consumes results until ctx is done, then closes the consumer.
func (l *ResultListener) Run(ctx context.Context) {
	messages := make(chan *broker.Message, 16)
	l.consumer.Start(ctx, messages, l.retries)

	for msg := range messages {
		l.handle(ctx, msg)
	}

	if err := l.consumer.Close(); err != nil {
		l.logger.Error().Err(err).Msg("Failed to close results consumer")
	}
}

func (l *ResultListener) handle(ctx context.Context, msg *broker.Message) {
	var result domain.ThumbnailResult
	if err := json.Unmarshal(msg.Value, &result); err != nil {
		l.logger.Error().Err(err).Int64("offset", msg.Offset).Msg("Failed to unmarshal result")
		l.commit(ctx, msg)
		return
	}

	if err := l.sink.SaveProcessingResult(ctx, &result); err != nil {
		l.logger.Error().Err(err).Str("image_id", result.ImageID).Msg("Failed to save result")
		return
	}
	l.commit(ctx, msg)
}

func (l *ResultListener) commit(ctx context.Context, msg *broker.Message) {
	if err := l.consumer.Commit(ctx, msg); err != nil {
		l.logger.Error().Err(err).Int64("offset", msg.Offset).Msg("Failed to commit result")
	}
}
