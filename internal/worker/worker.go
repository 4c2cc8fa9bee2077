package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"image-thumbnailer/internal/broker"
	kafka_impl "image-thumbnailer/internal/broker/kafka"
	"image-thumbnailer/internal/config"
	"image-thumbnailer/internal/domain"
	minio_repo "image-thumbnailer/internal/repository/image/cloud/minio"
	"image-thumbnailer/internal/usecase/processor"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type Worker struct {
	logger      *zlog.Zerolog
	consumer    broker.Consumer
	results     broker.Producer
	processor   thumbnailProcessor
	fileRepo    fileRepository
	retries     retry.Strategy
	concurrency int
	wg          sync.WaitGroup
}

func NewWorker(cfg *config.Config, logger *zlog.Zerolog) (*Worker, error) {
	retries := cfg.DefaultRetryStrategy()

	fileRepo, err := minio_repo.NewMinIORepository(cfg, retries, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create file repository: %w", err)
	}

	proc, err := processor.NewFromConfig(cfg.Thumbnails, fileRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create thumbnail processor: %w", err)
	}

	client := kafka_impl.NewKafkaClient(cfg)

	logger.Info().
		Strs("brokers", cfg.Kafka.Brokers).
		Str("topic", cfg.Kafka.TasksTopic).
		Str("results_topic", cfg.Kafka.ResultsTopic).
		Str("group", cfg.Kafka.GroupID).
		Int("concurrency", cfg.Worker.Concurrency).
		Msg("Worker configuration")

	return New(client, client, proc, fileRepo, retries, cfg.Worker.Concurrency, logger), nil
}

func New(consumer broker.Consumer, results broker.Producer, proc thumbnailProcessor, fileRepo fileRepository, retries retry.Strategy, concurrency int, logger *zlog.Zerolog) *Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Worker{
		logger:      logger,
		consumer:    consumer,
		results:     results,
		processor:   proc,
		fileRepo:    fileRepo,
		retries:     retries,
		concurrency: concurrency,
	}
}

// Run serves until SIGINT or SIGTERM.
func (w *Worker) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			w.logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal, stopping worker...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return w.Serve(ctx)
}

// Serve consumes tasks until ctx is done and the in-flight tasks have finished.
func (w *Worker) Serve(ctx context.Context) error {
	w.logger.Info().Int("concurrency", w.concurrency).Msg("Starting worker")

	messages := make(chan *broker.Message, w.concurrency*2)
	w.consumer.Start(ctx, messages, w.retries)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go func(id int) {
			defer w.wg.Done()
			w.processWorker(ctx, id, messages)
		}(i)
	}

	w.logger.Info().Msg("Worker started successfully")
	<-ctx.Done()

	w.logger.Info().Msg("Shutting down worker gracefully...")
	w.wg.Wait()

	if err := w.consumer.Close(); err != nil {
		w.logger.Error().Err(err).Msg("Failed to close consumer")
	}
	if any(w.results) != any(w.consumer) {
		if err := w.results.Close(); err != nil {
			w.logger.Error().Err(err).Msg("Failed to close results producer")
		}
	}

	w.logger.Info().Msg("Worker stopped gracefully")
	return nil
}

func (w *Worker) processWorker(ctx context.Context, id int, messages <-chan *broker.Message) {
	w.logger.Info().Int("worker_id", id).Msg("Worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Debug().Int("worker_id", id).Msg("Worker stopping")
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			w.handle(ctx, id, msg)
		}
	}
}

func (w *Worker) handle(ctx context.Context, id int, msg *broker.Message) {
	startTime := time.Now()
	w.logger.Debug().Int("worker_id", id).Int("message_size", len(msg.Value)).Msg("Processing message")

	if err := w.safeProcessMessage(ctx, id, msg); err != nil {
		w.logger.Error().
			Err(err).
			Int("worker_id", id).
			Int64("offset", msg.Offset).
			Msg("Failed to process message")
		return
	}

	if err := w.consumer.Commit(ctx, msg); err != nil {
		w.logger.Error().
			Err(err).
			Int64("offset", msg.Offset).
			Int("worker_id", id).
			Msg("Failed to commit message after successful processing")
		return
	}

	w.logger.Debug().
		Int("worker_id", id).
		Int64("offset", msg.Offset).
		Dur("duration", time.Since(startTime)).
		Msg("Message processed and committed successfully")
}

func (w *Worker) safeProcessMessage(ctx context.Context, workerID int, msg *broker.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error().
				Int("worker_id", workerID).
				Interface("panic", r).
				Int64("offset", msg.Offset).
				Msg("Panic recovered while processing message")
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.processMessage(ctx, msg)
}

func (w *Worker) processMessage(ctx context.Context, msg *broker.Message) error {
	var task domain.ThumbnailTask
	if err := json.Unmarshal(msg.Value, &task); err != nil {
		w.logger.Error().Err(err).Str("message", string(msg.Value)).Int64("offset", msg.Offset).Msg("Failed to unmarshal task")
		return fmt.Errorf("failed to unmarshal task: %w", err)
	}

	w.logger.Info().
		Str("task_id", task.ID).
		Str("image_id", task.ImageID).
		Strs("specs", task.Specs).
		Int64("offset", msg.Offset).
		Msg("Processing task started")

	data, err := w.readOriginal(ctx, task.OriginalPath)
	if err != nil {
		w.logger.Error().Err(err).Str("image_id", task.ImageID).Str("path", task.OriginalPath).Msg("Failed to get original image")
		w.publish(ctx, &domain.ThumbnailResult{TaskID: task.ID, ImageID: task.ImageID, Status: domain.StatusFailed, Error: err.Error()})
		return fmt.Errorf("failed to get original image: %w", err)
	}

	result, err := w.processor.Process(ctx, &task, data)
	w.publish(ctx, result)
	if err != nil {
		return fmt.Errorf("thumbnail generation failed: %w", err)
	}

	w.logger.Info().
		Str("image_id", task.ImageID).
		Int("thumbnails", len(result.Thumbnails)).
		Msg("Thumbnails generated successfully")
	return nil
}

func (w *Worker) readOriginal(ctx context.Context, path string) ([]byte, error) {
	reader, err := w.fileRepo.GetObject(ctx, path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

func (w *Worker) publish(ctx context.Context, result *domain.ThumbnailResult) {
	if result == nil {
		return
	}

	value, err := json.Marshal(result)
	if err != nil {
		w.logger.Error().Err(err).Str("image_id", result.ImageID).Msg("Failed to marshal result")
		return
	}

	if err := w.results.Send(ctx, w.retries, []byte(result.ImageID), value); err != nil {
		w.logger.Error().Err(err).Str("image_id", result.ImageID).Str("status", string(result.Status)).Msg("Failed to publish result")
	}
}
