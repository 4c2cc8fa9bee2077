package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	kafka_impl "image-thumbnailer/internal/broker/kafka"
	"image-thumbnailer/internal/config"
	image_h "image-thumbnailer/internal/http-server/handler/image"
	"image-thumbnailer/internal/http-server/router"
	minio_repo "image-thumbnailer/internal/repository/image/cloud/minio"
	image_uc "image-thumbnailer/internal/usecase/image"

	"github.com/wb-go/wbf/zlog"
)

type App struct {
	cfg      *config.Config
	server   *http.Server
	logger   *zlog.Zerolog
	producer *kafka_impl.ProducerClient
	results  *ResultListener
}

func NewApp(cfg *config.Config, logger *zlog.Zerolog) (*App, error) {
	retries := cfg.DefaultRetryStrategy()

	specs, err := cfg.ThumbnailSpecs()
	if err != nil {
		return nil, fmt.Errorf("invalid thumbnail specs: %w", err)
	}

	fileRepo, err := minio_repo.NewMinIORepository(cfg, retries, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create file repository: %w", err)
	}

	producer := kafka_impl.NewProducerClient(cfg.Kafka.Brokers, cfg.Kafka.TasksTopic)
	consumer := kafka_impl.NewConsumerClient(cfg.Kafka.Brokers, cfg.Kafka.ResultsTopic, cfg.Kafka.ResultsGroupID)

	imageUsecase := image_uc.NewImageUsecase(fileRepo, producer, specs, logger, retries)

	imageHandler := image_h.NewImageHandler(imageUsecase, cfg.Server.MaxUploadSize, logger)

	h := &router.Handler{
		ImageHandler: imageHandler,
		Logger:       logger,
	}

	mux := router.SetupRouter(h)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		cfg:      cfg,
		server:   server,
		logger:   logger,
		producer: producer,
		results:  NewResultListener(consumer, imageUsecase, retries, logger),
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Str("addr", a.cfg.Server.Addr).Msg("Starting server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.handleSignals(ctx, cancel)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.results.Run(ctx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case err := <-serverErr:
		a.logger.Error().Err(err).Msg("Server error")
		runErr = err
	case <-ctx.Done():
		a.logger.Info().Msg("Shutting down server")
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("Server shutdown failed")
	}

	wg.Wait()

	if err := a.producer.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Failed to close producer")
	}

	a.logger.Info().Msg("Server stopped gracefully")
	return runErr
}

func (a *App) handleSignals(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		a.logger.Info().Str("signal", sig.String()).Msg("Received signal")
		cancel()
	case <-ctx.Done():
	}
}
