package config

import (
	"fmt"
	"os"
	"time"

	"image-thumbnailer/internal/thumbnail"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/wb-go/wbf/retry"
)

const defaultConfigPath = "config/config.yaml"

type Config struct {
	Server     Server     `yaml:"server"`
	Kafka      Kafka      `yaml:"kafka"`
	Minio      Minio      `yaml:"minio"`
	Worker     Worker     `yaml:"worker"`
	Retry      Retry      `yaml:"retry"`
	Thumbnails Thumbnails `yaml:"thumbnails"`
}

type Server struct {
	Addr            string        `yaml:"addr" env:"SERVER_ADDR" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxUploadSize   int64         `yaml:"max_upload_size" env:"SERVER_MAX_UPLOAD_SIZE" env-default:"33554432"`
}

type Kafka struct {
	Brokers      []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:"," env-default:"localhost:9092"`
	TasksTopic   string   `yaml:"tasks_topic" env:"KAFKA_TASKS_TOPIC" env-default:"thumbnail-tasks"`
	ResultsTopic string   `yaml:"results_topic" env:"KAFKA_RESULTS_TOPIC" env-default:"thumbnail-results"`
	GroupID      string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"thumbnail-worker-group"`
	// ResultsGroupID is the consumer group of the API's result listener.
	ResultsGroupID string `yaml:"results_group_id" env:"KAFKA_RESULTS_GROUP_ID" env-default:"thumbnail-api-group"`
}

type Minio struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY" env-default:"minioadmin"`
	SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY" env-default:"minioadmin"`
	Bucket    string `yaml:"bucket" env:"MINIO_BUCKET" env-default:"images"`
	UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL" env-default:"false"`
	Region    string `yaml:"region" env:"MINIO_REGION"`
}

type Worker struct {
	Concurrency int `yaml:"concurrency" env:"WORKER_CONCURRENCY" env-default:"4"`
}

type Retry struct {
	Attempts int           `yaml:"attempts" env:"RETRY_ATTEMPTS" env-default:"3"`
	Delay    time.Duration `yaml:"delay" env:"RETRY_DELAY" env-default:"500ms"`
	Backoff  float64       `yaml:"backoff" env:"RETRY_BACKOFF" env-default:"2"`
}

type Thumbnails struct {
	Backend string `yaml:"backend" env:"THUMBNAILS_BACKEND" env-default:"gd"`
	// Background is "#rrggbb", "#rgb" or "r,g,b[,a]". In the list form a runs
	// 0..255 with 255 opaque, unlike GD's 0..127 where 127 is transparent.
	Background        string  `yaml:"background" env:"THUMBNAILS_BACKGROUND"`
	BackgroundOpacity float64 `yaml:"background_opacity" env:"THUMBNAILS_BACKGROUND_OPACITY" env-default:"1"`
	Quality           int     `yaml:"quality" env:"THUMBNAILS_QUALITY" env-default:"100"`
	// Concurrency bounds the specs rendered at once for one image; 0 renders all at once.
	Concurrency int       `yaml:"concurrency" env:"THUMBNAILS_CONCURRENCY" env-default:"0"`
	Watermark   Watermark `yaml:"watermark"`

	Specs map[string]map[string]any `yaml:"specs"`
}

type Watermark struct {
	Path     string  `yaml:"path" env:"THUMBNAILS_WATERMARK_PATH"`
	Text     string  `yaml:"text" env:"THUMBNAILS_WATERMARK_TEXT"`
	FontSize float64 `yaml:"font_size" env:"THUMBNAILS_WATERMARK_FONT_SIZE" env-default:"36"`
	Color    string  `yaml:"color" env:"THUMBNAILS_WATERMARK_COLOR" env-default:"#ffffff"`
	Opacity  float64 `yaml:"opacity" env:"THUMBNAILS_WATERMARK_OPACITY" env-default:"0.5"`
}

func (w Watermark) Enabled() bool {
	return w.Path != "" || w.Text != ""
}

func MustLoad() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	return Load(path)
}

func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from env: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) DefaultRetryStrategy() retry.Strategy {
	return retry.Strategy{
		Attempts: c.Retry.Attempts,
		Delay:    c.Retry.Delay,
		Backoff:  c.Retry.Backoff,
	}
}

// ThumbnailSpecs normalises the configured specs. A malformed spec fails the
// whole set with a *thumbnail.ConfigurationError.
func (c *Config) ThumbnailSpecs() ([]thumbnail.ThumbnailSpec, error) {
	return thumbnail.ParseSpecs(c.Thumbnails.Specs)
}
