package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"image-thumbnailer/internal/broker"
	"image-thumbnailer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type fakeConsumer struct {
	msgs []*broker.Message

	mu      sync.Mutex
	commits []int64
	closed  bool
}

func (c *fakeConsumer) Start(ctx context.Context, out chan<- *broker.Message, _ retry.Strategy) {
	go func() {
		defer close(out)
		for _, m := range c.msgs {
			select {
			case out <- m:
			case <-ctx.Done():
				return
			}
		}
		<-ctx.Done()
	}()
}

func (c *fakeConsumer) Commit(_ context.Context, msg *broker.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commits = append(c.commits, msg.Offset)
	return nil
}

func (c *fakeConsumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

type fakeProducer struct {
	mu      sync.Mutex
	results []domain.ThumbnailResult
}

func (p *fakeProducer) Send(_ context.Context, _ retry.Strategy, _, value []byte) error {
	var r domain.ThumbnailResult
	if err := json.Unmarshal(value, &r); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = append(p.results, r)
	return nil
}

func (p *fakeProducer) Close() error { return nil }

func (p *fakeProducer) byImage() map[string]domain.ThumbnailResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]domain.ThumbnailResult)
	for _, r := range p.results {
		out[r.ImageID] = r
	}
	return out
}

type fakeFiles struct{}

func (fakeFiles) GetObject(_ context.Context, path string) (io.ReadCloser, error) {
	if path == "missing" {
		return nil, errors.New("file not found")
	}
	return io.NopCloser(strings.NewReader("original bytes")), nil
}

type fakeProcessor struct {
	mu    sync.Mutex
	calls int
}

func (p *fakeProcessor) Process(_ context.Context, task *domain.ThumbnailTask, data []byte) (*domain.ThumbnailResult, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	result := &domain.ThumbnailResult{TaskID: task.ID, ImageID: task.ImageID, Status: domain.StatusCompleted}

	switch task.ImageID {
	case "boom":
		panic("decoder exploded")
	case "bad":
		result.Status = domain.StatusFailed
		result.Error = "spec small failed"
		return result, errors.New("spec small failed")
	}

	if string(data) != "original bytes" {
		return nil, errors.New("unexpected original")
	}
	result.Thumbnails = []domain.Thumbnail{{Spec: "small", Path: domain.ThumbnailPath(task.ImageID, "small", "jpg")}}
	return result, nil
}

func (p *fakeProcessor) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func taskMessage(t *testing.T, offset int64, imageID, path string) *broker.Message {
	t.Helper()

	value, err := json.Marshal(domain.ThumbnailTask{ID: "task-" + imageID, ImageID: imageID, OriginalPath: path})
	require.NoError(t, err)
	return &broker.Message{Topic: domain.KafkaTopicTasks, Offset: offset, Key: []byte(imageID), Value: value}
}

func TestWorkerServe(t *testing.T) {
	consumer := &fakeConsumer{msgs: []*broker.Message{
		taskMessage(t, 1, "ok", "originals/ok.jpg"),
		taskMessage(t, 2, "bad", "originals/bad.jpg"),
		taskMessage(t, 3, "missing", "missing"),
		taskMessage(t, 4, "boom", "originals/boom.jpg"),
		{Offset: 5, Value: []byte("{not json")},
	}}
	producer := &fakeProducer{}
	proc := &fakeProcessor{}

	l := zlog.Logger
	w := New(consumer, producer, proc, fakeFiles{}, retry.Strategy{Attempts: 1}, 2, &l)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Serve(ctx) }()

	require.Eventually(t, func() bool {
		return proc.callCount() == 3 && len(producer.byImage()) == 3
	}, 2*time.Second, 10*time.Millisecond)

	// the unparsable message has no observable side effect; give it a moment
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}

	results := producer.byImage()
	assert.Equal(t, domain.StatusCompleted, results["ok"].Status)
	assert.Len(t, results["ok"].Thumbnails, 1)
	assert.Equal(t, domain.StatusFailed, results["bad"].Status)
	assert.Equal(t, domain.StatusFailed, results["missing"].Status)
	assert.Contains(t, results["missing"].Error, "file not found")
	assert.NotContains(t, results, "boom")

	consumer.mu.Lock()
	defer consumer.mu.Unlock()
	assert.Equal(t, []int64{1}, consumer.commits)
	assert.True(t, consumer.closed)
}
