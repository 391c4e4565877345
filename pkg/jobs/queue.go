package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNotStarted is returned when enqueueing before Start.
	ErrNotStarted = errors.New("queue not started")
	// ErrStopped is returned when enqueueing after Stop.
	ErrStopped = errors.New("queue stopped")
)

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks a handler error as terminal; the task is dropped instead of retried.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Task is a queued unit of work. Tasks sharing a Key are collapsed while one is pending.
type Task[T any] struct {
	Key      string
	Payload  T
	Attempt  int
	Enqueued time.Time
}

// Handler processes a task.
type Handler[T any] func(context.Context, Task[T]) error

// Config configures worker pool behaviour.
type Config struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Queue is an in-memory task dispatcher backed by a fixed pool of goroutines.
type Queue[T any] struct {
	name    string
	handler Handler[T]
	cfg     Config

	tasks   chan Task[T]
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	pending map[string]struct{}
	started bool
}

// New builds a queue; zero config values fall back to one worker, three retries and a one second delay.
func New[T any](name string, handler Handler[T], cfg Config) *Queue[T] {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	} else if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Queue[T]{
		name:    name,
		handler: handler,
		cfg:     cfg,
		tasks:   make(chan Task[T], cfg.BufferSize),
		pending: make(map[string]struct{}),
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (q *Queue[T]) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.started = true
	q.cfg.Logger.Info("queue started", zap.String("queue", q.name), zap.Int("workers", q.cfg.Workers))
}

// Stop cancels workers and waits for them and any scheduled retries to exit.
func (q *Queue[T]) Stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	q.cancel()
	q.mu.Unlock()
	q.wg.Wait()
	q.cfg.Logger.Info("queue stopped", zap.String("queue", q.name))
}

// Enqueue adds a task. It reports false without error when a task with the same key
// is already waiting. A full buffer blocks until a slot frees up or ctx is done.
func (q *Queue[T]) Enqueue(ctx context.Context, task Task[T]) (bool, error) {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return false, fmt.Errorf("%s: %w", q.name, ErrNotStarted)
	}
	if q.ctx.Err() != nil {
		q.mu.Unlock()
		return false, fmt.Errorf("%s: %w", q.name, ErrStopped)
	}
	if task.Key != "" {
		if _, exists := q.pending[task.Key]; exists {
			q.mu.Unlock()
			return false, nil
		}
		q.pending[task.Key] = struct{}{}
	}
	queueCtx := q.ctx
	q.mu.Unlock()

	if task.Enqueued.IsZero() {
		task.Enqueued = time.Now().UTC()
	}
	select {
	case q.tasks <- task:
		return true, nil
	case <-queueCtx.Done():
		q.release(task.Key)
		return false, fmt.Errorf("%s: %w", q.name, ErrStopped)
	case <-ctx.Done():
		q.release(task.Key)
		return false, fmt.Errorf("%s: enqueue %s: %w", q.name, task.Key, ctx.Err())
	}
}

// Pending returns the number of keyed tasks waiting for a worker.
func (q *Queue[T]) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *Queue[T]) release(key string) {
	if key == "" {
		return
	}
	q.mu.Lock()
	delete(q.pending, key)
	q.mu.Unlock()
}

func (q *Queue[T]) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case task := <-q.tasks:
			q.release(task.Key)
			if err := q.handler(q.ctx, task); err != nil {
				q.retry(task, err)
			}
		}
	}
}

func (q *Queue[T]) retry(task Task[T], err error) {
	var permanent *permanentError
	if errors.As(err, &permanent) {
		q.cfg.Logger.Warn("task dropped",
			zap.String("queue", q.name),
			zap.String("key", task.Key),
			zap.Error(permanent.err),
		)
		return
	}
	task.Attempt++
	if task.Attempt > q.cfg.MaxRetries {
		q.cfg.Logger.Error("task exceeded retries",
			zap.String("queue", q.name),
			zap.String("key", task.Key),
			zap.Error(err),
		)
		return
	}
	q.cfg.Logger.Warn("task failed, retrying",
		zap.String("queue", q.name),
		zap.String("key", task.Key),
		zap.Int("attempt", task.Attempt),
		zap.Error(err),
	)

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		timer := time.NewTimer(q.cfg.RetryDelay)
		defer timer.Stop()
		select {
		case <-q.ctx.Done():
		case <-timer.C:
			if _, err := q.Enqueue(q.ctx, task); err != nil && !errors.Is(err, ErrStopped) {
				q.cfg.Logger.Error("failed to requeue task", zap.String("queue", q.name), zap.String("key", task.Key), zap.Error(err))
			}
		}
	}()
}
