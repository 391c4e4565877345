package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesTasks(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
		done = make(chan struct{}, 3)
	)
	q := New("test", func(_ context.Context, task Task[string]) error {
		mu.Lock()
		seen = append(seen, task.Payload)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}, Config{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	for _, key := range []string{"a", "b", "c"} {
		ok, err := q.Enqueue(context.Background(), Task[string]{Key: key, Payload: key})
		require.NoError(t, err)
		assert.True(t, ok)
	}
	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for tasks")
		}
	}
	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"a", "b", "c"}, seen)
}

func TestQueueCollapsesPendingKeys(t *testing.T) {
	release := make(chan struct{})
	q := New("test", func(_ context.Context, task Task[int]) error {
		if task.Key == "block" {
			<-release
		}
		return nil
	}, Config{Workers: 1, BufferSize: 4})
	q.Start(context.Background())

	_, err := q.Enqueue(context.Background(), Task[int]{Key: "block"})
	require.NoError(t, err)
	first, err := q.Enqueue(context.Background(), Task[int]{Key: "class:c1"})
	require.NoError(t, err)
	second, err := q.Enqueue(context.Background(), Task[int]{Key: "class:c1"})
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	assert.GreaterOrEqual(t, q.Pending(), 1)

	close(release)
	q.Stop()
}

func TestQueueRetriesFailedTasks(t *testing.T) {
	var calls atomic.Int32
	done := make(chan struct{})
	q := New("test", func(_ context.Context, task Task[string]) error {
		if calls.Add(1) < 3 {
			return errors.New("transient")
		}
		close(done)
		return nil
	}, Config{Workers: 1, MaxRetries: 3, RetryDelay: 5 * time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	_, err := q.Enqueue(context.Background(), Task[string]{Key: "program"})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task was not retried")
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestQueueLifecycleErrors(t *testing.T) {
	q := New("test", func(context.Context, Task[string]) error { return nil }, Config{})

	_, err := q.Enqueue(context.Background(), Task[string]{Key: "a"})
	assert.ErrorIs(t, err, ErrNotStarted)

	q.Start(context.Background())
	q.Start(context.Background())
	q.Stop()

	_, err = q.Enqueue(context.Background(), Task[string]{Key: "a"})
	assert.ErrorIs(t, err, ErrStopped)
	q.Stop()
}

func TestQueueDropsPermanentFailures(t *testing.T) {
	var calls atomic.Int32
	q := New("test", func(_ context.Context, task Task[string]) error {
		calls.Add(1)
		return Permanent(errors.New("unknown scope"))
	}, Config{Workers: 1, MaxRetries: 3, RetryDelay: time.Millisecond})
	q.Start(context.Background())

	_, err := q.Enqueue(context.Background(), Task[string]{Key: "class:999"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	q.Stop()
	assert.Equal(t, int32(1), calls.Load())
}

func TestPermanentUnwraps(t *testing.T) {
	base := errors.New("boom")
	assert.ErrorIs(t, Permanent(base), base)
	assert.NoError(t, Permanent(nil))
}

func TestQueueEnqueueHonoursCallerContext(t *testing.T) {
	release := make(chan struct{})
	q := New("test", func(_ context.Context, task Task[int]) error {
		<-release
		return nil
	}, Config{Workers: 1, BufferSize: 1})
	q.Start(context.Background())
	defer func() {
		close(release)
		q.Stop()
	}()

	_, err := q.Enqueue(context.Background(), Task[int]{Key: "busy"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return q.Pending() == 0 }, 2*time.Second, time.Millisecond)
	_, err = q.Enqueue(context.Background(), Task[int]{Key: "buffered"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	ok, err := q.Enqueue(ctx, Task[int]{Key: "blocked"})
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, q.Pending())
}
