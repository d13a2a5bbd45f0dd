package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	task := NewTask("sony_a7v", "/products/sony/slrs/sony_a7v", 1)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "sony_a7v", task.ProductCode)
	assert.Equal(t, "/products/sony/slrs/sony_a7v", task.URL)
	assert.Equal(t, 1, task.Priority)
	assert.False(t, task.CreatedAt.IsZero())

	other := NewTask("sony_a7v", "/products/sony/slrs/sony_a7v", 1)
	assert.NotEqual(t, task.ID, other.ID)
}

func TestInMemoryQueuePushPop(t *testing.T) {
	q := NewInMemoryQueue()
	defer q.Close()

	require.NoError(t, q.Push(NewTask("a", "/a", 0)))
	require.NoError(t, q.Push(NewTask("b", "/b", 5)))
	require.NoError(t, q.Push(NewTask("c", "/c", 2)))

	assert.Equal(t, 3, q.Size())

	ctx := context.Background()

	// Highest priority pops first.
	task, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", task.ProductCode)

	task, err = q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c", task.ProductCode)

	task, err = q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", task.ProductCode)

	assert.Zero(t, q.Size())
}

func TestInMemoryQueuePopBlocksUntilPush(t *testing.T) {
	q := NewInMemoryQueue()
	defer q.Close()

	done := make(chan *Task, 1)
	go func() {
		task, err := q.Pop(context.Background())
		if err == nil {
			done <- task
		}
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, q.Push(NewTask("late", "/late", 0)))

	select {
	case task := <-done:
		assert.Equal(t, "late", task.ProductCode)
	case <-time.After(2 * time.Second):
		t.Fatal("Pop did not return after Push")
	}
}

func TestInMemoryQueuePopContextCancel(t *testing.T) {
	q := NewInMemoryQueue()
	defer q.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := q.Pop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInMemoryQueuePopRepeatedCancel(t *testing.T) {
	q := NewInMemoryQueue()
	defer q.Close()

	// Cancelling a waiter must neither corrupt the mutex nor strand other
	// waiters; the queue stays usable afterwards.
	for i := 0; i < 50; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		errs := make(chan error, 1)
		go func() {
			_, err := q.Pop(ctx)
			errs <- err
		}()

		cancel()

		select {
		case err := <-errs:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("cancelled Pop did not return")
		}
	}

	require.NoError(t, q.Push(NewTask("after", "/after", 0)))

	task, err := q.Pop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "after", task.ProductCode)
}

func TestInMemoryQueueClosed(t *testing.T) {
	q := NewInMemoryQueue()
	require.NoError(t, q.Close())

	assert.ErrorIs(t, q.Push(NewTask("x", "/x", 0)), ErrQueueClosed)

	_, err := q.Pop(context.Background())
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestBatchQueue(t *testing.T) {
	q := NewInMemoryQueue()
	batch := NewBatchQueue(q, 2)

	tasks := []*Task{
		NewTask("a", "/a", 0),
		NewTask("b", "/b", 0),
		NewTask("c", "/c", 0),
	}
	require.NoError(t, batch.PushBatch(tasks))
	require.NoError(t, q.Close())

	popped, err := batch.PopBatch(context.Background())
	require.NoError(t, err)
	assert.Len(t, popped, 2)

	popped, err = batch.PopBatch(context.Background())
	require.NoError(t, err)
	assert.Len(t, popped, 1)

	_, err = batch.PopBatch(context.Background())
	assert.ErrorIs(t, err, ErrQueueEmpty)
}
