package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisQueue is a shared work queue backed by a Redis list. Priorities are not
// honored across processes; tasks pop in FIFO order.
type RedisQueue struct {
	client *redis.Client
	key    string
	logger *slog.Logger
	closed bool
}

func NewRedisQueue(addr, key string) (*RedisQueue, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisQueue{
		client: client,
		key:    key,
		logger: slog.Default().With("component", "queue"),
	}, nil
}

func (q *RedisQueue) Push(task *Task) error {
	if q.closed {
		return ErrQueueClosed
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode task: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to push task: %w", err)
	}

	return nil
}

func (q *RedisQueue) Pop(ctx context.Context) (*Task, error) {
	if q.closed {
		return nil, ErrQueueClosed
	}

	for {
		result, err := q.client.BRPop(ctx, 5*time.Second, q.key).Result()
		if err == redis.Nil {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
				continue
			}
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("failed to pop task: %w", err)
		}

		// BRPop returns [key, value].
		var task Task
		if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
			q.logger.Warn("dropping malformed task payload", "error", err)
			continue
		}
		return &task, nil
	}
}

func (q *RedisQueue) Size() int {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	size, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		q.logger.Warn("failed to read queue size", "error", err)
		return 0
	}
	return int(size)
}

func (q *RedisQueue) Close() error {
	q.closed = true
	return q.client.Close()
}
