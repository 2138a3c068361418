package queue

import (
	"context"

	"github.com/redis/rueidis"
)

// RedisDigestQueue backs DigestQueue with a Redis list. The list survives
// process restarts, which is what makes re-delivery (and therefore duplicate
// digests) possible and acceptable.
type RedisDigestQueue struct {
	client rueidis.Client
	key    string
}

func NewRedisDigestQueue(client rueidis.Client, queueKey string) *RedisDigestQueue {
	return &RedisDigestQueue{
		client: client,
		key:    queueKey,
	}
}

func (q *RedisDigestQueue) Enqueue(ctx context.Context, userID string) error {
	cmd := q.client.B().Rpush().Key(q.key).Element(userID).Build()
	return q.client.Do(ctx, cmd).Error()
}

func (q *RedisDigestQueue) Dequeue(ctx context.Context) (string, error) {
	cmd := q.client.B().Lpop().Key(q.key).Build()
	result := q.client.Do(ctx, cmd)

	userID, err := result.ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", ErrQueueEmpty
		}
		return "", err
	}

	return userID, nil
}
