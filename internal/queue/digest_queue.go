package queue

import (
	"context"
	"errors"
)

// DigestQueue is the durable hand-off between the request path and the
// digest mailer. Delivery is at-least-once: a user ID may be dequeued more
// than once for the same logical request, and consumers must tolerate that.
type DigestQueue interface {
	// Enqueue schedules a digest for the given user.
	Enqueue(ctx context.Context, userID string) error

	// Dequeue pops the next scheduled user, or ErrQueueEmpty.
	Dequeue(ctx context.Context) (string, error)
}

var ErrQueueEmpty = errors.New("digest queue is empty")
