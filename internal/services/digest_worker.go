package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/shubham-khot-pro/todo-service/internal/mail"
	"github.com/shubham-khot-pro/todo-service/internal/queue"
)

// DigestWorker drains the digest queue and hands rendered digests to the
// mailer. Mail transports are slow in the reference workload, so workers
// never assume sub-second sends; a failed send is re-enqueued, and because
// the queue is at-least-once a user may occasionally receive the same digest
// twice. That is accepted.
type DigestWorker struct {
	digests      *DigestService
	queue        queue.DigestQueue
	mailer       mail.Mailer
	pollInterval time.Duration
	wg           sync.WaitGroup
	stop         chan struct{}
}

func NewDigestWorker(
	digests *DigestService,
	digestQueue queue.DigestQueue,
	mailer mail.Mailer,
	workers int,
	pollInterval time.Duration,
) *DigestWorker {
	w := &DigestWorker{
		digests:      digests,
		queue:        digestQueue,
		mailer:       mailer,
		pollInterval: pollInterval,
		stop:         make(chan struct{}),
	}

	for i := 1; i <= workers; i++ {
		w.wg.Add(1)
		go w.worker(i)
	}

	return w
}

func (w *DigestWorker) worker(workerID int) {
	defer w.wg.Done()

	log.Printf("digest worker %d started", workerID)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.drainOnce(workerID)
		case <-w.stop:
			log.Printf("digest worker %d stopped", workerID)
			return
		}
	}
}

func (w *DigestWorker) drainOnce(workerID int) {
	ctx := context.Background()

	for {
		select {
		case <-w.stop:
			return
		default:
		}

		userID, err := w.queue.Dequeue(ctx)
		if err != nil {
			if !errors.Is(err, queue.ErrQueueEmpty) {
				log.Printf("digest worker %d: dequeue failed: %v", workerID, err)
			}
			return
		}

		w.deliver(ctx, workerID, userID)
	}
}

func (w *DigestWorker) deliver(ctx context.Context, workerID int, userID string) {
	body, err := w.digests.BuildDigest(ctx, userID)
	if err != nil {
		log.Printf("digest worker %d: failed to build digest for user %s: %v", workerID, userID, err)
		w.requeue(ctx, workerID, userID)
		return
	}

	if err := w.mailer.Send(ctx, userID, DigestSubject, body); err != nil {
		log.Printf("digest worker %d: failed to send digest to user %s: %v", workerID, userID, err)
		w.requeue(ctx, workerID, userID)
		return
	}

	log.Printf("digest worker %d sent digest to user %s", workerID, userID)
}

func (w *DigestWorker) requeue(ctx context.Context, workerID int, userID string) {
	if err := w.queue.Enqueue(ctx, userID); err != nil {
		log.Printf("digest worker %d: failed to requeue user %s: %v", workerID, userID, err)
	}
}

func (w *DigestWorker) Shutdown(ctx context.Context) {
	close(w.stop)

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("digest workers shut down cleanly")
	case <-ctx.Done():
		log.Println("digest worker shutdown timed out")
	}
}
