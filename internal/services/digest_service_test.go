package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shubham-khot-pro/todo-service/internal/queue"
	repository "github.com/shubham-khot-pro/todo-service/internal/repositories"
)

// memoryQueue is an in-process DigestQueue for tests.
type memoryQueue struct {
	mu    sync.Mutex
	items []string
}

func (q *memoryQueue) Enqueue(ctx context.Context, userID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, userID)
	return nil
}

func (q *memoryQueue) Dequeue(ctx context.Context) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return "", queue.ErrQueueEmpty
	}
	userID := q.items[0]
	q.items = q.items[1:]
	return userID, nil
}

// recordingMailer captures sends on a channel.
type recordingMailer struct {
	sent chan sentMail
}

type sentMail struct {
	userID  string
	subject string
	body    string
}

func (m *recordingMailer) Send(ctx context.Context, userID, subject, body string) error {
	m.sent <- sentMail{userID: userID, subject: subject, body: body}
	return nil
}

func TestBuildDigestEmpty(t *testing.T) {
	repo := repository.NewTaskRepository(setupTestDB(t))
	digests := NewDigestService(repo)

	body, err := digests.BuildDigest(context.Background(), ownerA)
	if err != nil {
		t.Fatalf("failed to build digest: %v", err)
	}
	if body != "You have no active todos 🎉" {
		t.Errorf("unexpected empty digest body: %q", body)
	}
}

func TestBuildDigestListsActiveTitlesNewestFirst(t *testing.T) {
	repo := repository.NewTaskRepository(setupTestDB(t))
	service := NewTaskService(repo)
	digests := NewDigestService(repo)
	ctx := context.Background()

	_, _ = service.CreateTask(ctx, ownerA, ownerA, "Pay rent", "")
	time.Sleep(10 * time.Millisecond) // distinct created_at for ordering
	_, _ = service.CreateTask(ctx, ownerA, ownerA, "Buy milk", "")
	gone, _ := service.CreateTask(ctx, ownerA, ownerA, "Old chore", "")
	_, _ = service.SoftDelete(ctx, ownerA, ownerA, gone.ID)
	_, _ = service.CreateTask(ctx, ownerB, ownerB, "Not mine", "")

	body, err := digests.BuildDigest(ctx, ownerA)
	if err != nil {
		t.Fatalf("failed to build digest: %v", err)
	}

	lines := strings.Split(body, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), body)
	}
	if lines[0] != "- Buy milk" || lines[1] != "- Pay rent" {
		t.Errorf("expected newest-first titles, got %q", body)
	}
}

func TestDigestWorkerDeliversQueuedDigest(t *testing.T) {
	repo := repository.NewTaskRepository(setupTestDB(t))
	service := NewTaskService(repo)
	digests := NewDigestService(repo)
	ctx := context.Background()

	_, _ = service.CreateTask(ctx, ownerA, ownerA, "Pay rent", "")

	q := &memoryQueue{}
	mailer := &recordingMailer{sent: make(chan sentMail, 4)}
	worker := NewDigestWorker(digests, q, mailer, 1, 10*time.Millisecond)
	defer worker.Shutdown(context.Background())

	if err := q.Enqueue(ctx, ownerA); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	select {
	case mail := <-mailer.sent:
		if mail.userID != ownerA {
			t.Errorf("digest sent to wrong user: %s", mail.userID)
		}
		if mail.subject != DigestSubject {
			t.Errorf("unexpected subject: %q", mail.subject)
		}
		if mail.body != "- Pay rent" {
			t.Errorf("unexpected body: %q", mail.body)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("digest was not delivered in time")
	}
}

// Duplicate enqueues of the same user are delivered as duplicates; the queue
// is at-least-once and deduplication is nobody's job.
func TestDigestWorkerToleratesDuplicateRequests(t *testing.T) {
	repo := repository.NewTaskRepository(setupTestDB(t))
	digests := NewDigestService(repo)
	ctx := context.Background()

	q := &memoryQueue{}
	mailer := &recordingMailer{sent: make(chan sentMail, 4)}
	worker := NewDigestWorker(digests, q, mailer, 2, 10*time.Millisecond)
	defer worker.Shutdown(context.Background())

	_ = q.Enqueue(ctx, ownerA)
	_ = q.Enqueue(ctx, ownerA)

	for i := 0; i < 2; i++ {
		select {
		case mail := <-mailer.sent:
			if mail.userID != ownerA {
				t.Errorf("digest sent to wrong user: %s", mail.userID)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("expected 2 deliveries, got %d", i)
		}
	}
}
